package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomart/internal/authz"
	"gomart/internal/models"
	"gomart/internal/security"
	"gomart/internal/tokens"
	"gomart/internal/verification"
)

// ==================== in-memory fakes ====================

type fakeAccountRepo struct {
	accounts  map[int]*models.Account
	users     *fakeUserRepo
	customers map[string]*models.Customer
	nextID    int
}

func newFakeAccountRepo(users *fakeUserRepo) *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:  map[int]*models.Account{},
		users:     users,
		customers: map[string]*models.Customer{},
		nextID:    1,
	}
}

func (r *fakeAccountRepo) GetByUsername(username string) (*models.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByID(id int) (*models.Account, error) {
	return r.accounts[id], nil
}

func (r *fakeAccountRepo) UsernameExists(username string) (bool, error) {
	a, _ := r.GetByUsername(username)
	return a != nil, nil
}

func (r *fakeAccountRepo) UpdateStatus(id int, status models.AccountStatus) error {
	if a, ok := r.accounts[id]; ok {
		a.Status = status
	}
	return nil
}

func (r *fakeAccountRepo) UpdatePassword(id int, passwordHash string) error {
	if a, ok := r.accounts[id]; ok {
		a.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeAccountRepo) CreateCustomer(user *models.User, account *models.Account, customer *models.Customer) error {
	account.ID = r.nextID
	r.nextID++
	r.accounts[account.ID] = account

	user.AccountID = account.ID
	r.users.add(user)

	customer.UserID = user.ID
	r.customers[customer.CustomerID] = customer
	return nil
}

func (r *fakeAccountRepo) CreateEmployee(user *models.User, account *models.Account, employee *models.Employee) error {
	account.ID = r.nextID
	r.nextID++
	r.accounts[account.ID] = account

	user.AccountID = account.ID
	r.users.add(user)

	employee.UserID = user.ID
	return nil
}

type fakeUserRepo struct {
	users    map[int]*models.User
	accounts *fakeAccountRepo // set by newAuthFixture, for GetWithAccount
	nextID   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) add(u *models.User) {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) { return r.users[id], nil }

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIdentifier(identifier string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == identifier || u.Phone == identifier {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByAccountID(accountID int) (*models.User, error) {
	for _, u := range r.users {
		if u.AccountID == accountID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetWithAccount(id int) (*models.User, *models.Account, error) {
	u := r.users[id]
	if u == nil {
		return nil, nil, nil
	}
	return u, r.accounts.accounts[u.AccountID], nil
}

func (r *fakeUserRepo) EmailExists(email string) (bool, error) {
	u, _ := r.GetByEmail(email)
	return u != nil, nil
}

func (r *fakeUserRepo) PhoneExists(phone string) (bool, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(user *models.User) error { return nil }
func (r *fakeUserRepo) Delete(id int) error            { delete(r.users, id); return nil }

func (r *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	var res []*models.User
	for _, u := range r.users {
		res = append(res, u)
	}
	return res, nil
}

func (r *fakeUserRepo) Count() (int, error) { return len(r.users), nil }

type fakeEmailService struct {
	lastCode    string
	lastTo      string
	welcomeSent bool
}

func (s *fakeEmailService) SendVerificationEmail(to, code, name string) error {
	s.lastTo, s.lastCode = to, code
	return nil
}

func (s *fakeEmailService) SendWelcomeEmail(to, name string) error {
	s.welcomeSent = true
	return nil
}

func (s *fakeEmailService) SendPasswordResetEmail(to, code string) error {
	s.lastTo, s.lastCode = to, code
	return nil
}

type fakeSMSService struct {
	lastCode string
	lastTo   string
}

func (s *fakeSMSService) SendVerificationSMS(phone, code string) error {
	s.lastTo, s.lastCode = phone, code
	return nil
}

// ==================== fixture ====================

type authFixture struct {
	svc    AuthService
	emails *fakeEmailService
	sms    *fakeSMSService
	users  *fakeUserRepo
	repo   *fakeAccountRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepo()
	repo := newFakeAccountRepo(users)
	users.accounts = repo

	emails := &fakeEmailService{}
	sms := &fakeSMSService{}

	svc := NewAuthService(
		repo,
		users,
		security.NewHasher(4, security.DefaultPolicy()),
		verification.NewManager(verification.NewMemoryStore()),
		tokens.NewIssuer("test-secret", 15*time.Minute, 24*time.Hour),
		emails,
		sms,
		AuthConfig{
			CodeLength:     6,
			CodeTTL:        10 * time.Minute,
			MaxAttempts:    3,
			ResendCooldown: time.Minute,
		},
	)
	return &authFixture{svc: svc, emails: emails, sms: sms, users: users, repo: repo}
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:           "alice01",
		Password:           "Str0ng!Pass",
		FullName:           "Alice Example",
		Email:              "alice@example.com",
		Phone:              "+77001234567",
		DOB:                "1995-04-12",
		Gender:             "female",
		VerificationMethod: MethodEmail,
	}
}

// ==================== tests ====================

func TestRegisterVerifyLogin(t *testing.T) {
	f := newAuthFixture(t)

	user, account, customer, info, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, account.Status)
	assert.Equal(t, authz.RoleCustomer, account.Role)
	assert.NotEmpty(t, customer.CustomerID)
	assert.Equal(t, MethodEmail, info.Method)
	require.NotEmpty(t, f.emails.lastCode)

	// login refused before verification
	_, _, _, err = f.svc.Login("alice01", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrAccountNotActive)

	vUser, vAccount, err := f.svc.VerifyAccount(user.Email, f.emails.lastCode)
	require.NoError(t, err)
	assert.Equal(t, user.ID, vUser.ID)
	assert.Equal(t, models.StatusActive, vAccount.Status)
	assert.True(t, f.emails.welcomeSent)

	_, _, pair, err := f.svc.Login("alice01", "Str0ng!Pass")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestRegisterDuplicates(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	_, _, _, _, err = f.svc.RegisterCustomer(req)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	req = registerRequest()
	req.Username = "bob02"
	_, _, _, _, err = f.svc.RegisterCustomer(req)
	assert.ErrorIs(t, err, ErrEmailTaken)

	req = registerRequest()
	req.Username = "bob02"
	req.Email = "bob@example.com"
	_, _, _, _, err = f.svc.RegisterCustomer(req)
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestRegisterWeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	req := registerRequest()
	req.Password = "short"
	_, _, _, _, err := f.svc.RegisterCustomer(req)

	var weak *WeakPasswordError
	require.ErrorAs(t, err, &weak)
	assert.NotEmpty(t, weak.Violations)
}

func TestRegisterPhoneMethod(t *testing.T) {
	f := newAuthFixture(t)

	req := registerRequest()
	req.VerificationMethod = MethodPhone
	_, _, _, info, err := f.svc.RegisterCustomer(req)
	require.NoError(t, err)

	assert.Equal(t, MethodPhone, info.Method)
	require.NotEmpty(t, f.sms.lastCode)
	assert.Empty(t, f.emails.lastCode)

	_, _, err = f.svc.VerifyAccount(req.Phone, f.sms.lastCode)
	assert.NoError(t, err)
}

func TestVerifyWrongCode(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)

	wrong := "000000"
	if wrong == f.emails.lastCode {
		wrong = "000001"
	}

	_, _, err = f.svc.VerifyAccount("alice@example.com", wrong)
	var invalid *InvalidCodeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.AttemptsLeft)

	// attempts run out, then even the right code is refused
	_, _, err = f.svc.VerifyAccount("alice@example.com", wrong)
	require.ErrorAs(t, err, &invalid)
	_, _, err = f.svc.VerifyAccount("alice@example.com", wrong)
	require.ErrorAs(t, err, &invalid)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestResendThrottled(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)

	_, err = f.svc.ResendVerification("alice@example.com", MethodEmail)
	assert.ErrorIs(t, err, ErrResendThrottled)
}

func TestLoginFailures(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	require.NoError(t, err)

	_, _, _, err = f.svc.Login("alice01", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = f.svc.Login("nobody", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// a customer cannot use the staff surface
	_, _, _, err = f.svc.AdminLogin("alice01", "Str0ng!Pass", authz.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockedAccount(t *testing.T) {
	f := newAuthFixture(t)

	_, account, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	require.NoError(t, err)

	require.NoError(t, f.repo.UpdateStatus(account.ID, models.StatusLocked))
	_, _, _, err = f.svc.Login("alice01", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrAccountLocked)

	require.NoError(t, f.repo.UpdateStatus(account.ID, models.StatusSuspended))
	_, _, _, err = f.svc.Login("alice01", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	require.NoError(t, err)

	_, _, pair, err := f.svc.Login("alice01", "Str0ng!Pass")
	require.NoError(t, err)

	fresh, err := f.svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// an access token is not accepted as a refresh token
	_, err = f.svc.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)

	user, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	require.NoError(t, err)

	err = f.svc.ChangePassword(user.ID, "wrong-old", "N3w!Password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = f.svc.ChangePassword(user.ID, "Str0ng!Pass", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrSamePassword)

	require.NoError(t, f.svc.ChangePassword(user.ID, "Str0ng!Pass", "N3w!Password"))

	_, _, _, err = f.svc.Login("alice01", "Str0ng!Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = f.svc.Login("alice01", "N3w!Password")
	assert.NoError(t, err)
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	f := newAuthFixture(t)

	// unknown identifier behaves exactly like a known one
	assert.NoError(t, f.svc.ForgotPassword("ghost@example.com", MethodEmail))
	assert.Empty(t, f.emails.lastCode)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	require.NoError(t, err)

	f.emails.lastCode = ""
	require.NoError(t, f.svc.ForgotPassword("alice@example.com", MethodEmail))
	assert.NotEmpty(t, f.emails.lastCode)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword("alice@example.com", MethodEmail))
	code := f.emails.lastCode

	require.NoError(t, f.svc.ResetPassword("alice@example.com", code, "N3w!Password"))

	_, _, _, err = f.svc.Login("alice01", "N3w!Password")
	assert.NoError(t, err)

	// the reset code is single-use
	err = f.svc.ResetPassword("alice@example.com", code, "An0ther!Pass")
	assert.ErrorIs(t, err, ErrNoVerification)
}

func TestResetPasswordRejectsRegistrationCode(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	regCode := f.emails.lastCode
	_, _, err = f.svc.VerifyAccount("alice@example.com", regCode)
	require.NoError(t, err)

	// a guessed code does not pass just because the account was verified
	err = f.svc.ResetPassword("alice@example.com", "000000", "Att4cker!Pass")
	var invalid *InvalidCodeError
	assert.ErrorAs(t, err, &invalid)

	// the registration code itself cannot reset a password either
	err = f.svc.ResetPassword("alice@example.com", regCode, "Att4cker!Pass")
	assert.ErrorIs(t, err, ErrNoVerification)

	// the password never changed
	_, _, _, err = f.svc.Login("alice01", "Str0ng!Pass")
	assert.NoError(t, err)
	_, _, _, err = f.svc.Login("alice01", "Att4cker!Pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyAccountRejectsResetCode(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword("alice@example.com", MethodEmail))

	// a password-reset code does not count as account verification
	_, _, err = f.svc.VerifyAccount("alice@example.com", f.emails.lastCode)
	assert.ErrorIs(t, err, ErrNoVerification)
}

func TestVerifyCannotUnlockAccount(t *testing.T) {
	f := newAuthFixture(t)

	_, account, _, _, err := f.svc.RegisterCustomer(registerRequest())
	require.NoError(t, err)
	code := f.emails.lastCode
	_, _, err = f.svc.VerifyAccount("alice@example.com", code)
	require.NoError(t, err)

	// an administrative lock survives a re-submitted verification code
	require.NoError(t, f.repo.UpdateStatus(account.ID, models.StatusLocked))
	_, _, err = f.svc.VerifyAccount("alice@example.com", code)
	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.Equal(t, models.StatusLocked, f.repo.accounts[account.ID].Status)

	require.NoError(t, f.repo.UpdateStatus(account.ID, models.StatusSuspended))
	_, _, err = f.svc.VerifyAccount("alice@example.com", code)
	assert.ErrorIs(t, err, ErrAccountSuspended)
	assert.Equal(t, models.StatusSuspended, f.repo.accounts[account.ID].Status)
}
