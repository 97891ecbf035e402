package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gomart/internal/authz"
	"gomart/internal/models"
	"gomart/internal/repositories"
	"gomart/internal/security"
	"gomart/internal/tokens"
	"gomart/internal/utils"
	"gomart/internal/verification"
)

const (
	MethodEmail = "email"
	MethodPhone = "phone"

	purposeRegistration  = "registration"
	purposePasswordReset = "password_reset"
)

type VerificationInfo struct {
	Method    string `json:"method"`
	SentTo    string `json:"sent_to"` // masked
	ExpiresIn int    `json:"expires_in"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// ForgotPasswordMessage is returned for every forgot-password request, found
// account or not, so responses never reveal whether an identifier exists.
const ForgotPasswordMessage = "If the account exists, a verification code will be sent"

type AuthService interface {
	RegisterCustomer(req *models.RegisterRequest) (*models.User, *models.Account, *models.Customer, *VerificationInfo, error)
	VerifyAccount(identifier, code string) (*models.User, *models.Account, error)
	ResendVerification(identifier, method string) (*VerificationInfo, error)
	Login(username, password string) (*models.User, *models.Account, *TokenPair, error)
	AdminLogin(username, password string, role authz.Role) (*models.User, *models.Account, *TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
	ChangePassword(userID int, oldPassword, newPassword string) error
	ForgotPassword(identifier, method string) error
	ResetPassword(identifier, code, newPassword string) error
	CurrentUser(userID int) (*models.User, *models.Account, error)
}

type AuthConfig struct {
	CodeLength     int
	CodeTTL        time.Duration
	MaxAttempts    int
	ResendCooldown time.Duration
}

type authService struct {
	accounts repositories.AccountRepository
	users    repositories.UserRepository
	hasher   *security.Hasher
	codes    *verification.Manager
	issuer   *tokens.Issuer
	emails   EmailService
	sms      SMSService
	cfg      AuthConfig
}

func NewAuthService(
	accounts repositories.AccountRepository,
	users repositories.UserRepository,
	hasher *security.Hasher,
	codes *verification.Manager,
	issuer *tokens.Issuer,
	emails EmailService,
	sms SMSService,
	cfg AuthConfig,
) AuthService {
	return &authService{
		accounts: accounts,
		users:    users,
		hasher:   hasher,
		codes:    codes,
		issuer:   issuer,
		emails:   emails,
		sms:      sms,
		cfg:      cfg,
	}
}

// ==================== Registration ====================

func (s *authService) RegisterCustomer(req *models.RegisterRequest) (*models.User, *models.Account, *models.Customer, *VerificationInfo, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	phone := strings.TrimSpace(req.Phone)
	log.Printf("[auth][register] attempt username=%q email=%s", username, utils.MaskEmail(email))

	if taken, err := s.accounts.UsernameExists(username); err != nil {
		return nil, nil, nil, nil, err
	} else if taken {
		return nil, nil, nil, nil, ErrUsernameTaken
	}
	if taken, err := s.users.EmailExists(email); err != nil {
		return nil, nil, nil, nil, err
	} else if taken {
		return nil, nil, nil, nil, ErrEmailTaken
	}
	if taken, err := s.users.PhoneExists(phone); err != nil {
		return nil, nil, nil, nil, err
	} else if taken {
		return nil, nil, nil, nil, ErrPhoneTaken
	}

	if ok, violations := s.hasher.ValidateStrength(req.Password); !ok {
		return nil, nil, nil, nil, &WeakPasswordError{Violations: violations}
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    email,
		Phone:    phone,
		Gender:   parseGender(req.Gender),
	}
	if req.DOB != "" {
		if dob, err := time.Parse("2006-01-02", req.DOB); err == nil {
			user.DOB = &dob
		}
	}
	account := &models.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         authz.RoleCustomer,
		Status:       models.StatusInactive, // inactive until verified
	}
	customer := &models.Customer{CustomerID: newCustomerID()}

	// user + account + customer land in one transaction
	if err := s.accounts.CreateCustomer(user, account, customer); err != nil {
		log.Printf("[auth][register] create failed username=%q: %v", username, err)
		return nil, nil, nil, nil, err
	}

	info, err := s.sendVerification(user, req.VerificationMethod, purposeRegistration)
	if err != nil {
		// the user cannot receive the code, so registration must surface this
		return nil, nil, nil, nil, err
	}

	log.Printf("[auth][register] ok username=%q user_id=%d", username, user.ID)
	return user, account, customer, info, nil
}

func (s *authService) VerifyAccount(identifier, code string) (*models.User, *models.Account, error) {
	identifier = strings.TrimSpace(identifier)
	log.Printf("[auth][verify] identifier=%s", utils.MaskIdentifier(identifier))

	result := s.codes.Check(identifier, code, s.cfg.MaxAttempts)
	switch result.Outcome {
	case verification.OutcomeVerified:
		// fall through
	case verification.OutcomeNoRecord:
		return nil, nil, ErrNoVerification
	case verification.OutcomeMaxAttemptsExceeded:
		return nil, nil, ErrTooManyAttempts
	case verification.OutcomeExpired:
		return nil, nil, ErrCodeExpired
	default:
		return nil, nil, &InvalidCodeError{AttemptsLeft: result.AttemptsLeft}
	}
	// a password-reset code cannot activate an account
	if result.Purpose != purposeRegistration {
		return nil, nil, ErrNoVerification
	}

	user, err := s.users.GetByIdentifier(identifier)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}
	account, err := s.accounts.GetByID(user.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, ErrNotFound
	}

	switch account.Status {
	case models.StatusInactive, models.StatusPending:
		if err := s.accounts.UpdateStatus(account.ID, models.StatusActive); err != nil {
			return nil, nil, err
		}
		account.Status = models.StatusActive

		// best effort: activation stands even if the welcome email fails
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			log.Printf("[auth][verify] welcome email failed user_id=%d: %v", user.ID, err)
		}
	case models.StatusActive:
		// already activated, a repeat verify is a no-op
	default:
		// LOCKED/SUSPENDED stay that way; a verification code does not undo
		// an administrative lock
		return nil, nil, checkAccountStatus(account)
	}

	log.Printf("[auth][verify] ok user_id=%d", user.ID)
	return user, account, nil
}

func (s *authService) ResendVerification(identifier, method string) (*VerificationInfo, error) {
	identifier = strings.TrimSpace(identifier)
	log.Printf("[auth][resend] identifier=%s", utils.MaskIdentifier(identifier))

	if !s.codes.RateLimitOK(identifier, s.cfg.ResendCooldown) {
		return nil, ErrResendThrottled
	}

	user, err := s.users.GetByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return s.sendVerification(user, method, purposeRegistration)
}

// ==================== Login ====================

func (s *authService) Login(username, password string) (*models.User, *models.Account, *TokenPair, error) {
	return s.login(username, password, authz.RoleCustomer)
}

func (s *authService) AdminLogin(username, password string, role authz.Role) (*models.User, *models.Account, *TokenPair, error) {
	if !role.IsStaff() {
		return nil, nil, nil, ErrInvalidCredentials
	}
	return s.login(username, password, role)
}

func (s *authService) login(username, password string, role authz.Role) (*models.User, *models.Account, *TokenPair, error) {
	username = strings.TrimSpace(username)
	log.Printf("[auth][login] attempt username=%q surface=%s", username, role)

	account, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, nil, nil, err
	}
	if account == nil {
		return nil, nil, nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		log.Printf("[auth][login] password mismatch username=%q", username)
		return nil, nil, nil, ErrInvalidCredentials
	}
	// the customer surface rejects staff accounts and vice versa
	if account.Role != role {
		log.Printf("[auth][login] role mismatch username=%q have=%s want=%s", username, account.Role, role)
		return nil, nil, nil, ErrInvalidCredentials
	}
	if err := checkAccountStatus(account); err != nil {
		log.Printf("[auth][login] status gate username=%q status=%s", username, account.Status)
		return nil, nil, nil, err
	}

	user, err := s.users.GetByAccountID(account.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if user == nil {
		return nil, nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user, account)
	if err != nil {
		return nil, nil, nil, err
	}

	log.Printf("[auth][login] ok user_id=%d role=%s", user.ID, account.Role)
	return user, account, pair, nil
}

func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.issuer.Verify(strings.TrimSpace(refreshToken), tokens.TypeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, account, err := s.users.GetWithAccount(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := checkAccountStatus(account); err != nil {
		return nil, err
	}
	return s.issueTokens(user, account)
}

// ==================== Password management ====================

func (s *authService) ChangePassword(userID int, oldPassword, newPassword string) error {
	log.Printf("[auth][change-password] user_id=%d", userID)

	user, account, err := s.users.GetWithAccount(userID)
	if err != nil {
		return err
	}
	if user == nil || account == nil {
		return ErrNotFound
	}
	if !s.hasher.Verify(oldPassword, account.PasswordHash) {
		return ErrInvalidCredentials
	}
	if oldPassword == newPassword {
		return ErrSamePassword
	}
	if ok, violations := s.hasher.ValidateStrength(newPassword); !ok {
		return &WeakPasswordError{Violations: violations}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(account.ID, hash)
}

// ForgotPassword never reveals whether the identifier resolves to an account;
// the handler returns ForgotPasswordMessage either way.
func (s *authService) ForgotPassword(identifier, method string) error {
	identifier = strings.TrimSpace(identifier)
	log.Printf("[auth][forgot-password] identifier=%s", utils.MaskIdentifier(identifier))

	user, err := s.users.GetByIdentifier(identifier)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[auth][forgot-password] no account for identifier=%s", utils.MaskIdentifier(identifier))
		return nil
	}

	_, err = s.sendVerification(user, method, purposePasswordReset)
	return err
}

func (s *authService) ResetPassword(identifier, code, newPassword string) error {
	identifier = strings.TrimSpace(identifier)
	log.Printf("[auth][reset-password] identifier=%s", utils.MaskIdentifier(identifier))

	result := s.codes.Check(identifier, code, s.cfg.MaxAttempts)
	switch result.Outcome {
	case verification.OutcomeVerified:
		// fall through
	case verification.OutcomeNoRecord:
		return ErrNoVerification
	case verification.OutcomeMaxAttemptsExceeded:
		return ErrTooManyAttempts
	case verification.OutcomeExpired:
		return ErrCodeExpired
	default:
		return &InvalidCodeError{AttemptsLeft: result.AttemptsLeft}
	}
	// a registration code (even one already verified) cannot reset a password
	if result.Purpose != purposePasswordReset {
		return ErrNoVerification
	}

	user, err := s.users.GetByIdentifier(identifier)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if ok, violations := s.hasher.ValidateStrength(newPassword); !ok {
		return &WeakPasswordError{Violations: violations}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(user.AccountID, hash); err != nil {
		return err
	}

	// a reset code is single-use
	s.codes.Delete(identifier)
	log.Printf("[auth][reset-password] ok user_id=%d", user.ID)
	return nil
}

func (s *authService) CurrentUser(userID int) (*models.User, *models.Account, error) {
	user, account, err := s.users.GetWithAccount(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || account == nil {
		return nil, nil, ErrNotFound
	}
	return user, account, nil
}

// ==================== Helpers ====================

func (s *authService) sendVerification(user *models.User, method, purpose string) (*VerificationInfo, error) {
	if method == "" {
		method = MethodEmail
	}

	identifier := user.Email
	if method == MethodPhone {
		identifier = user.Phone
	}

	code, err := s.codes.Issue(identifier, s.cfg.CodeLength, s.cfg.CodeTTL, fmt.Sprintf("%d", user.ID), purpose)
	if err != nil {
		return nil, err
	}

	if method == MethodPhone {
		if err := s.sms.SendVerificationSMS(user.Phone, code); err != nil {
			return nil, err
		}
	} else if purpose == purposePasswordReset {
		if err := s.emails.SendPasswordResetEmail(user.Email, code); err != nil {
			return nil, err
		}
	} else {
		if err := s.emails.SendVerificationEmail(user.Email, code, user.FullName); err != nil {
			return nil, err
		}
	}

	sentTo := utils.MaskEmail(identifier)
	if method == MethodPhone {
		sentTo = utils.MaskPhone(identifier)
	}
	return &VerificationInfo{
		Method:    method,
		SentTo:    sentTo,
		ExpiresIn: int(s.cfg.CodeTTL.Seconds()),
	}, nil
}

func (s *authService) issueTokens(user *models.User, account *models.Account) (*TokenPair, error) {
	access, err := s.issuer.IssueAccess(user.ID, account.Username, user.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.issuer.IssueRefresh(user.ID, account.Username, user.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.issuer.AccessTTL().Seconds()),
	}, nil
}

func checkAccountStatus(account *models.Account) error {
	switch account.Status {
	case models.StatusActive:
		return nil
	case models.StatusLocked:
		return ErrAccountLocked
	case models.StatusSuspended:
		return ErrAccountSuspended
	default: // PENDING, INACTIVE
		return ErrAccountNotActive
	}
}

func newCustomerID() string {
	return fmt.Sprintf("CUST%s%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]),
	)
}

func parseGender(s string) models.Gender {
	switch models.Gender(strings.ToLower(s)) {
	case models.GenderMale, models.GenderFemale:
		return models.Gender(strings.ToLower(s))
	}
	return models.GenderOther
}
