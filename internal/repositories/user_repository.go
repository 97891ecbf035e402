package repositories

import (
	"database/sql"
	"fmt"

	"gomart/internal/authz"
	"gomart/internal/models"
)

type UserRepository interface {
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetByIdentifier resolves an email-or-phone verification identifier.
	GetByIdentifier(identifier string) (*models.User, error)
	GetByAccountID(accountID int) (*models.User, error)
	GetWithAccount(id int) (*models.User, *models.Account, error)
	EmailExists(email string) (bool, error)
	PhoneExists(phone string) (bool, error)
	Update(user *models.User) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)
	Count() (int, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, email, phone, dob, gender, account_id, created_at, updated_at`

func scanUser(scanner interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	var (
		dob    sql.NullTime
		gender sql.NullString
	)
	err := scanner.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &dob, &gender, &u.AccountID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		u.DOB = &t
	}
	if gender.Valid {
		u.Gender = models.Gender(gender.String)
	}
	return u, nil
}

func (r *userRepository) getOne(q string, args ...interface{}) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(q, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByAccountID(accountID int) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE account_id=$1`, accountID)
}

func (r *userRepository) GetByIdentifier(identifier string) (*models.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email=$1 OR phone=$1`, identifier)
}

func (r *userRepository) GetWithAccount(id int) (*models.User, *models.Account, error) {
	const q = `
		SELECT
			u.id, u.full_name, u.email, u.phone, u.dob, u.gender, u.account_id, u.created_at, u.updated_at,
			a.id, a.username, a.password_hash, a.role, a.status, a.created_at, a.updated_at
		FROM users u
		JOIN accounts a ON a.id = u.account_id
		WHERE u.id = $1
	`
	u := &models.User{}
	a := &models.Account{}
	var (
		dob    sql.NullTime
		gender sql.NullString
		role   string
	)
	err := r.db.QueryRow(q, id).Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone, &dob, &gender, &u.AccountID, &u.CreatedAt, &u.UpdatedAt,
		&a.ID, &a.Username, &a.PasswordHash, &role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get user with account: %w", err)
	}
	if dob.Valid {
		t := dob.Time
		u.DOB = &t
	}
	if gender.Valid {
		u.Gender = models.Gender(gender.String)
	}
	a.Role = authz.Role(role)
	return u, a, nil
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) PhoneExists(phone string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE phone=$1)`, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("phone exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET full_name=$1, phone=$2, dob=$3, gender=$4, updated_at=NOW()
		WHERE id=$5
	`
	var dob sql.NullTime
	if user.DOB != nil {
		dob = sql.NullTime{Time: *user.DOB, Valid: true}
	}
	if _, err := r.db.Exec(q, user.FullName, user.Phone, dob, string(user.Gender), user.ID); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id int) error {
	// accounts row goes with the user; customers/employees rows cascade on
	// user_id in the schema.
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	var accountID int
	if err := tx.QueryRow(`DELETE FROM users WHERE id=$1 RETURNING account_id`, id).Scan(&accountID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM accounts WHERE id=$1`, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return tx.Commit()
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users scan: %w", err)
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) Count() (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}
