package repositories

import (
	"database/sql"
	"fmt"

	"gomart/internal/authz"
	"gomart/internal/models"
)

type AccountRepository interface {
	GetByUsername(username string) (*models.Account, error)
	GetByID(id int) (*models.Account, error)
	UsernameExists(username string) (bool, error)
	UpdateStatus(id int, status models.AccountStatus) error
	UpdatePassword(id int, passwordHash string) error

	// Transactional creates: user + account (+ customer/employee) land together
	// or not at all.
	CreateCustomer(user *models.User, account *models.Account, customer *models.Customer) error
	CreateEmployee(user *models.User, account *models.Account, employee *models.Employee) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, username, password_hash, role, status, created_at, updated_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var role string
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &role, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.Role = authz.Role(role)
	return a, nil
}

func (r *accountRepository) GetByUsername(username string) (*models.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE username=$1`
	return scanAccount(r.db.QueryRow(q, username))
}

func (r *accountRepository) GetByID(id int) (*models.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return scanAccount(r.db.QueryRow(q, id))
}

func (r *accountRepository) UsernameExists(username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM accounts WHERE username=$1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("username exists: %w", err)
	}
	return exists, nil
}

func (r *accountRepository) UpdateStatus(id int, status models.AccountStatus) error {
	_, err := r.db.Exec(`UPDATE accounts SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	return nil
}

func (r *accountRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE accounts SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update account password: %w", err)
	}
	return nil
}

func (r *accountRepository) CreateCustomer(user *models.User, account *models.Account, customer *models.Customer) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertAccount(tx, account); err != nil {
		return err
	}
	user.AccountID = account.ID
	if err := insertUser(tx, user); err != nil {
		return err
	}
	customer.UserID = user.ID
	const q = `INSERT INTO customers (customer_id, user_id) VALUES ($1, $2)`
	if _, err := tx.Exec(q, customer.CustomerID, customer.UserID); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	return tx.Commit()
}

func (r *accountRepository) CreateEmployee(user *models.User, account *models.Account, employee *models.Employee) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertAccount(tx, account); err != nil {
		return err
	}
	user.AccountID = account.ID
	if err := insertUser(tx, user); err != nil {
		return err
	}
	employee.UserID = user.ID
	const q = `INSERT INTO employees (employee_id, salary, hire_date, user_id) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(q, employee.EmployeeID, employee.Salary, employee.HireDate, employee.UserID); err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}

	return tx.Commit()
}

func insertAccount(tx *sql.Tx, account *models.Account) error {
	const q = `
		INSERT INTO accounts (username, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := tx.QueryRow(q, account.Username, account.PasswordHash, string(account.Role), account.Status).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func insertUser(tx *sql.Tx, user *models.User) error {
	const q = `
		INSERT INTO users (full_name, email, phone, dob, gender, account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	var dob sql.NullTime
	if user.DOB != nil {
		dob = sql.NullTime{Time: *user.DOB, Valid: true}
	}
	err := tx.QueryRow(q, user.FullName, user.Email, user.Phone, dob, string(user.Gender), user.AccountID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
