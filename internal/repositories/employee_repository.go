package repositories

import (
	"database/sql"
	"fmt"

	"gomart/internal/models"
)

type EmployeeRepository interface {
	GetByID(employeeID string) (*models.Employee, error)
	GetByUserID(userID int) (*models.Employee, error)
	Search(query string, limit, offset int) ([]*models.Employee, int, error)
	Update(employee *models.Employee) error
	Delete(employeeID string) error
}

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeJoin = `
	SELECT
		e.employee_id, e.salary, e.hire_date, e.user_id,
		u.id, u.full_name, u.email, u.phone, u.dob, u.gender, u.account_id, u.created_at, u.updated_at
	FROM employees e
	JOIN users u ON u.id = e.user_id
`

func scanEmployeeRow(scanner interface{ Scan(...interface{}) error }) (*models.Employee, error) {
	e := &models.Employee{}
	u := &models.User{}
	var (
		dob    sql.NullTime
		gender sql.NullString
	)
	err := scanner.Scan(
		&e.EmployeeID, &e.Salary, &e.HireDate, &e.UserID,
		&u.ID, &u.FullName, &u.Email, &u.Phone, &dob, &gender, &u.AccountID, &u.CreatedAt, &u.UpdatedAt,
	)
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
	e.User = u
	return e, nil
}

func (r *employeeRepository) GetByID(employeeID string) (*models.Employee, error) {
	e, err := scanEmployeeRow(r.db.QueryRow(employeeJoin+` WHERE e.employee_id=$1`, employeeID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetByUserID(userID int) (*models.Employee, error) {
	e, err := scanEmployeeRow(r.db.QueryRow(employeeJoin+` WHERE e.user_id=$1`, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by user: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) Search(query string, limit, offset int) ([]*models.Employee, int, error) {
	pattern := "%" + query + "%"

	var total int
	const countQ = `
		SELECT COUNT(*)
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE $1 = '%%' OR u.full_name ILIKE $1 OR u.email ILIKE $1
	`
	if err := r.db.QueryRow(countQ, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	q := employeeJoin + `
		WHERE $1 = '%%' OR u.full_name ILIKE $1 OR u.email ILIKE $1
		ORDER BY e.employee_id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(q, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	var res []*models.Employee
	for rows.Next() {
		e, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("search employees scan: %w", err)
		}
		res = append(res, e)
	}
	return res, total, rows.Err()
}

func (r *employeeRepository) Update(employee *models.Employee) error {
	const q = `UPDATE employees SET salary=$1 WHERE employee_id=$2`
	if _, err := r.db.Exec(q, employee.Salary, employee.EmployeeID); err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) Delete(employeeID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	var userID int
	if err := tx.QueryRow(`DELETE FROM employees WHERE employee_id=$1 RETURNING user_id`, employeeID).Scan(&userID); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	var accountID int
	if err := tx.QueryRow(`DELETE FROM users WHERE id=$1 RETURNING account_id`, userID).Scan(&accountID); err != nil {
		return fmt.Errorf("delete employee user: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM accounts WHERE id=$1`, accountID); err != nil {
		return fmt.Errorf("delete employee account: %w", err)
	}
	return tx.Commit()
}
