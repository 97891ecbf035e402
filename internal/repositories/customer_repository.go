package repositories

import (
	"database/sql"
	"fmt"

	"gomart/internal/models"
)

type CustomerRepository interface {
	GetByID(customerID string) (*models.Customer, error)
	GetByUserID(userID int) (*models.Customer, error)
	Search(query string, limit, offset int) ([]*models.Customer, int, error)
	Delete(customerID string) error
}

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerJoin = `
	SELECT
		c.customer_id, c.user_id,
		u.id, u.full_name, u.email, u.phone, u.dob, u.gender, u.account_id, u.created_at, u.updated_at
	FROM customers c
	JOIN users u ON u.id = c.user_id
`

func scanCustomerRow(scanner interface{ Scan(...interface{}) error }) (*models.Customer, error) {
	c := &models.Customer{}
	u := &models.User{}
	var (
		dob    sql.NullTime
		gender sql.NullString
	)
	err := scanner.Scan(
		&c.CustomerID, &c.UserID,
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
	c.User = u
	return c, nil
}

func (r *customerRepository) GetByID(customerID string) (*models.Customer, error) {
	c, err := scanCustomerRow(r.db.QueryRow(customerJoin+` WHERE c.customer_id=$1`, customerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *customerRepository) GetByUserID(userID int) (*models.Customer, error) {
	c, err := scanCustomerRow(r.db.QueryRow(customerJoin+` WHERE c.user_id=$1`, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by user: %w", err)
	}
	return c, nil
}

// Search matches name, email or phone; empty query lists everyone. Returns the
// page plus the total match count for pagination.
func (r *customerRepository) Search(query string, limit, offset int) ([]*models.Customer, int, error) {
	pattern := "%" + query + "%"

	var total int
	const countQ = `
		SELECT COUNT(*)
		FROM customers c
		JOIN users u ON u.id = c.user_id
		WHERE $1 = '%%' OR u.full_name ILIKE $1 OR u.email ILIKE $1 OR u.phone ILIKE $1
	`
	if err := r.db.QueryRow(countQ, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	q := customerJoin + `
		WHERE $1 = '%%' OR u.full_name ILIKE $1 OR u.email ILIKE $1 OR u.phone ILIKE $1
		ORDER BY c.customer_id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(q, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	var res []*models.Customer
	for rows.Next() {
		c, err := scanCustomerRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("search customers scan: %w", err)
		}
		res = append(res, c)
	}
	return res, total, rows.Err()
}

func (r *customerRepository) Delete(customerID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	var userID int
	if err := tx.QueryRow(`DELETE FROM customers WHERE customer_id=$1 RETURNING user_id`, customerID).Scan(&userID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	var accountID int
	if err := tx.QueryRow(`DELETE FROM users WHERE id=$1 RETURNING account_id`, userID).Scan(&accountID); err != nil {
		return fmt.Errorf("delete customer user: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM accounts WHERE id=$1`, accountID); err != nil {
		return fmt.Errorf("delete customer account: %w", err)
	}
	return tx.Commit()
}
