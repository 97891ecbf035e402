package repositories

import (
	"database/sql"
	"fmt"

	"gomart/internal/models"
)

type PaymentRepository interface {
	GetByOrderID(orderID int) (*models.Payment, error)
	UpdateStatus(id int, status models.PaymentStatus) error
	MarkPaid(orderID int) error
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByOrderID(orderID int) (*models.Payment, error) {
	const q = `
		SELECT id, order_id, amount, method, status, created_at, paid_at
		FROM payments
		WHERE order_id=$1
	`
	p := &models.Payment{}
	var (
		status string
		paidAt sql.NullTime
	)
	err := r.db.QueryRow(q, orderID).Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &status, &p.CreatedAt, &paidAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.Status = models.PaymentStatus(status)
	if paidAt.Valid {
		t := paidAt.Time
		p.PaidAt = &t
	}
	return p, nil
}

func (r *paymentRepository) UpdateStatus(id int, status models.PaymentStatus) error {
	if _, err := r.db.Exec(`UPDATE payments SET status=$1 WHERE id=$2`, status, id); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

func (r *paymentRepository) MarkPaid(orderID int) error {
	const q = `UPDATE payments SET status=$1, paid_at=NOW() WHERE order_id=$2`
	if _, err := r.db.Exec(q, models.PaymentCompleted, orderID); err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}
	return nil
}
