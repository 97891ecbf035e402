package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"gomart/internal/models"
)

// ErrInsufficientStock is returned by Place when an ordered quantity exceeds
// the available stock of any product.
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	// Place writes the order, its items, a pending payment, the stock
	// decrements and the cart cleanup in one transaction.
	Place(order *models.Order, items []*models.OrderItem) error
	GetByID(id int) (*models.Order, error)
	ListByCustomer(customerID string, limit, offset int) ([]*models.Order, error)
	ListAll(limit, offset int) ([]*models.Order, error)
	UpdateStatus(id int, status models.OrderStatus) error
	// Cancel marks the order cancelled and returns its quantities to product
	// stock in one transaction.
	Cancel(id int) error
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Place(order *models.Order, items []*models.OrderItem) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	const orderQ = `
		INSERT INTO orders (customer_id, status, total, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(orderQ, order.CustomerID, order.Status, order.Total, order.Address).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	const itemQ = `
		INSERT INTO order_items (order_id, product_id, name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	const stockQ = `
		UPDATE products SET stock = stock - $1, updated_at=NOW()
		WHERE id = $2 AND stock >= $1
	`
	for _, item := range items {
		item.OrderID = order.ID
		if err := tx.QueryRow(itemQ, item.OrderID, item.ProductID, item.Name, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		res, err := tx.Exec(stockQ, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrInsufficientStock
		}
	}

	const paymentQ = `
		INSERT INTO payments (order_id, amount, method, status, created_at)
		VALUES ($1, $2, 'cod', $3, NOW())
	`
	if _, err := tx.Exec(paymentQ, order.ID, order.Total, models.PaymentPending); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE customer_id=$1`, order.CustomerID); err != nil {
		return fmt.Errorf("clear cart after order: %w", err)
	}

	order.Items = items
	return tx.Commit()
}

const orderColumns = `id, customer_id, status, total, address, created_at, updated_at`

func scanOrder(scanner interface{ Scan(...interface{}) error }) (*models.Order, error) {
	o := &models.Order{}
	var status string
	err := scanner.Scan(&o.ID, &o.CustomerID, &status, &o.Total, &o.Address, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	return o, nil
}

func (r *orderRepository) GetByID(id int) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	const itemsQ = `
		SELECT id, order_id, product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(itemsQ, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("get order items scan: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *orderRepository) list(q string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var res []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders scan: %w", err)
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r *orderRepository) ListByCustomer(customerID string, limit, offset int) ([]*models.Order, error) {
	const q = `
		SELECT ` + orderColumns + ` FROM orders
		WHERE customer_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(q, customerID, limit, offset)
}

func (r *orderRepository) ListAll(limit, offset int) ([]*models.Order, error) {
	const q = `
		SELECT ` + orderColumns + ` FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(q, limit, offset)
}

func (r *orderRepository) Cancel(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, models.OrderCancelled, id); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	const restockQ = `
		UPDATE products p
		SET stock = p.stock + oi.quantity, updated_at=NOW()
		FROM order_items oi
		WHERE oi.order_id = $1 AND p.id = oi.product_id
	`
	if _, err := tx.Exec(restockQ, id); err != nil {
		return fmt.Errorf("restock cancelled order: %w", err)
	}

	return tx.Commit()
}

func (r *orderRepository) UpdateStatus(id int, status models.OrderStatus) error {
	if _, err := r.db.Exec(`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
