package repositories

import (
	"database/sql"
	"fmt"

	"gomart/internal/models"
)

type CartRepository interface {
	AddItem(customerID string, productID, quantity int) error
	ListByCustomer(customerID string) ([]*models.CartItem, error)
	RemoveItem(customerID string, itemID int) error
	Clear(customerID string) error
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

// AddItem upserts: adding the same product again bumps the quantity.
func (r *cartRepository) AddItem(customerID string, productID, quantity int) error {
	const q = `
		INSERT INTO cart_items (customer_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, added_at = NOW()
	`
	if _, err := r.db.Exec(q, customerID, productID, quantity); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) ListByCustomer(customerID string) ([]*models.CartItem, error) {
	const q = `
		SELECT
			ci.id, ci.customer_id, ci.product_id, ci.quantity, ci.added_at,
			p.id, p.name, p.description, p.price, p.stock, p.category_id, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.added_at
	`
	rows, err := r.db.Query(q, customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	var res []*models.CartItem
	for rows.Next() {
		ci := &models.CartItem{}
		p := &models.Product{}
		var categoryID sql.NullInt64
		err := rows.Scan(
			&ci.ID, &ci.CustomerID, &ci.ProductID, &ci.Quantity, &ci.AddedAt,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &categoryID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list cart scan: %w", err)
		}
		if categoryID.Valid {
			id := int(categoryID.Int64)
			p.CategoryID = &id
		}
		ci.Product = p
		res = append(res, ci)
	}
	return res, rows.Err()
}

func (r *cartRepository) RemoveItem(customerID string, itemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE id=$1 AND customer_id=$2`, itemID, customerID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *cartRepository) Clear(customerID string) error {
	if _, err := r.db.Exec(`DELETE FROM cart_items WHERE customer_id=$1`, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
