package repositories

import (
	"database/sql"
	"fmt"

	"gomart/internal/models"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id int) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id int) error
	List(query string, categoryID int, limit, offset int) ([]*models.Product, int, error)
	ListCategories() ([]*models.Category, error)
	CreateCategory(category *models.Category) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, stock, category_id, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...interface{}) error }) (*models.Product, error) {
	p := &models.Product{}
	var categoryID sql.NullInt64
	err := scanner.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &categoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		p.CategoryID = &id
	}
	return p, nil
}

func (r *productRepository) Create(product *models.Product) error {
	const q = `
		INSERT INTO products (name, description, price, stock, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	var categoryID sql.NullInt64
	if product.CategoryID != nil {
		categoryID = sql.NullInt64{Int64: int64(*product.CategoryID), Valid: true}
	}
	err := r.db.QueryRow(q, product.Name, product.Description, product.Price, product.Stock, categoryID).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(id int) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *productRepository) Update(product *models.Product) error {
	const q = `
		UPDATE products
		SET name=$1, description=$2, price=$3, stock=$4, category_id=$5, updated_at=NOW()
		WHERE id=$6
	`
	var categoryID sql.NullInt64
	if product.CategoryID != nil {
		categoryID = sql.NullInt64{Int64: int64(*product.CategoryID), Valid: true}
	}
	if _, err := r.db.Exec(q, product.Name, product.Description, product.Price, product.Stock, categoryID, product.ID); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *productRepository) Delete(id int) error {
	if _, err := r.db.Exec(`DELETE FROM products WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *productRepository) List(query string, categoryID int, limit, offset int) ([]*models.Product, int, error) {
	pattern := "%" + query + "%"

	var total int
	const countQ = `
		SELECT COUNT(*)
		FROM products
		WHERE ($1 = '%%' OR name ILIKE $1) AND ($2 = 0 OR category_id = $2)
	`
	if err := r.db.QueryRow(countQ, pattern, categoryID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	const q = `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '%%' OR name ILIKE $1) AND ($2 = 0 OR category_id = $2)
		ORDER BY id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(q, pattern, categoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var res []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list products scan: %w", err)
		}
		res = append(res, p)
	}
	return res, total, rows.Err()
}

func (r *productRepository) ListCategories() ([]*models.Category, error) {
	rows, err := r.db.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var res []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("list categories scan: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *productRepository) CreateCategory(category *models.Category) error {
	err := r.db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, category.Name).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}
