package services

import (
	"database/sql"
	"errors"

	"gomart/internal/models"
	"gomart/internal/repositories"
)

type CartService interface {
	AddItem(customerID string, req *models.AddCartItemRequest) error
	List(customerID string) ([]*models.CartItem, float64, error)
	RemoveItem(customerID string, itemID int) error
}

type cartService struct {
	repo     repositories.CartRepository
	products repositories.ProductRepository
}

func NewCartService(repo repositories.CartRepository, products repositories.ProductRepository) CartService {
	return &cartService{repo: repo, products: products}
}

func (s *cartService) AddItem(customerID string, req *models.AddCartItemRequest) error {
	p, err := s.products.GetByID(req.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	if p.Stock < req.Quantity {
		return ErrOutOfStock
	}
	return s.repo.AddItem(customerID, req.ProductID, req.Quantity)
}

// List returns the cart items plus the running total.
func (s *cartService) List(customerID string) ([]*models.CartItem, float64, error) {
	items, err := s.repo.ListByCustomer(customerID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Product.Price
	}
	return items, total, nil
}

func (s *cartService) RemoveItem(customerID string, itemID int) error {
	if err := s.repo.RemoveItem(customerID, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
