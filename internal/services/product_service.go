package services

import (
	"errors"
	"strings"

	"gomart/internal/models"
	"gomart/internal/repositories"
)

type ProductService interface {
	Create(req *models.ProductRequest) (*models.Product, error)
	Update(id int, req *models.ProductRequest) (*models.Product, error)
	GetByID(id int) (*models.Product, error)
	Delete(id int) error
	List(query string, categoryID, limit, offset int) ([]*models.Product, int, error)
	ListCategories() ([]*models.Category, error)
	CreateCategory(name string) (*models.Category, error)
}

type productService struct {
	repo repositories.ProductRepository
}

func NewProductService(repo repositories.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) validate(req *models.ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.Price <= 0 {
		return errors.New("price must be positive")
	}
	if req.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

func (s *productService) Create(req *models.ProductRequest) (*models.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	p := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Update(id int, req *models.ProductRequest) (*models.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price
	p.Stock = req.Stock
	p.CategoryID = req.CategoryID
	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) GetByID(id int) (*models.Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *productService) Delete(id int) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *productService) List(query string, categoryID, limit, offset int) ([]*models.Product, int, error) {
	return s.repo.List(query, categoryID, limit, offset)
}

func (s *productService) ListCategories() ([]*models.Category, error) {
	return s.repo.ListCategories()
}

func (s *productService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	c := &models.Category{Name: name}
	if err := s.repo.CreateCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}
