package services

import (
	"log"

	"gomart/internal/models"
	"gomart/internal/repositories"
)

type CustomerService interface {
	Search(query string, limit, offset int) ([]*models.Customer, int, error)
	GetByID(customerID string) (*models.Customer, error)
	GetByUserID(userID int) (*models.Customer, error)
	UpdateStatus(customerID string, status models.AccountStatus) (*models.Customer, error)
	Delete(customerID string) error
	DeleteOwn(userID int) error
}

type customerService struct {
	repo     repositories.CustomerRepository
	accounts repositories.AccountRepository
}

func NewCustomerService(repo repositories.CustomerRepository, accounts repositories.AccountRepository) CustomerService {
	return &customerService{repo: repo, accounts: accounts}
}

func (s *customerService) Search(query string, limit, offset int) ([]*models.Customer, int, error) {
	return s.repo.Search(query, limit, offset)
}

func (s *customerService) GetByID(customerID string) (*models.Customer, error) {
	c, err := s.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *customerService) GetByUserID(userID int) (*models.Customer, error) {
	c, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// UpdateStatus is the administrative lock/suspend/reactivate path; transitions
// go through the account transition table.
func (s *customerService) UpdateStatus(customerID string, status models.AccountStatus) (*models.Customer, error) {
	c, err := s.GetByID(customerID)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(c.User.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	if !CanTransitionAccount(account.Status, status) {
		return nil, ErrInvalidTransition
	}
	if err := s.accounts.UpdateStatus(account.ID, status); err != nil {
		return nil, err
	}
	log.Printf("[customer][status] customer_id=%s %s -> %s", customerID, account.Status, status)
	return c, nil
}

func (s *customerService) Delete(customerID string) error {
	if _, err := s.GetByID(customerID); err != nil {
		return err
	}
	return s.repo.Delete(customerID)
}

func (s *customerService) DeleteOwn(userID int) error {
	c, err := s.GetByUserID(userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(c.CustomerID)
}
