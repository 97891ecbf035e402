package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gomart/internal/authz"
	"gomart/internal/models"
	"gomart/internal/repositories"
	"gomart/internal/security"
)

type EmployeeService interface {
	Create(req *models.CreateEmployeeRequest) (*models.Employee, error)
	Update(employeeID string, req *models.UpdateEmployeeRequest) (*models.Employee, error)
	Delete(employeeID string) error
	Search(query string, limit, offset int) ([]*models.Employee, int, error)
	GetByID(employeeID string) (*models.Employee, error)
}

type employeeService struct {
	repo     repositories.EmployeeRepository
	accounts repositories.AccountRepository
	users    repositories.UserRepository
	hasher   *security.Hasher
}

func NewEmployeeService(
	repo repositories.EmployeeRepository,
	accounts repositories.AccountRepository,
	users repositories.UserRepository,
	hasher *security.Hasher,
) EmployeeService {
	return &employeeService{repo: repo, accounts: accounts, users: users, hasher: hasher}
}

// Create provisions an employee account. Admin-created accounts start ACTIVE:
// there is no self-service verification step for staff.
func (s *employeeService) Create(req *models.CreateEmployeeRequest) (*models.Employee, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if taken, err := s.accounts.UsernameExists(username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.users.EmailExists(email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	if ok, violations := s.hasher.ValidateStrength(req.Password); !ok {
		return nil, &WeakPasswordError{Violations: violations}
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	hireDate := time.Now()
	if req.HireDate != "" {
		if d, err := time.Parse("2006-01-02", req.HireDate); err == nil {
			hireDate = d
		}
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Gender:   models.GenderOther,
	}
	account := &models.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         authz.RoleEmployee,
		Status:       models.StatusActive,
	}
	employee := &models.Employee{
		EmployeeID: newEmployeeID(),
		Salary:     req.Salary,
		HireDate:   hireDate,
	}

	if err := s.accounts.CreateEmployee(user, account, employee); err != nil {
		return nil, err
	}
	employee.User = user
	log.Printf("[employee][create] ok employee_id=%s user_id=%d", employee.EmployeeID, user.ID)
	return employee, nil
}

func (s *employeeService) Update(employeeID string, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	e, err := s.GetByID(employeeID)
	if err != nil {
		return nil, err
	}

	if req.Salary != nil {
		e.Salary = *req.Salary
		if err := s.repo.Update(e); err != nil {
			return nil, err
		}
	}
	if req.FullName != "" || req.Phone != "" {
		if name := strings.TrimSpace(req.FullName); name != "" {
			e.User.FullName = name
		}
		if phone := strings.TrimSpace(req.Phone); phone != "" {
			e.User.Phone = phone
		}
		if err := s.users.Update(e.User); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (s *employeeService) Delete(employeeID string) error {
	if _, err := s.GetByID(employeeID); err != nil {
		return err
	}
	return s.repo.Delete(employeeID)
}

func (s *employeeService) Search(query string, limit, offset int) ([]*models.Employee, int, error) {
	return s.repo.Search(query, limit, offset)
}

func (s *employeeService) GetByID(employeeID string) (*models.Employee, error) {
	e, err := s.repo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func newEmployeeID() string {
	return fmt.Sprintf("EMP%s%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]),
	)
}
