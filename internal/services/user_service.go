package services

import (
	"strings"
	"time"

	"gomart/internal/models"
	"gomart/internal/repositories"
)

type UserService interface {
	GetUserByID(id int) (*models.User, error)
	ListUsers(limit, offset int) ([]*models.User, error)
	GetUserCount() (int, error)
	UpdateProfile(userID int, req *models.UpdateProfileRequest) (*models.User, error)
	DeleteUser(id int) error
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) GetUserCount() (int, error) {
	return s.repo.Count()
}

func (s *userService) UpdateProfile(userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(req.FullName); name != "" {
		user.FullName = name
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = phone
	}
	if req.DOB != "" {
		if dob, err := time.Parse("2006-01-02", req.DOB); err == nil {
			user.DOB = &dob
		}
	}
	if req.Gender != "" {
		user.Gender = parseGender(req.Gender)
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id int) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
