package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms-backend/pkg/models"
	"lms-backend/pkg/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repository.NewUserRepository(db)}
}

func (s *UserService) List() ([]models.User, error) {
	return s.users.FindAll()
}

func (s *UserService) Get(id string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(firstName, lastName, email string) (*models.User, error) {
	if firstName == "" || lastName == "" || email == "" {
		return nil, fmt.Errorf("%w: firstName, lastName and email are required", ErrInvalidRequest)
	}
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user := &models.User{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
