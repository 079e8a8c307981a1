package services

import (
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/gorm"
)

// IdentityService handles user registration and login against the users table.
// The first user to register gets id 1 and is thereby the administrator.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Both failure modes satisfy errors.Is(err, ErrInvalidCredentials); the
// messages differ so the login page can tell the user which field was wrong.
type credentialsError struct {
	msg string
}

func (e *credentialsError) Error() string { return e.msg }
func (e *credentialsError) Unwrap() error { return ErrInvalidCredentials }

var (
	errUnknownEmail  = &credentialsError{msg: "Email does not exist"}
	errWrongPassword = &credentialsError{msg: "Password is incorrect"}
)

// Register creates a new user with a bcrypt-hashed password. The email must
// be unique (exact, case-sensitive match); the check and the insert run in one
// transaction, and the unique index on users.email backs it up at the storage
// layer, so two concurrent registrations can never both succeed.
func (s *IdentityService) Register(name, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies the email/password pair and returns the user.
func (s *IdentityService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUnknownEmail
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, errWrongPassword
	}

	return &user, nil
}

func (s *IdentityService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &user, nil
}

func (s *IdentityService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &user, nil
}
