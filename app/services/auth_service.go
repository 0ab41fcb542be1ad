package services

import (
	"errors"
	"fmt"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
	"github.com/prasetyadi/gerai/pkg/hash"
)

// AuthService implements the account flows: registration, login, profile
// update and password change.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user-role account. The pre-check on username is a
// fast path only; the unique index catches the race between two concurrent
// registrations and is mapped to the same ErrUsernameTaken.
func (s *AuthService) Register(username, email, phone, password, confirm string) error {
	existing, err := s.users.FindByUsername(username)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	if password != confirm {
		return ErrPasswordMismatch
	}

	hashed, err := hash.Password(password)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	err = s.users.Create(&models.User{
		Username: username,
		Password: hashed,
		Role:     models.RoleUser,
		Email:    email,
		Phone:    phone,
	})
	if errors.Is(err, repositories.ErrDuplicateUsername) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Login verifies the credential pair. Unknown username and wrong password
// collapse into the same ErrInvalidCredentials so responses cannot be used
// to enumerate accounts.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !hash.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateAccount overwrites the mutable profile fields of userID. Username
// uniqueness is deliberately not re-checked here; a collision surfaces as
// the store's constraint error and is reported generically upstream.
func (s *AuthService) UpdateAccount(userID uint, username, email, phone, address string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if user == nil {
		return repositories.ErrNotFound
	}

	user.Username = username
	user.Email = email
	user.Phone = phone
	user.Address = address

	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// ChangePassword replaces the stored hash after verifying the current
// password and the confirmation.
func (s *AuthService) ChangePassword(userID uint, current, newPassword, confirm string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if user == nil {
		return repositories.ErrNotFound
	}

	if !hash.Verify(current, user.Password) {
		return ErrWrongPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hashed, err := hash.Password(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}

	user.Password = hashed
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// RevokeRememberTokens invalidates every outstanding remember-me token for
// userID. Called on logout so a captured token cannot be replayed.
func (s *AuthService) RevokeRememberTokens(userID uint) error {
	if err := s.users.BumpRememberVersion(userID); err != nil {
		return fmt.Errorf("revoke remember tokens: %w", err)
	}
	return nil
}
