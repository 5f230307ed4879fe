package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"barvid/internal/domain"
	"barvid/internal/repository"
)

var (
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrUsernameExists     = repository.ErrUsernameExists
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("wrong password")
)

const (
	bootstrapUsername = "admin"
	bootstrapPassword = "1234"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, user domain.User) error
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
	Count(ctx context.Context) (int, error)
}

// AuthService is the single-role gate in front of everything else.
type AuthService struct {
	repo UserRepository
}

func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Login verifies the credentials. Unknown usernames and wrong passwords
// both collapse into ErrInvalidCredentials so callers cannot tell them
// apart.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// AddUser registers a new account.
func (s *AuthService) AddUser(ctx context.Context, username, password string) (domain.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err = s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return domain.User{}, ErrUsernameExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return user, nil
}

// ChangePassword overwrites the stored digest after verifying the
// current password.
func (s *AuthService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrWrongPassword
		}

		return fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePasswordHash(ctx, username, hash); err != nil {
		return fmt.Errorf("s.repo.UpdatePasswordHash -> %w", err)
	}

	return nil
}

// Bootstrap seeds the default admin account the first time the service
// starts with an empty user store.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.Count -> %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err = s.AddUser(ctx, bootstrapUsername, bootstrapPassword); err != nil {
		return fmt.Errorf("s.AddUser -> %w", err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
