package repository

import (
	"context"
	"errors"
	"fmt"

	"barvid/internal/domain"
	"barvid/internal/repository/docstore"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
)

type userDoc struct {
	PasswordHash string `json:"password_hash"`
}

type UserRepository struct {
	coll *docstore.Collection[map[string]userDoc]
}

func NewUserRepository(dataDir string) *UserRepository {
	return &UserRepository{
		coll: docstore.NewCollection(
			docstore.Filepath(dataDir, "users.json"),
			func() map[string]userDoc { return map[string]userDoc{} },
		),
	}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	users, err := r.coll.Load()
	if err != nil {
		return domain.User{}, fmt.Errorf("r.coll.Load -> %w", err)
	}

	doc, ok := users[username]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	return domain.User{Username: username, PasswordHash: doc.PasswordHash}, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	users, err := r.coll.Load()
	if err != nil {
		return fmt.Errorf("r.coll.Load -> %w", err)
	}

	if _, ok := users[user.Username]; ok {
		return ErrUsernameExists
	}

	users[user.Username] = userDoc{PasswordHash: user.PasswordHash}

	if err = r.coll.Save(users); err != nil {
		return fmt.Errorf("r.coll.Save -> %w", err)
	}

	return nil
}

// UpdatePasswordHash overwrites the stored digest for an existing user.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	users, err := r.coll.Load()
	if err != nil {
		return fmt.Errorf("r.coll.Load -> %w", err)
	}

	doc, ok := users[username]
	if !ok {
		return ErrUserNotFound
	}

	doc.PasswordHash = passwordHash
	users[username] = doc

	if err = r.coll.Save(users); err != nil {
		return fmt.Errorf("r.coll.Save -> %w", err)
	}

	return nil
}

// Count reports how many users exist, for first-run seeding.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	users, err := r.coll.Load()
	if err != nil {
		return 0, fmt.Errorf("r.coll.Load -> %w", err)
	}

	return len(users), nil
}
