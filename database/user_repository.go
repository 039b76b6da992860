package database

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"storefront/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository keeps all accounts as one JSON array under the "users"
// key. Accounts are append-only: created at signup, never mutated.
type UserRepository struct {
	store KVStore
}

func NewUserRepository(store KVStore) *UserRepository {
	return &UserRepository{store: store}
}

// All returns every stored account. Missing or unparsable state reads as an
// empty collection.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	data, err := r.store.Get(ctx, KeyUsers)
	if err == ErrKeyNotFound {
		return []models.User{}, nil
	}
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		return []models.User{}, nil
	}
	return users, nil
}

// FindByEmail looks an account up by its identity key. Matching is
// case-insensitive on the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends user to the collection and writes it back in full.
func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	users = append(users, user)

	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, KeyUsers, string(data))
}
