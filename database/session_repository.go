package database

import (
	"context"
	"encoding/json"

	"storefront/models"
)

// SessionRepository holds the single authenticated user under the
// "currentUser" key, independent of the users collection. There is no
// expiry and no token; the session is either present or absent.
type SessionRepository struct {
	store KVStore
}

func NewSessionRepository(store KVStore) *SessionRepository {
	return &SessionRepository{store: store}
}

// Current returns the session user, or nil when nobody is logged in.
// Corrupt stored state reads as "not logged in".
func (r *SessionRepository) Current(ctx context.Context) (*models.User, error) {
	data, err := r.store.Get(ctx, KeyCurrentUser)
	if err == ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, nil
	}
	if user.Email == "" {
		return nil, nil
	}
	return &user, nil
}

// Set makes user the session user.
func (r *SessionRepository) Set(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, KeyCurrentUser, string(data))
}

// Clear logs the session user out.
func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, KeyCurrentUser)
}
