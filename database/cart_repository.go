package database

import (
	"context"
	"encoding/json"

	"storefront/models"
)

// CartRepository persists the whole cart as one JSON array under the "cart"
// key, the same shape the browser frontend kept in local storage. Every
// save replaces the stored value wholesale.
type CartRepository struct {
	store KVStore
}

func NewCartRepository(store KVStore) *CartRepository {
	return &CartRepository{store: store}
}

// Load returns the persisted cart. A missing key or unparsable value reads
// as an empty cart so stale or corrupt state never takes the app down.
func (r *CartRepository) Load(ctx context.Context) ([]models.CartItem, error) {
	data, err := r.store.Get(ctx, KeyCart)
	if err == ErrKeyNotFound {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return []models.CartItem{}, nil
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// Save replaces the stored cart with items.
func (r *CartRepository) Save(ctx context.Context, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, KeyCart, string(data))
}

// Clear writes an empty cart. Used after a placed order.
func (r *CartRepository) Clear(ctx context.Context) error {
	return r.Save(ctx, nil)
}
