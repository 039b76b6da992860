package database

import (
	"context"
	"encoding/json"

	"storefront/models"
)

// OrderRepository keeps placed orders as one JSON array under the "orders"
// key. The collection is append-only; an order is never rewritten after
// placement.
type OrderRepository struct {
	store KVStore
}

func NewOrderRepository(store KVStore) *OrderRepository {
	return &OrderRepository{store: store}
}

// All returns every placed order, oldest first. Missing or unparsable state
// reads as an empty collection.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	data, err := r.store.Get(ctx, KeyOrders)
	if err == ErrKeyNotFound {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := json.Unmarshal([]byte(data), &orders); err != nil {
		return []models.Order{}, nil
	}
	return orders, nil
}

// Append reads the full collection, adds order, and writes the collection
// back. Last writer wins; concurrent sessions are not reconciled.
func (r *OrderRepository) Append(ctx context.Context, order models.Order) error {
	orders, err := r.All(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)

	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, KeyOrders, string(data))
}

// ForUser returns the orders placed by the account with the given email.
func (r *OrderRepository) ForUser(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	own := []models.Order{}
	for _, o := range orders {
		if o.UserEmail == email {
			own = append(own, o)
		}
	}
	return own, nil
}
