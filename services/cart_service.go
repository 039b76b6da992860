package services

import (
	"context"
	"sync"

	"storefront/database"
	"storefront/models"
)

// CartService owns the in-memory cart and keeps the persisted copy in step:
// every mutation re-serializes the whole cart to the store before the call
// returns. Invariants: at most one line per product id, and a line's
// quantity is at least 1 for as long as the line exists.
type CartService struct {
	mu    sync.Mutex
	repo  *database.CartRepository
	items []models.CartItem
}

// NewCartService rehydrates the cart persisted by a previous session.
func NewCartService(ctx context.Context, repo *database.CartRepository) (*CartService, error) {
	items, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &CartService{repo: repo, items: items}, nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Totals derives the current price breakdown.
func (s *CartService) Totals() PriceBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Price(s.items)
}

// Add puts one unit of product in the cart: a new line with quantity 1 when
// the product is not yet present, otherwise an increment of the existing
// line. New lines append at the end, so first-added stays first.
func (s *CartService) Add(ctx context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	found := false
	for i := range next {
		if next[i].ProductID == product.ID {
			next[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		next = append(next, models.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  1,
		})
	}
	return s.commit(ctx, next)
}

// Increment raises the quantity of the line for productID by one. There is
// no upper bound. Unknown ids are ignored.
func (s *CartService) Increment(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity++
			return s.commit(ctx, next)
		}
	}
	return nil
}

// Decrement lowers the quantity of the line for productID by one and
// removes the line entirely when it reaches zero; a zero-quantity line is
// never kept. Unknown ids are ignored.
func (s *CartService) Decrement(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity--
			if next[i].Quantity <= 0 {
				next = append(next[:i], next[i+1:]...)
			}
			return s.commit(ctx, next)
		}
	}
	return nil
}

// Remove deletes the line for productID regardless of quantity.
func (s *CartService) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	for i := range next {
		if next[i].ProductID == productID {
			next = append(next[:i], next[i+1:]...)
			return s.commit(ctx, next)
		}
	}
	return nil
}

// Clear empties the cart. Used after a placed order.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []models.CartItem{})
}

// commit persists next and only then makes it the in-memory cart, so the
// stored state always reflects what callers observe after a mutation.
func (s *CartService) commit(ctx context.Context, next []models.CartItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *CartService) snapshot() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}
