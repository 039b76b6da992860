package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/database"
	"storefront/models"
)

var (
	shirt = models.Product{ID: 1, Title: "Red Shirt", Image: "shirt.jpg", Price: 19.5}
	mug   = models.Product{ID: 2, Title: "Red Mug", Image: "mug.jpg", Price: 7.0}
)

func newCart(t *testing.T) (*CartService, *database.CartRepository) {
	t.Helper()
	repo := database.NewCartRepository(database.NewMemoryStore())
	cart, err := NewCartService(context.Background(), repo)
	require.NoError(t, err)
	return cart, repo
}

func TestCartAdd(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	require.NoError(t, cart.Add(ctx, shirt))
	require.NoError(t, cart.Add(ctx, mug))
	require.NoError(t, cart.Add(ctx, shirt))

	items := cart.Items()
	require.Len(t, items, 2, "one line per product id")
	assert.Equal(t, 1, items[0].ProductID, "insertion order preserved")
	assert.Equal(t, 2, items[0].Quantity, "second add increments")
	assert.Equal(t, "Red Shirt", items[0].Title)
	assert.Equal(t, 19.5, items[0].Price)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCartIncrementDecrement(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)
	require.NoError(t, cart.Add(ctx, shirt))

	require.NoError(t, cart.Increment(ctx, shirt.ID))
	require.NoError(t, cart.Increment(ctx, shirt.ID))
	assert.Equal(t, 3, cart.Items()[0].Quantity)

	require.NoError(t, cart.Decrement(ctx, shirt.ID))
	assert.Equal(t, 2, cart.Items()[0].Quantity)

	// Decrement to zero removes the line; no zero-quantity line survives.
	require.NoError(t, cart.Decrement(ctx, shirt.ID))
	require.NoError(t, cart.Decrement(ctx, shirt.ID))
	assert.Empty(t, cart.Items())

	// Unknown ids are no-ops.
	require.NoError(t, cart.Decrement(ctx, 99))
	require.NoError(t, cart.Increment(ctx, 99))
	assert.Empty(t, cart.Items())
}

func TestCartRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)
	require.NoError(t, cart.Add(ctx, shirt))
	require.NoError(t, cart.Add(ctx, shirt))
	require.NoError(t, cart.Add(ctx, mug))

	require.NoError(t, cart.Remove(ctx, shirt.ID), "remove deletes regardless of quantity")
	require.Len(t, cart.Items(), 1)

	require.NoError(t, cart.Clear(ctx))
	assert.Empty(t, cart.Items())
}

func TestCartInvariantsUnderMixedOps(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	ops := []func() error{
		func() error { return cart.Add(ctx, shirt) },
		func() error { return cart.Add(ctx, mug) },
		func() error { return cart.Decrement(ctx, mug.ID) },
		func() error { return cart.Add(ctx, mug) },
		func() error { return cart.Increment(ctx, shirt.ID) },
		func() error { return cart.Add(ctx, shirt) },
		func() error { return cart.Remove(ctx, 42) },
		func() error { return cart.Decrement(ctx, shirt.ID) },
	}
	for _, op := range ops {
		require.NoError(t, op())

		seen := map[int]bool{}
		for _, item := range cart.Items() {
			assert.False(t, seen[item.ProductID], "duplicate line for product %d", item.ProductID)
			seen[item.ProductID] = true
			assert.GreaterOrEqual(t, item.Quantity, 1)
		}
	}
}

func TestCartPersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	cart, repo := newCart(t)

	require.NoError(t, cart.Add(ctx, shirt))
	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart.Items(), stored)

	require.NoError(t, cart.Increment(ctx, shirt.ID))
	stored, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart.Items(), stored)

	require.NoError(t, cart.Remove(ctx, shirt.ID))
	stored, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCartRehydration(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	repo := database.NewCartRepository(store)

	first, err := NewCartService(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, first.Add(ctx, shirt))
	require.NoError(t, first.Add(ctx, shirt))

	// A new session over the same store picks the cart back up.
	second, err := NewCartService(ctx, repo)
	require.NoError(t, err)
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartCorruptStateReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	require.NoError(t, store.Set(ctx, database.KeyCart, "{not json"))

	cart, err := NewCartService(ctx, database.NewCartRepository(store))
	require.NoError(t, err)
	assert.Empty(t, cart.Items())
}
