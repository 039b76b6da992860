package services

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"storefront/models"
)

// CatalogState tracks the catalog cache lifecycle.
type CatalogState string

const (
	CatalogIdle    CatalogState = "idle"
	CatalogLoading CatalogState = "loading"
	CatalogReady   CatalogState = "ready"
	CatalogError   CatalogState = "error"
)

// ProductFetcher is the catalog provider seam; clients.CatalogClient is the
// production implementation.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// CatalogService caches the full catalog for the session. The catalog is
// fetched at most once while it stays cached; concurrent Load calls
// coalesce onto a single fetch. A failed load leaves the cache empty and a
// later Load retries from scratch.
type CatalogService struct {
	fetcher ProductFetcher
	group   singleflight.Group

	mu       sync.RWMutex
	state    CatalogState
	products []models.Product
	lastErr  error
}

func NewCatalogService(fetcher ProductFetcher) *CatalogService {
	return &CatalogService{fetcher: fetcher, state: CatalogIdle}
}

// State returns the current cache state.
func (s *CatalogService) State() CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the error of the last failed load, if any.
func (s *CatalogService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Products returns the cached catalog and whether it is ready.
func (s *CatalogService) Products() ([]models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != CatalogReady {
		return nil, false
	}
	return s.products, true
}

// ProductByID looks a single product up in the cached catalog.
func (s *CatalogService) ProductByID(ctx context.Context, id int) (*models.Product, bool, error) {
	products, err := s.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], true, nil
		}
	}
	return nil, false, nil
}

// Load returns the cached catalog, fetching it first when necessary. When
// ctx is canceled mid-fetch the result is discarded and the cache resets to
// idle: a response that arrives after its consumer is gone never commits
// state.
func (s *CatalogService) Load(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.Products(); ok {
		return products, nil
	}

	result, err, _ := s.group.Do("catalog", func() (interface{}, error) {
		s.setState(CatalogLoading, nil, nil)

		products, err := s.fetcher.FetchProducts(ctx)
		if ctx.Err() != nil {
			// Abandoned load: whatever came back is stale, drop it.
			s.setState(CatalogIdle, nil, nil)
			return nil, ctx.Err()
		}
		if err != nil {
			s.setState(CatalogError, nil, err)
			return nil, err
		}

		s.setState(CatalogReady, products, nil)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Product), nil
}

func (s *CatalogService) setState(state CatalogState, products []models.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.products = products
	s.lastErr = err
}
