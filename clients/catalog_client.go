package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront/models"
)

// CatalogClient fetches the full product listing from the catalog provider.
// The provider exposes the entire catalog in one GET; there is no pagination
// and no query parameters.
type CatalogClient struct {
	url    string
	client *http.Client
}

func NewCatalogClient(url string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *CatalogClient) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog provider error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("catalog decode failed: %w", err)
	}
	return products, nil
}
