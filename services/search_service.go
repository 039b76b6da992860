package services

import (
	"context"
	"regexp"
	"strings"

	"storefront/models"
)

// FilterProducts returns the products for which every whitespace-separated
// term of query is a case-insensitive substring of at least one of title,
// description or category. An empty query after trimming means "no filter"
// and returns the whole catalog. Catalog order is preserved; there is no
// ranking.
func FilterProducts(catalog []models.Product, query string) []models.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return catalog
	}

	terms := strings.Fields(strings.ToLower(query))

	matched := []models.Product{}
	for _, p := range catalog {
		title := strings.ToLower(p.Title)
		description := strings.ToLower(p.Description)
		category := strings.ToLower(p.Category)

		all := true
		for _, term := range terms {
			if !strings.Contains(title, term) &&
				!strings.Contains(description, term) &&
				!strings.Contains(category, term) {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, p)
		}
	}
	return matched
}

// HighlightText wraps every case-insensitive occurrence of query in text
// with a <mark> tag for display. The query is escaped before compiling, so
// regex metacharacters in user input match literally.
func HighlightText(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return text
	}

	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
	return re.ReplaceAllStringFunc(text, func(match string) string {
		return "<mark>" + match + "</mark>"
	})
}

// SearchService derives search results from the catalog cache.
type SearchService struct {
	catalog *CatalogService
}

func NewSearchService(catalog *CatalogService) *SearchService {
	return &SearchService{catalog: catalog}
}

// Search loads the catalog if needed and returns the derived state for
// query.
func (s *SearchService) Search(ctx context.Context, query string) (models.SearchState, error) {
	products, err := s.catalog.Load(ctx)
	if err != nil {
		return models.SearchState{}, err
	}
	return models.SearchState{
		SearchTerm:       strings.TrimSpace(query),
		FilteredProducts: FilterProducts(products, query),
	}, nil
}
