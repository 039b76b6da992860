package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/logger"
	"storefront/services"
)

// CatalogController serves the product listing, single-product lookup and
// catalog search.
type CatalogController struct {
	Catalog *services.CatalogService
	Search  *services.SearchService
}

func NewCatalogController(catalog *services.CatalogService, search *services.SearchService) *CatalogController {
	return &CatalogController{Catalog: catalog, Search: search}
}

// GetProducts returns the full catalog, loading it on first use. A fetch
// failure is retryable: the next request triggers a fresh load.
func (cc *CatalogController) GetProducts(c *gin.Context) {
	products, err := cc.Catalog.Load(c.Request.Context())
	if err != nil {
		logger.Error(c, "catalog load failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID returns one product from the cached catalog.
func (cc *CatalogController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, found, err := cc.Catalog.ProductByID(c.Request.Context(), id)
	if err != nil {
		logger.Error(c, "catalog load failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// SearchProducts filters the catalog by the q query parameter. Titles in
// the response are highlighted copies for display.
func (cc *CatalogController) SearchProducts(c *gin.Context) {
	query := c.Query("q")

	state, err := cc.Search.Search(c.Request.Context(), query)
	if err != nil {
		logger.Error(c, "search failed", err, zap.String("query", query))
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}

	highlighted := make([]string, len(state.FilteredProducts))
	for i, p := range state.FilteredProducts {
		highlighted[i] = services.HighlightText(p.Title, state.SearchTerm)
	}

	c.JSON(http.StatusOK, gin.H{
		"search_term":        state.SearchTerm,
		"count":              len(state.FilteredProducts),
		"products":           state.FilteredProducts,
		"highlighted_titles": highlighted,
	})
}
