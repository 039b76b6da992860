package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/logger"
	"storefront/services"
)

// CartController exposes the cart mutations. Every handler answers with the
// cart lines and the derived totals so the frontend never recomputes
// prices.
type CartController struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

func NewCartController(cart *services.CartService, catalog *services.CatalogService) *CartController {
	return &CartController{Cart: cart, Catalog: catalog}
}

type addItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

// GetCart returns the current cart and totals.
func (cc *CartController) GetCart(c *gin.Context) {
	cc.respond(c)
}

// AddItem puts one unit of the requested product in the cart. The product
// must exist in the catalog; display fields are denormalized from it.
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	product, found, err := cc.Catalog.ProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		logger.Error(c, "catalog load failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if err := cc.Cart.Add(c.Request.Context(), *product); err != nil {
		logger.Error(c, "failed to save cart", err, zap.Int("product_id", req.ProductID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}
	cc.respond(c)
}

// IncrementItem raises the quantity of an existing line by one.
func (cc *CartController) IncrementItem(c *gin.Context) {
	cc.mutate(c, cc.Cart.Increment)
}

// DecrementItem lowers the quantity of an existing line by one; the line
// disappears at zero.
func (cc *CartController) DecrementItem(c *gin.Context) {
	cc.mutate(c, cc.Cart.Decrement)
}

// RemoveItem deletes a line regardless of quantity.
func (cc *CartController) RemoveItem(c *gin.Context) {
	cc.mutate(c, cc.Cart.Remove)
}

// ClearCart empties the cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.Cart.Clear(c.Request.Context()); err != nil {
		logger.Error(c, "failed to clear cart", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	cc.respond(c)
}

func (cc *CartController) mutate(c *gin.Context, op func(ctx context.Context, productID int) error) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := op(c.Request.Context(), id); err != nil {
		logger.Error(c, "failed to save cart", err, zap.Int("product_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}
	cc.respond(c)
}

func (cc *CartController) respond(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":  cc.Cart.Items(),
		"totals": cc.Cart.Totals(),
	})
}
