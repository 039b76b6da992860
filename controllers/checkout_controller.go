package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/logger"
	"storefront/models"
	"storefront/services"
)

// CheckoutController front-ends the checkout pipeline. Rejections map to
// HTTP statuses; the pipeline result rides along so the navigation layer
// can act on the redirect intent.
type CheckoutController struct {
	Checkout *services.CheckoutService
	Cart     *services.CartService
}

func NewCheckoutController(checkout *services.CheckoutService, cart *services.CartService) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Cart: cart}
}

// GetCheckout returns the pre-filled form and current totals, or the auth
// gate rejection when nobody is logged in.
func (cc *CheckoutController) GetCheckout(c *gin.Context) {
	prefill, rejected, err := cc.Checkout.Prefill(c.Request.Context())
	if err != nil {
		logger.Error(c, "checkout prefill failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load checkout"})
		return
	}
	if rejected != nil {
		c.JSON(http.StatusUnauthorized, rejected)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prefill": prefill,
		"items":   cc.Cart.Items(),
		"totals":  cc.Cart.Totals(),
	})
}

// PlaceOrder runs the pipeline for the submitted shipping details.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	var details models.ShippingDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := cc.Checkout.PlaceOrder(c.Request.Context(), details)
	if err != nil {
		logger.Error(c, "order placement failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		return
	}

	switch {
	case result.State == services.CheckoutPlaced:
		logger.Info(c, "order placed", zap.Int64("order_id", result.Order.ID))
		c.JSON(http.StatusCreated, result)
	case result.Reason == services.ReasonNotAuthenticated:
		c.JSON(http.StatusUnauthorized, result)
	case result.Reason == services.ReasonAlreadyProcessing:
		c.JSON(http.StatusConflict, result)
	default:
		c.JSON(http.StatusBadRequest, result)
	}
}
