package services

import (
	"math"

	"storefront/models"
)

const (
	taxRate               = 0.10
	freeShippingThreshold = 500
	flatShippingFee       = 50
)

// PriceBreakdown is the derived pricing of a cart. All amounts are whole
// currency units.
type PriceBreakdown struct {
	Subtotal int `json:"subtotal"`
	Tax      int `json:"tax"`
	Shipping int `json:"shipping"`
	Total    int `json:"total"`
}

// LineTotal prices one cart line. The unit price is rounded up to a whole
// currency unit before multiplying by quantity; rounding after summing
// would give different totals for fractional prices.
func LineTotal(item models.CartItem) int {
	return int(math.Ceil(item.Price)) * item.Quantity
}

// Price derives the full breakdown for a set of cart lines. Shipping is
// free above the subtotal threshold, otherwise a flat fee; an empty cart
// still carries the fee, but checkout blocks empty carts upstream.
func Price(items []models.CartItem) PriceBreakdown {
	subtotal := 0
	for _, item := range items {
		subtotal += LineTotal(item)
	}

	tax := int(math.Ceil(float64(subtotal) * taxRate))

	shipping := flatShippingFee
	if subtotal > freeShippingThreshold {
		shipping = 0
	}

	return PriceBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}
