package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront/database"
	"storefront/models"
)

// CheckoutState is the pipeline position of one checkout attempt.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutValidating CheckoutState = "validating"
	CheckoutRejected   CheckoutState = "rejected"
	CheckoutProcessing CheckoutState = "processing"
	CheckoutPlaced     CheckoutState = "placed"
)

// RejectReason names why a checkout attempt did not reach Placed.
type RejectReason string

const (
	ReasonNotAuthenticated  RejectReason = "not-authenticated"
	ReasonEmptyCart         RejectReason = "empty-cart"
	ReasonValidationFailed  RejectReason = "validation-failed"
	ReasonAlreadyProcessing RejectReason = "already-processing"
)

// CheckoutResult reports the outcome of one PlaceOrder invocation. Redirect
// is a navigation intent for the external routing layer.
type CheckoutResult struct {
	State       CheckoutState           `json:"state"`
	Reason      RejectReason            `json:"reason,omitempty"`
	FieldErrors map[string]string       `json:"field_errors,omitempty"`
	Order       *models.Order           `json:"order,omitempty"`
	Redirect    models.NavigationTarget `json:"redirect,omitempty"`
}

// CheckoutService runs the gates and steps from checkout initiation to
// order placement: auth gate, cart gate, field validation, simulated
// settlement, order materialization, cart reset.
type CheckoutService struct {
	cart    *CartService
	orders  *database.OrderRepository
	session *database.SessionRepository
	delay   time.Duration

	mu          sync.Mutex
	processing  bool
	lastOrderID int64
}

func NewCheckoutService(cart *CartService, orders *database.OrderRepository, session *database.SessionRepository, delay time.Duration) *CheckoutService {
	return &CheckoutService{cart: cart, orders: orders, session: session, delay: delay}
}

// Prefill returns shipping details seeded from the session user, for the
// checkout form. Returns the auth gate result as well so callers can
// redirect before rendering.
func (s *CheckoutService) Prefill(ctx context.Context) (models.ShippingDetails, *CheckoutResult, error) {
	user, err := s.session.Current(ctx)
	if err != nil {
		return models.ShippingDetails{}, nil, err
	}
	if user == nil {
		return models.ShippingDetails{}, &CheckoutResult{
			State:    CheckoutRejected,
			Reason:   ReasonNotAuthenticated,
			Redirect: models.NavigateToLogin,
		}, nil
	}
	return models.ShippingDetails{
		FullName:      user.Name,
		Email:         user.Email,
		PaymentMethod: models.PaymentCard,
	}, nil, nil
}

// PlaceOrder runs one checkout attempt to completion. Only one attempt may
// be processing at a time; a submit while another is in flight is rejected,
// never queued.
func (s *CheckoutService) PlaceOrder(ctx context.Context, details models.ShippingDetails) (*CheckoutResult, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return &CheckoutResult{State: CheckoutRejected, Reason: ReasonAlreadyProcessing}, nil
	}
	s.processing = true
	s.mu.Unlock()

	result, err := s.run(ctx, details)

	s.mu.Lock()
	s.processing = false
	s.mu.Unlock()
	return result, err
}

func (s *CheckoutService) run(ctx context.Context, details models.ShippingDetails) (*CheckoutResult, error) {
	// Auth gate. Checked again here even though the entry point already
	// gates, the session may have been logged out in between.
	user, err := s.session.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &CheckoutResult{
			State:    CheckoutRejected,
			Reason:   ReasonNotAuthenticated,
			Redirect: models.NavigateToLogin,
		}, nil
	}

	// Cart gate.
	items := s.cart.Items()
	if len(items) == 0 {
		return &CheckoutResult{
			State:    CheckoutRejected,
			Reason:   ReasonEmptyCart,
			Redirect: models.NavigateToHome,
		}, nil
	}

	// Validation.
	if fieldErrs := ValidateShipping(details); len(fieldErrs) > 0 {
		return &CheckoutResult{
			State:       CheckoutRejected,
			Reason:      ReasonValidationFailed,
			FieldErrors: fieldErrs,
		}, nil
	}

	if details.PaymentMethod == "" {
		details.PaymentMethod = models.PaymentCard
	}

	// Simulated settlement. Cooperative: a canceled caller stops waiting
	// and no order is created.
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	pricing := Price(items)
	order := models.Order{
		ID:              s.nextOrderID(),
		UserID:          user.Email,
		UserEmail:       user.Email,
		UserName:        user.Name,
		ShippingDetails: trimmed(details),
		Items:           items,
		Subtotal:        pricing.Subtotal,
		Tax:             pricing.Tax,
		Shipping:        pricing.Shipping,
		Total:           pricing.Total,
		OrderDate:       time.Now().UTC(),
		Status:          models.OrderStatusConfirmed,
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return nil, err
	}
	if err := s.cart.Clear(ctx); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		State:    CheckoutPlaced,
		Order:    &order,
		Redirect: models.NavigateToHome,
	}, nil
}

// nextOrderID derives the id from wall-clock milliseconds with a monotonic
// floor, so rapid repeated placements never collide.
func (s *CheckoutService) nextOrderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= s.lastOrderID {
		id = s.lastOrderID + 1
	}
	s.lastOrderID = id
	return id
}

func trimmed(d models.ShippingDetails) models.ShippingDetails {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
	d.ZipCode = strings.TrimSpace(d.ZipCode)
	return d
}
