package models

import "time"

type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

// ShippingDetails are the checkout form fields. All string fields must be
// non-blank after trimming before an order is created.
type ShippingDetails struct {
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phoneNumber"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	ZipCode       string        `json:"zipCode"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

const OrderStatusConfirmed = "confirmed"

// Order is a durable receipt of a completed checkout. Once appended to the
// orders collection it is never mutated.
type Order struct {
	ID        int64  `json:"id"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	ShippingDetails
	Items     []CartItem `json:"items"`
	Subtotal  int        `json:"subtotal"`
	Tax       int        `json:"tax"`
	Shipping  int        `json:"shipping"`
	Total     int        `json:"total"`
	OrderDate time.Time  `json:"orderDate"`
	Status    string     `json:"status"`
}
