package models

// CartItem is one product's quantity entry in the in-progress order.
// Title, image and price are denormalized from the product at add time
// so the cart renders without a catalog round trip.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
