package models

// NavigationTarget is a routing intent emitted by the core. The navigation
// layer owns the actual redirect; the core only names the destination.
type NavigationTarget string

const (
	NavigateToLogin  NavigationTarget = "login"
	NavigateToHome   NavigationTarget = "home"
	NavigateToSearch NavigationTarget = "search"
	NavigateToCart   NavigationTarget = "cart"
)

// SearchState is the derived result of a catalog search. It is recomputed
// per query and never persisted.
type SearchState struct {
	SearchTerm       string    `json:"search_term"`
	FilteredProducts []Product `json:"filtered_products"`
}
