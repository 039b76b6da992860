package models

// User is a stored account. Email is the identity key.
// Passwords are stored as entered; see DESIGN.md before changing this.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
