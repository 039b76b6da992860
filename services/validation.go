package services

import (
	"regexp"
	"strings"

	"storefront/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// fieldValidator checks one form value and returns an error message, or ""
// when the value is acceptable.
type fieldValidator func(value string) string

func required(label string) fieldValidator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return label + " is required"
		}
		return ""
	}
}

func validEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(value) {
		return "Please enter a valid email address"
	}
	return ""
}

func validPhone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Phone number is required"
	}
	digits := nonDigits.ReplaceAllString(value, "")
	if len(digits) != 10 {
		return "Please enter a valid 10-digit phone number"
	}
	return ""
}

// checkoutValidators maps each shipping field to its validator. Every field
// goes through the same table; there is no per-handler special casing.
var checkoutValidators = []struct {
	field    string
	value    func(d models.ShippingDetails) string
	validate fieldValidator
}{
	{"fullName", func(d models.ShippingDetails) string { return d.FullName }, required("Full name")},
	{"email", func(d models.ShippingDetails) string { return d.Email }, validEmail},
	{"phoneNumber", func(d models.ShippingDetails) string { return d.PhoneNumber }, validPhone},
	{"address", func(d models.ShippingDetails) string { return d.Address }, required("Address")},
	{"city", func(d models.ShippingDetails) string { return d.City }, required("City")},
	{"state", func(d models.ShippingDetails) string { return d.State }, required("State")},
	{"zipCode", func(d models.ShippingDetails) string { return d.ZipCode }, required("ZIP code")},
}

// ValidateShipping applies the validator table to d and returns a map of
// field name to error message. An empty map means the form is valid.
func ValidateShipping(d models.ShippingDetails) map[string]string {
	errs := map[string]string{}
	for _, v := range checkoutValidators {
		if msg := v.validate(v.value(d)); msg != "" {
			errs[v.field] = msg
		}
	}
	return errs
}
