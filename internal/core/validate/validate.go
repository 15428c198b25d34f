// Package validate holds the field-level checks shared by the domain services.
package validate

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/rivo/uniseg"

	"Tether/internal/core/apperr"
)

// Text checks that s is non-blank and at most maxLen graphemes long.
// Graphemes are counted so that emoji and combining sequences count once.
func Text(field, s string, maxLen int) error {
	if strings.TrimSpace(s) == "" {
		return apperr.NewValidationError(field, "is required")
	}
	if n := uniseg.GraphemeClusterCount(s); n > maxLen {
		return apperr.NewValidationError(field, fmt.Sprintf("must be at most %d characters (got %d)", maxLen, n))
	}
	return nil
}

// OptionalText is Text for fields that may be left empty
func OptionalText(field, s string, maxLen int) error {
	if s == "" {
		return nil
	}
	if n := uniseg.GraphemeClusterCount(s); n > maxLen {
		return apperr.NewValidationError(field, fmt.Sprintf("must be at most %d characters (got %d)", maxLen, n))
	}
	return nil
}

// Email checks that s is a bare address such as "ada@example.com"
func Email(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return apperr.NewValidationError(field, "is required")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return apperr.NewValidationError(field, "must be a valid email address")
	}
	return nil
}

// ID checks that id is a positive surrogate key
func ID(field string, id int64) error {
	if id <= 0 {
		return apperr.NewValidationError(field, "must be a positive integer")
	}
	return nil
}

// DistinctUsers checks that a pairwise relationship does not point at itself
func DistinctUsers(field string, a, b int64) error {
	if a == b {
		return apperr.NewValidationError(field, "must refer to a different user")
	}
	return nil
}
