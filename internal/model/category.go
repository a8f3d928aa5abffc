package model

// Category labels a class of log messages a line can belong to.
// The set is closed: rules may only target these values, and filter
// state may only key on them.
type Category string

const (
	// CategoryError covers failures: errors, crashes, failed operations.
	CategoryError Category = "ERROR"

	// CategoryWarning covers degraded-but-working conditions.
	CategoryWarning Category = "WARNING"

	// CategoryAuth covers authentication and session events:
	// logins, logouts, session lifecycle.
	CategoryAuth Category = "AUTH"
)

// Categories lists every known category in canonical report order.
// Report buckets are always emitted in this order.
var Categories = []Category{CategoryError, CategoryWarning, CategoryAuth}

var validCategories = map[Category]bool{
	CategoryError:   true,
	CategoryWarning: true,
	CategoryAuth:    true,
}

// ValidCategory returns true if c is a member of the closed category set.
func ValidCategory(c Category) bool {
	return validCategories[c]
}
