package gold

import "errors"

// Both error classes surface to the HTTP caller as 503 with descriptive text.
var (
	// ErrUnavailable marks transport failures and empty/malformed upstream responses
	ErrUnavailable = errors.New("upstream data unavailable")

	// ErrInsufficientData marks series too short for moving-average analysis
	ErrInsufficientData = errors.New("insufficient data")
)
