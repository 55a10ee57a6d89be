package cases

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("case not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrForbidden         = errors.New("not allowed")
	ErrConflict          = errors.New("case was modified concurrently")
)

// ValidationError aggregates every violated rule so the UI can render all of
// them at once instead of one per round trip.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}
