package reward

import (
	"errors"
	"fmt"
)

// Validation and workflow errors surfaced to handlers. All of these are
// detected before any mutation, so a caller seeing one of them can assume no
// partial write happened.
var (
	// ErrNotFound means the reward request id does not resolve
	ErrNotFound = errors.New("reward request not found")

	// ErrInvalidActor means the acting user id does not resolve to a known
	// user, so the audit comment could not be attributed
	ErrInvalidActor = errors.New("acting user not found")

	// ErrMissingField means a required creation field is absent
	ErrMissingField = errors.New("missing required field")

	// ErrEmptyBody means a comment body is empty after trimming
	ErrEmptyBody = errors.New("comment body is empty")

	// ErrDuplicateRequest means a non-deleted request already exists for the
	// (user, product) pair
	ErrDuplicateRequest = errors.New("a reward request already exists for this product and user")

	// ErrNoOpTransition means the target status equals the current status
	ErrNoOpTransition = errors.New("status is unchanged")

	// ErrIllegalTransition means the target status is not reachable from the
	// current status
	ErrIllegalTransition = errors.New("illegal status transition")
)

// missingField wraps ErrMissingField with the offending field name
func missingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
