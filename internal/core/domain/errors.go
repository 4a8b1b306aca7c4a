package domain

import "errors"

// Workflow error taxonomy. Services return these (possibly wrapped with
// context via fmt.Errorf + %w); handlers map them to HTTP status codes.
var (
	// ErrValidation marks bad input shape or values. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown account, submission or event id.
	ErrNotFound = errors.New("not found")

	// State conflicts: the operation is not valid in the entity's current
	// state. Reported to the caller, never retried.
	ErrAlreadyPending    = errors.New("an application is already pending")
	ErrAlreadySeller     = errors.New("account is already an approved seller")
	ErrNotPending        = errors.New("not in pending state")
	ErrReapplyTooSoon    = errors.New("reapplication cooldown has not elapsed")
	ErrNotApprovedSeller = errors.New("account is not an approved seller")
	ErrOrderNotPaid      = errors.New("order is not in paid state")
)

// IsConflict reports whether err is a state-conflict error (409-equivalent).
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyPending) ||
		errors.Is(err, ErrAlreadySeller) ||
		errors.Is(err, ErrNotPending) ||
		errors.Is(err, ErrReapplyTooSoon) ||
		errors.Is(err, ErrNotApprovedSeller) ||
		errors.Is(err, ErrOrderNotPaid)
}

// IsClientError reports whether err is the caller's fault rather than a
// persistence failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || IsConflict(err)
}
