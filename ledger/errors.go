package ledger

import "errors"

var (
	// ErrNotFound: the referenced event or registration does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the caller lacks ownership or role for the action.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateRegistration: the user already holds a non-rejected
	// registration for the event.
	ErrDuplicateRegistration = errors.New("duplicate registration")
	// ErrInvalidTransition: a no-op or disallowed status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrPaymentRequired: the free-RSVP path was called for a paid event.
	ErrPaymentRequired = errors.New("payment required")
	// ErrStoreUnavailable wraps failures of the backing store. Propagated,
	// never retried here.
	ErrStoreUnavailable = errors.New("store unavailable")
)
