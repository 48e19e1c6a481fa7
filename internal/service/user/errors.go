package user

import "errors"

// Sentinel errors for the user service layer.
var (
	// ErrNotFound means no user matched the lookup. It is a normal outcome,
	// not a fault; handlers map it to 404 without logging.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail means the email is already registered. Distinct from
	// validation errors so callers can map it to a conflict status.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)
