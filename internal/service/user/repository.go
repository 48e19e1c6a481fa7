package user

import (
	"context"

	"github.com/ignite/userhub/internal/domain"
)

// Repository defines the data access contract for users.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Save persists a user and returns the persisted form. A user with no ID
	// gets one assigned; an existing ID is preserved. Saving a new user whose
	// email is already taken returns ErrDuplicateEmail — the backing store's
	// unique constraint is the authoritative guard for email uniqueness.
	Save(ctx context.Context, u *domain.User) (*domain.User, error)

	// FindByID returns a single user. Returns ErrNotFound if it doesn't exist.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail returns the user registered under the given email.
	// Returns ErrNotFound if no user has that email.
	FindByEmail(ctx context.Context, email domain.UserEmail) (*domain.User, error)

	// FindAll returns every user in insertion order.
	FindAll(ctx context.Context) ([]domain.User, error)

	// Delete removes a user. Returns true if a user existed and was removed,
	// false (with nil error) if the ID was unknown.
	Delete(ctx context.Context, id string) (bool, error)
}
