package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation sentinels. Constructors wrap these with field detail;
// callers match with errors.Is.
var (
	ErrInvalidEmail = errors.New("email format is invalid")
	ErrBlankName    = errors.New("user name cannot be blank")
	ErrInvalidAge   = errors.New("user age must be between 0 and 150")
)

const (
	// MaxAge is the upper bound accepted at construction.
	MaxAge = 150
	// AdultAge is the threshold for the adult predicate.
	AdultAge = 18
)

// User represents one registered person. A User with an empty ID has not
// been persisted yet; the repository assigns the ID on first save. Users
// are never mutated after construction — any change means building a new
// instance through NewUser.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     UserEmail `json:"email" db:"email"`
	Age       int       `json:"age" db:"age"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewUser constructs an unsaved user. It is all-or-nothing: a user that
// violates any invariant is never returned. A zero createdAt means "now".
func NewUser(name string, email UserEmail, age int, createdAt time.Time) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}
	if age < 0 || age > MaxAge {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAge, age)
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &User{
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: createdAt,
	}, nil
}

// Saved reports whether the user has been persisted (ID assigned).
func (u *User) Saved() bool { return u.ID != "" }

// IsAdult reports whether the user is 18 or older.
func (u *User) IsAdult() bool { return u.Age >= AdultAge }

// CanReceivePromotionalEmails is the eligibility rule for promotional
// dispatch. Currently identical to IsAdult, but kept as its own predicate
// so the business rule has a name.
func (u *User) CanReceivePromotionalEmails() bool { return u.IsAdult() }
