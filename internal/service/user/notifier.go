package user

import (
	"context"

	"github.com/ignite/userhub/internal/domain"
)

// Notifier is the outbound contract for user-facing messages. The service
// does not care how messages are delivered; adapters own transport,
// timeouts, and retries.
type Notifier interface {
	// SendWelcome sends the one-time welcome message to a newly created user.
	SendWelcome(ctx context.Context, u *domain.User) error

	// SendPromotional sends promotional content to a single user.
	SendPromotional(ctx context.Context, u *domain.User, content string) error
}
