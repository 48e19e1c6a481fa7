package notify

import (
	"context"

	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/pkg/logger"
)

// LogNotifier records what would have been sent without delivering
// anything. Used in development and whenever SES is not configured.
type LogNotifier struct{}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) SendWelcome(_ context.Context, u *domain.User) error {
	logger.Info("welcome email (log only)", "recipient", u.Email.String(), "name", u.Name)
	return nil
}

func (LogNotifier) SendPromotional(_ context.Context, u *domain.User, content string) error {
	logger.Info("promotional email (log only)", "recipient", u.Email.String(), "bytes", len(content))
	return nil
}
