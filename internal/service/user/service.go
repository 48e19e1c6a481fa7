package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/pkg/logger"
)

// Service implements the user directory business logic. It holds no state of
// its own; everything lives behind the repository. All public methods are
// safe for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates a user service backed by the given repository and notifier.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CreateInput holds the fields for registering a new user.
type CreateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// Create validates input, enforces email uniqueness, persists the user, and
// sends the welcome notification.
//
// The duplicate check here is a best-effort early exit: two concurrent
// creates with the same email can both pass it. The repository's unique
// constraint is the authoritative guard; its conflict also surfaces as
// ErrDuplicateEmail.
//
// If the welcome notification fails, the user is still returned — the write
// already committed, and we don't unwind a registration over a lost email.
// The failure is logged instead.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	email, err := domain.ParseEmail(input.Email)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	u, err := domain.NewUser(input.Name, email, input.Age, time.Time{})
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	if err := s.notifier.SendWelcome(ctx, saved); err != nil {
		logger.Warn("welcome notification failed",
			"user_id", saved.ID, "email", saved.Email.String(), "error", err)
	}

	return saved, nil
}

// GetByID returns a single user. Returns ErrNotFound if the ID is unknown.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByEmail parses the raw email and returns the user registered under it.
// Returns a validation error for malformed input, ErrNotFound for no match.
func (s *Service) GetByEmail(ctx context.Context, rawEmail string) (*domain.User, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByEmail(ctx, email)
}

// List returns all users in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes a user by ID. Deleting an unknown ID is not a failure;
// it returns (false, nil).
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// PromoReport summarizes one promotional dispatch run.
type PromoReport struct {
	Eligible int `json:"eligible"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
}

// SendPromotions delivers content to every user eligible for promotional
// email (adults only). Recipients are independent: one failed send is logged
// and counted, never aborts the rest. The returned report reflects the
// attempts made; a non-nil error means the user list could not be loaded at
// all and nothing was sent.
func (s *Service) SendPromotions(ctx context.Context, content string) (PromoReport, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return PromoReport{}, fmt.Errorf("load users: %w", err)
	}

	var report PromoReport
	for i := range users {
		u := &users[i]
		if !u.CanReceivePromotionalEmails() {
			continue
		}
		report.Eligible++
		if err := s.notifier.SendPromotional(ctx, u, content); err != nil {
			report.Failed++
			logger.Warn("promotional notification failed",
				"user_id", u.ID, "email", u.Email.String(), "error", err)
			continue
		}
		report.Sent++
	}

	logger.Info("promotional dispatch complete",
		"eligible", report.Eligible, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}
