// Package memory provides an in-memory user repository. It backs unit tests
// and local development when no database is configured. Semantics match the
// Postgres adapter: ID assignment on first save, unique email, insertion order.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/service/user"
)

// UserRepo implements user.Repository in process memory.
// Safe for concurrent use.
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]*domain.User
	order []string // IDs in insertion order
}

// NewUserRepo creates an empty in-memory user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[string]*domain.User)}
}

func (r *UserRepo) Save(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Unique-email guard, same role as the Postgres constraint.
	for _, existing := range r.byID {
		if existing.Email == u.Email && existing.ID != u.ID {
			return nil, user.ErrDuplicateEmail
		}
	}

	cp := *u
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	if _, exists := r.byID[cp.ID]; !exists {
		r.order = append(r.order, cp.ID)
	}
	r.byID[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email domain.UserEmail) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.byID[id]; u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *UserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
