// Package postgres implements the user repository against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/service/user"
)

// uniqueViolation is the Postgres error code raised when the users_email_key
// constraint rejects an insert. That constraint, not the service-level
// pre-check, is the authoritative guard for one-user-per-email.
const uniqueViolation = "23505"

// UserRepo implements user.Repository against PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a Postgres-backed user repository.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	cp := *u
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, age, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, age = EXCLUDED.age
	`, cp.ID, cp.Name, cp.Email.String(), cp.Age, cp.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &cp, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, age, created_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepo) FindByEmail(ctx context.Context, email domain.UserEmail) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, age, created_at
		FROM users
		WHERE email = $1
	`, email.String()))
}

func (r *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, age, created_at
		FROM users
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		var email string
		if err := rows.Scan(&u.ID, &u.Name, &email, &u.Age, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Email = domain.UserEmail(email)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *UserRepo) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var email string
	err := row.Scan(&u.ID, &u.Name, &email, &u.Age, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Email = domain.UserEmail(email)
	return &u, nil
}
