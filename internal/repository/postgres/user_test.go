package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/service/user"
)

func newMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	email, err := domain.ParseEmail("john@example.com")
	if err != nil {
		t.Fatal(err)
	}
	u, err := domain.NewUser("John Doe", email, 25, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestSaveAssignsID(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Save(context.Background(), testUser(t))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Error("save should assign an ID")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveUniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.Save(context.Background(), testUser(t))
	if !errors.Is(err, user.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name, email, age, created_at FROM users").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "age", "created_at"}))

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByEmail(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, email, age, created_at FROM users").
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "age", "created_at"}).
			AddRow("abc-123", "John Doe", "john@example.com", 25, now))

	got, err := repo.FindByEmail(context.Background(), domain.UserEmail("john@example.com"))
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if got.ID != "abc-123" || got.Email.String() != "john@example.com" || got.Age != 25 {
		t.Errorf("unexpected user %+v", got)
	}
}

func TestFindAllOrdered(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("ORDER BY seq ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "age", "created_at"}).
			AddRow("id-a", "A", "a@example.com", 30, now).
			AddRow("id-b", "B", "b@example.com", 16, now))

	all, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 || all[0].ID != "id-a" || all[1].ID != "id-b" {
		t.Fatalf("expected two users in order, got %v", all)
	}
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs("id-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), "id-a")
	if err != nil || !ok {
		t.Fatalf("delete existing = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = repo.Delete(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("delete missing = (%v, %v), want (false, nil)", ok, err)
	}
}
