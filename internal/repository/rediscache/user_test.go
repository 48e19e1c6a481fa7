package rediscache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/repository/memory"
	"github.com/ignite/userhub/internal/repository/rediscache"
	"github.com/ignite/userhub/internal/service/user"
)

func setup(t *testing.T) (*rediscache.UserRepo, *memory.UserRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	backing := memory.NewUserRepo()
	return rediscache.NewUserRepo(backing, client, time.Minute), backing, mr
}

func saveOne(t *testing.T, repo user.Repository, name, email string, age int) *domain.User {
	t.Helper()
	e, err := domain.ParseEmail(email)
	if err != nil {
		t.Fatal(err)
	}
	u, err := domain.NewUser(name, e, age, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	saved, err := repo.Save(context.Background(), u)
	if err != nil {
		t.Fatal(err)
	}
	return saved
}

func TestFindByIDServedFromCache(t *testing.T) {
	repo, backing, _ := setup(t)
	saved := saveOne(t, repo, "John", "john@example.com", 25)

	// Remove from the backing store; a cache hit still serves the user.
	if _, err := backing.Delete(context.Background(), saved.ID); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
	if got.Email.String() != "john@example.com" {
		t.Errorf("unexpected user %+v", got)
	}
}

func TestFindByEmailPopulatesCache(t *testing.T) {
	repo, backing, mr := setup(t)
	saved := saveOne(t, backing, "John", "john@example.com", 25) // bypass cache on write

	if _, err := repo.FindByEmail(context.Background(), saved.Email); err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if !mr.Exists("user:email:john@example.com") {
		t.Error("email key should be cached after a read")
	}
	if !mr.Exists("user:id:" + saved.ID) {
		t.Error("id key should be cached after a read")
	}
}

func TestDeleteInvalidatesCache(t *testing.T) {
	repo, _, mr := setup(t)
	saved := saveOne(t, repo, "John", "john@example.com", 25)

	ok, err := repo.Delete(context.Background(), saved.ID)
	if err != nil || !ok {
		t.Fatalf("delete = (%v, %v)", ok, err)
	}
	if mr.Exists("user:id:"+saved.ID) || mr.Exists("user:email:john@example.com") {
		t.Error("cache keys should be dropped on delete")
	}

	if _, err := repo.FindByID(context.Background(), saved.ID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCacheMissFallsThrough(t *testing.T) {
	repo, _, _ := setup(t)
	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisDownDegradesToBacking(t *testing.T) {
	repo, _, mr := setup(t)
	saved := saveOne(t, repo, "John", "john@example.com", 25)

	mr.Close()

	got, err := repo.FindByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("lookup should fall through to backing store, got %v", err)
	}
	if got.ID != saved.ID {
		t.Error("wrong user returned")
	}
}
