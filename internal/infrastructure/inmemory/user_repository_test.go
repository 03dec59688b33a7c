package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/cityride/cityride-backend/internal/domain/entity"
	"github.com/cityride/cityride-backend/internal/domain/repository"
)

func TestInsertAssignsIDAndTimestamps(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	u := &entity.User{Email: "a@x.com", PasswordHash: "hash"}
	if err := r.Insert(ctx, u); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if u.ID == "" {
		t.Errorf("id not assigned")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Errorf("timestamps not assigned")
	}
}

func TestInsertDuplicateEmail(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	if err := r.Insert(ctx, &entity.User{Email: "a@x.com"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	err := r.Insert(ctx, &entity.User{Email: "a@x.com"})
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	u := &entity.User{Email: "a@x.com"}
	if err := r.Insert(ctx, u); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := r.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got.Email = "mutated@x.com"

	again, err := r.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("mutation through a returned record reached the store: %v", err)
	}
	if again.ID != u.ID {
		t.Errorf("lookup resolved a different record")
	}
}

func TestUpdateMissing(t *testing.T) {
	r := NewUserRepository()
	err := r.Update(context.Background(), &entity.User{ID: "nope"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
