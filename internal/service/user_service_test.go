package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUserServiceInitIsIdempotent(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewUserService(env.userRepo, time.Minute)
	ctx := context.Background()

	first, err := svc.Init(ctx, "7D444840-9DC0-11D1-B245-5FFDCE74FAD2")
	if err != nil {
		t.Fatalf("init user failed: %v", err)
	}
	if first.UUID != "7d444840-9dc0-11d1-b245-5ffdce74fad2" {
		t.Fatalf("uuid should be canonical lowercase, got %s", first.UUID)
	}
	second, err := svc.Init(ctx, " 7d444840-9dc0-11d1-b245-5ffdce74fad2 ")
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("init should return the same user: %d vs %d", first.ID, second.ID)
	}
	var count int64
	env.db.Table("users").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one user row, got %d", count)
	}
}

func TestUserServiceInitRejectsInvalidUUID(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewUserService(env.userRepo, time.Minute)
	for _, raw := range []string{"", "   ", "not-a-uuid", "7d444840-9dc0-11d1-b245-5ffdce74fad2-extra"} {
		if _, err := svc.Init(context.Background(), raw); !errors.Is(err, ErrInvalidUserUUID) {
			t.Fatalf("expected ErrInvalidUserUUID for %q, got %v", raw, err)
		}
	}
}

func TestUserServiceResolve(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewUserService(env.userRepo, time.Minute)
	ctx := context.Background()

	if _, err := svc.Resolve(ctx, "0b7e6a3c-5f5e-4f7a-9a51-2d0f3f4f9c11"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown uuid should be ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Resolve(ctx, ""); !errors.Is(err, ErrInvalidUserUUID) {
		t.Fatalf("empty uuid should be ErrInvalidUserUUID, got %v", err)
	}

	created, err := svc.Init(ctx, "0b7e6a3c-5f5e-4f7a-9a51-2d0f3f4f9c11")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	resolved, err := svc.Resolve(ctx, "0B7E6A3C-5F5E-4F7A-9A51-2D0F3F4F9C11")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != created.ID {
		t.Fatalf("resolved wrong user: %d vs %d", resolved.ID, created.ID)
	}
}
