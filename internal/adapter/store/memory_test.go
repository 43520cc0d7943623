package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

func TestMemory_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()

	rec := entity.SessionRecord{ID: "s1", DeviceID: "d1", CreatedAt: time.Unix(100, 0)}
	if err := m.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m.Create(ctx, rec); err == nil {
		t.Fatal("duplicate Create() error = nil")
	}

	got, err := m.Get(ctx, "s1")
	if err != nil || got.DeviceID != "d1" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}

	now := time.Unix(200, 0)
	got.VerifiedAt = &now
	got.Pending = &entity.PendingChallenge{ID: "c1", Type: entity.ChallengeTypeHashcash}
	if err := m.Update(ctx, got); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	// mutations on a returned record must not leak into the store
	got.Pending.Attempts = 99
	again, _ := m.Get(ctx, "s1")
	if again.Pending == nil || again.Pending.Attempts != 0 || !again.Verified() {
		t.Fatalf("stored record = %+v", again)
	}

	if err := m.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := m.Get(ctx, "s1"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("Get() after Delete err = %v", err)
	}
	if err := m.Delete(ctx, "s1"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("second Delete() err = %v", err)
	}
	if err := m.Update(ctx, rec); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("Update() missing err = %v", err)
	}
}
