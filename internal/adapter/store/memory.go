package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// Memory keeps sessions in process memory. Records are copied on the way in
// and out so callers never share a PendingChallenge.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]entity.SessionRecord
}

func NewMemory() *Memory {
	return &Memory{recs: make(map[string]entity.SessionRecord)}
}

func (m *Memory) Create(_ context.Context, rec entity.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[rec.ID]; ok {
		return fmt.Errorf("session %s already exists", rec.ID)
	}
	m.recs[rec.ID] = clone(rec)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (entity.SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[id]
	if !ok {
		return entity.SessionRecord{}, entity.ErrSessionNotFound
	}
	return clone(rec), nil
}

func (m *Memory) Update(_ context.Context, rec entity.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[rec.ID]; !ok {
		return entity.ErrSessionNotFound
	}
	m.recs[rec.ID] = clone(rec)
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(m.recs, id)
	return nil
}

func (m *Memory) Close(context.Context) error { return nil }

func clone(rec entity.SessionRecord) entity.SessionRecord {
	if rec.VerifiedAt != nil {
		t := *rec.VerifiedAt
		rec.VerifiedAt = &t
	}
	if rec.Pending != nil {
		p := *rec.Pending
		rec.Pending = &p
	}
	return rec
}
