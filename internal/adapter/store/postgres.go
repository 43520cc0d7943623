package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

const schema = `
CREATE SCHEMA IF NOT EXISTS sessionpow;

CREATE TABLE IF NOT EXISTS sessionpow.sessions (
	id          TEXT PRIMARY KEY,
	device_id   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	verified_at TIMESTAMPTZ,
	pending     JSONB
);
`

// Postgres stores sessions in sessionpow.sessions. The pending challenge is a JSONB column.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL and pings it.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Migrate creates the schema if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, rec entity.SessionRecord) error {
	pending, err := encodePending(rec.Pending)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO sessionpow.sessions (id, device_id, created_at, verified_at, pending)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.DeviceID, rec.CreatedAt, rec.VerifiedAt, pending)
	return err
}

func (s *Postgres) Get(ctx context.Context, id string) (entity.SessionRecord, error) {
	var (
		rec     entity.SessionRecord
		pending []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, device_id, created_at, verified_at, pending
		FROM sessionpow.sessions
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.DeviceID, &rec.CreatedAt, &rec.VerifiedAt, &pending)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.SessionRecord{}, entity.ErrSessionNotFound
		}
		return entity.SessionRecord{}, err
	}
	if len(pending) > 0 {
		rec.Pending = &entity.PendingChallenge{}
		if err := json.Unmarshal(pending, rec.Pending); err != nil {
			return entity.SessionRecord{}, fmt.Errorf("decode pending challenge: %w", err)
		}
	}
	return rec, nil
}

func (s *Postgres) Update(ctx context.Context, rec entity.SessionRecord) error {
	pending, err := encodePending(rec.Pending)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE sessionpow.sessions
		SET verified_at = $2, pending = $3
		WHERE id = $1
	`, rec.ID, rec.VerifiedAt, pending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSessionNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessionpow.sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSessionNotFound
	}
	return nil
}

func (s *Postgres) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// encodePending returns nil for a missing challenge so the column stays NULL.
func encodePending(p *entity.PendingChallenge) (any, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode pending challenge: %w", err)
	}
	return string(b), nil
}
