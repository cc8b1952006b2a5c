package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/rpg-engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// Store implements storage.Storage with SQLite for player saves and Redis
// for live sessions.
type Store struct {
	*PlayerRepo
	*SessionRepo
	db *sql.DB
}

// Ensure Store implements Storage interface
var _ storage.Storage = (*Store)(nil)

// NewStore wires an open database and Redis client together.
func NewStore(db *sql.DB, client *redis.Client, sessionTTL time.Duration, logger *slog.Logger) *Store {
	return &Store{
		PlayerRepo:  NewPlayerRepo(db, logger),
		SessionRepo: NewSessionRepo(client, sessionTTL, logger),
		db:          db,
	}
}

// Open opens the SQLite file at dbPath and connects to redisURL.
func Open(ctx context.Context, dbPath, redisURL string, sessionTTL time.Duration, logger *slog.Logger) (*Store, error) {
	db, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	client, err := NewRedisClient(redisURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewStore(db, client, sessionTTL, logger), nil
}

// Ping checks both backends.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return s.SessionRepo.Ping(ctx)
}

// PingComponents checks each backend on its own.
func (s *Store) PingComponents(ctx context.Context) map[string]error {
	return map[string]error{
		"sqlite": s.db.PingContext(ctx),
		"redis":  s.SessionRepo.Ping(ctx),
	}
}

// Close closes both backends.
func (s *Store) Close() error {
	return errors.Join(s.SessionRepo.Close(), s.db.Close())
}
