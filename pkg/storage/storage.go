package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/state"
)

// ErrNotFound is returned when a saved player or session does not exist.
var ErrNotFound = errors.New("not found")

// Save summarizes one saved player record.
type Save struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// PlayerStore persists player snapshots. Every save inserts a new record;
// nothing is ever updated in place.
type PlayerStore interface {
	// SavePlayer writes stats, inventory (names and quantities only) and
	// quests, returning the new record's ID.
	SavePlayer(ctx context.Context, p *actor.Player) (int64, error)
	// LoadPlayer returns the most recent save for name. Item effects are not
	// stored, so loaded stacks are inert.
	LoadPlayer(ctx context.Context, name string) (*actor.Player, error)
	ListSaves(ctx context.Context) ([]Save, error)
}

// SessionStore caches live game sessions between requests.
type SessionStore interface {
	SaveGameState(ctx context.Context, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error
}

// Storage defines a unified interface for all storage operations.
// Player saves are durable; sessions expire.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	PlayerStore
	SessionStore
}
