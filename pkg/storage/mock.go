package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/item"
	"github.com/jwebster45206/rpg-engine/pkg/state"
)

// MockStorage is an in-memory Storage for testing. It copies values on the
// way in and out and drops item kinds on load, as the SQLite store does.
type MockStorage struct {
	mu         sync.RWMutex
	gamestates map[uuid.UUID][]byte
	players    []savedPlayer
	pingError  error
}

type savedPlayer struct {
	id   int64
	name string
	data []byte
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates: make(map[uuid.UUID][]byte),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SavePlayer(ctx context.Context, p *actor.Player) (int64, error) {
	if p == nil {
		return 0, errors.New("player cannot be nil")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal player: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.players) + 1)
	m.players = append(m.players, savedPlayer{id: id, name: p.Name, data: data})
	return id, nil
}

func (m *MockStorage) LoadPlayer(ctx context.Context, name string) (*actor.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.players) - 1; i >= 0; i-- {
		if m.players[i].name != name {
			continue
		}
		var p actor.Player
		if err := json.Unmarshal(m.players[i].data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player: %w", err)
		}
		for j := range p.Inventory {
			p.Inventory[j].Kind = item.KindInert
		}
		return &p, nil
	}
	return nil, fmt.Errorf("player %q: %w", name, ErrNotFound)
}

func (m *MockStorage) ListSaves(ctx context.Context) ([]Save, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	saves := make([]Save, 0, len(m.players))
	for i := len(m.players) - 1; i >= 0; i-- {
		var p actor.Player
		if err := json.Unmarshal(m.players[i].data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player: %w", err)
		}
		saves = append(saves, Save{ID: m.players[i].id, Name: p.Name, Level: p.Level})
	}
	return saves, nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	data, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamestates[gs.ID] = data
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	data, ok := m.gamestates[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("gamestate %s: %w", id, ErrNotFound)
	}
	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	return &gs, nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	return nil
}
