package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/world"
)

// HistoryLimit caps the log lines kept with a session.
const HistoryLimit = 200

// GameState is one play session: the world, the log shown so far and
// whether the session has ended.
type GameState struct {
	ID        uuid.UUID    `json:"id"` // Unique ID per session
	World     *world.World `json:"world"`
	History   []string     `json:"history,omitempty"`
	GameOver  bool         `json:"game_over,omitempty"` // Player was defeated; the session accepts no more actions
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewGameState starts a session around w.
func NewGameState(w *world.World) *GameState {
	now := time.Now()
	return &GameState{
		ID:        uuid.New(),
		World:     w,
		History:   make([]string, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Player returns the session's player, or nil for an empty state.
func (gs *GameState) Player() *actor.Player {
	if gs == nil || gs.World == nil {
		return nil
	}
	return gs.World.Player
}

// Record appends log lines, drops the oldest beyond HistoryLimit and marks
// the session over once the player is dead.
func (gs *GameState) Record(lines ...string) {
	gs.History = append(gs.History, lines...)
	if over := len(gs.History) - HistoryLimit; over > 0 {
		gs.History = append(gs.History[:0], gs.History[over:]...)
	}
	if p := gs.Player(); p != nil && !p.IsAlive() {
		gs.GameOver = true
	}
}

// Recent returns up to n of the latest log lines.
func (gs *GameState) Recent(n int) []string {
	if n <= 0 || len(gs.History) == 0 {
		return nil
	}
	if n > len(gs.History) {
		n = len(gs.History)
	}
	return gs.History[len(gs.History)-n:]
}
