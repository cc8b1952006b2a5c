package world

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/item"
)

type snapshot struct {
	Player  *actor.Player  `json:"player"`
	Enemies []*actor.Enemy `json:"enemies"`
	Items   []item.Item    `json:"items"`
	// Current indexes Enemies; nil when no encounter is in progress.
	Current *int `json:"current_enemy,omitempty"`
}

// MarshalJSON encodes the world, including an in-progress encounter.
func (w *World) MarshalJSON() ([]byte, error) {
	s := snapshot{
		Player:  w.Player,
		Enemies: w.enemies,
		Items:   w.items,
	}
	if s.Enemies == nil {
		s.Enemies = []*actor.Enemy{}
	}
	if s.Items == nil {
		s.Items = []item.Item{}
	}
	for i, e := range w.enemies {
		if e == w.current {
			s.Current = &i
			break
		}
	}
	return json.Marshal(s)
}

// UnmarshalJSON restores a world. The random source is not part of the
// encoding; call SetRoller before playing.
func (w *World) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal world: %w", err)
	}
	if s.Player == nil {
		return fmt.Errorf("world snapshot has no player")
	}
	w.Player = s.Player
	w.enemies = s.Enemies
	w.items = s.Items
	w.current = nil
	if s.Current != nil {
		if *s.Current < 0 || *s.Current >= len(s.Enemies) {
			return fmt.Errorf("current enemy index %d out of range", *s.Current)
		}
		w.current = s.Enemies[*s.Current]
	}
	return nil
}
