package world

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/jwebster45206/rpg-engine/pkg/item"
)

// Discovery is what a step of exploration turned up.
type Discovery string

const (
	DiscoveryEnemy Discovery = "enemy"
	DiscoveryItem  Discovery = "item"
)

// Exploration reports one call to Explore. A domain status such as an empty
// pool is reported in Log rather than as an error.
type Exploration struct {
	Discovery Discovery    `json:"discovery"`
	Enemy     *actor.Enemy `json:"enemy,omitempty"`
	Item      *item.Stack  `json:"item,omitempty"`
	Log       []string     `json:"log"`
}

// Explore flips a coin between meeting an enemy and finding an item.
// Meeting an enemy only engages it; call Battle to fight.
func (w *World) Explore() (Exploration, error) {
	if err := w.checkPlayer(); err != nil {
		return Exploration{}, err
	}
	if w.InEncounter() {
		return Exploration{}, ErrEncounterActive
	}

	if dice.Coin(w.roller) {
		ex := Exploration{Discovery: DiscoveryEnemy}
		e, msg, err := w.EncounterEnemy()
		switch {
		case errors.Is(err, ErrNoEnemiesAvailable):
			ex.Log = []string{"No more enemies to fight."}
		case err != nil:
			return Exploration{}, err
		default:
			ex.Enemy = e
			ex.Log = []string{msg}
		}
		return ex, nil
	}

	ex := Exploration{Discovery: DiscoveryItem}
	s, msg, err := w.FindItem()
	switch {
	case errors.Is(err, ErrNoItemsAvailable):
		ex.Log = []string{"No more items to find."}
	case err != nil:
		return Exploration{}, err
	default:
		ex.Item = &s
		ex.Log = []string{msg}
	}
	return ex, nil
}

// MapSize is the width and height of the exploration map.
const MapSize = 10

// MapView is the data a map renderer needs. The position carries no game
// state; it is rolled fresh for every view.
type MapView struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Size  int    `json:"size"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// Map returns a view of the player's surroundings.
func (w *World) Map() MapView {
	return MapView{
		Title: fmt.Sprintf("%s's Map", w.Player.Name),
		Level: w.Player.Level,
		Size:  MapSize,
		X:     w.roller.IntN(MapSize),
		Y:     w.roller.IntN(MapSize),
	}
}

// Rows renders the map as text, marking the player with '@'.
func (m MapView) Rows() []string {
	rows := make([]string, m.Size)
	for y := range m.Size {
		var sb strings.Builder
		for x := range m.Size {
			if x == m.X && y == m.Y {
				sb.WriteByte('@')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// Renderer presents log lines to the user. The simulation never writes
// output itself; presentation layers implement Renderer.
type Renderer interface {
	Render(lines ...string)
}
