// Package world owns the enemy and item pools of one game and drives
// exploration, encounters and quests for its player.
package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/combat"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/jwebster45206/rpg-engine/pkg/item"
	"github.com/jwebster45206/rpg-engine/pkg/quest"
)

var (
	ErrNoEnemiesAvailable = errors.New("no more enemies to fight")
	ErrNoItemsAvailable   = errors.New("no more items to find")
	ErrEncounterActive    = errors.New("an enemy is already engaged")
	ErrNoEncounter        = errors.New("no enemy is engaged")
	ErrPlayerDefeated     = errors.New("player has been defeated")
)

// EnemyHealthPerLevel bounds the enemies considered a fair fight:
// health <= player level * EnemyHealthPerLevel.
const EnemyHealthPerLevel = 20

// World is a single game in progress. It is not safe for concurrent use.
type World struct {
	Player *actor.Player

	enemies []*actor.Enemy
	items   []item.Item
	current *actor.Enemy // set only between EncounterEnemy and Battle or Flee
	roller  dice.Roller
}

// New creates a world for p populated with the full bestiary and item catalog.
func New(p *actor.Player, r dice.Roller) *World {
	return NewWithPools(p, r, actor.Bestiary(), item.Catalog())
}

// NewWithPools creates a world with the given enemy and item pools.
func NewWithPools(p *actor.Player, r dice.Roller, enemies []*actor.Enemy, items []item.Item) *World {
	return &World{
		Player:  p,
		enemies: enemies,
		items:   items,
		roller:  r,
	}
}

// SetRoller replaces the random source, e.g. after decoding a snapshot.
func (w *World) SetRoller(r dice.Roller) {
	w.roller = r
}

// Enemies returns the enemies not yet defeated.
func (w *World) Enemies() []*actor.Enemy {
	return slices.Clone(w.enemies)
}

// Items returns the items not yet found.
func (w *World) Items() []item.Item {
	return slices.Clone(w.items)
}

// CurrentEnemy returns the engaged enemy or nil.
func (w *World) CurrentEnemy() *actor.Enemy {
	return w.current
}

// InEncounter reports whether a living enemy is engaged.
func (w *World) InEncounter() bool {
	return w.current != nil && w.current.IsAlive()
}

// EncounterEnemy engages an enemy suited to the player's level. Enemies with
// health <= level*20 are preferred; when none qualify any remaining enemy may
// be chosen.
func (w *World) EncounterEnemy() (*actor.Enemy, string, error) {
	if err := w.checkPlayer(); err != nil {
		return nil, "", err
	}
	if w.InEncounter() {
		return nil, "", ErrEncounterActive
	}
	if len(w.enemies) == 0 {
		return nil, "", ErrNoEnemiesAvailable
	}

	limit := w.Player.Level * EnemyHealthPerLevel
	candidates := make([]*actor.Enemy, 0, len(w.enemies))
	for _, e := range w.enemies {
		if e.Health <= limit {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		candidates = w.enemies
	}

	w.current, _ = dice.Pick(w.roller, candidates)
	return w.current, fmt.Sprintf("A wild %s appears!", w.current.Name), nil
}

// Battle resolves the current encounter. A defeated enemy leaves the pool.
// The encounter is cleared whatever the outcome.
func (w *World) Battle() (combat.Result, error) {
	if err := w.checkPlayer(); err != nil {
		return combat.Result{}, err
	}
	if w.current == nil {
		return combat.Result{}, ErrNoEncounter
	}

	enemy := w.current
	w.current = nil
	res := combat.Resolve(w.roller, w.Player, enemy)
	if res.Outcome == combat.OutcomePlayerWon {
		w.removeEnemy(enemy)
	}
	return res, nil
}

// Flee ends the current encounter without a fight.
func (w *World) Flee() (string, error) {
	if w.current == nil {
		return "", ErrNoEncounter
	}
	name := w.current.Name
	w.current = nil
	return fmt.Sprintf("%s flees from %s.", w.Player.Name, name), nil
}

// FindItem grants the player one unit of a random remaining item. Every
// catalog entry can be found once.
func (w *World) FindItem() (item.Stack, string, error) {
	if err := w.checkPlayer(); err != nil {
		return item.Stack{}, "", err
	}
	if len(w.items) == 0 {
		return item.Stack{}, "", ErrNoItemsAvailable
	}

	it, i := dice.Pick(w.roller, w.items)
	w.items = slices.Delete(w.items, i, i+1)
	w.Player.AddItem(it)
	return item.NewStack(it), fmt.Sprintf("%s finds a %s!", w.Player.Name, it.Name), nil
}

// AssignQuest hands the player a quest from the catalog.
func (w *World) AssignQuest() (quest.Record, string, error) {
	if err := w.checkPlayer(); err != nil {
		return quest.Record{}, "", err
	}
	rec, _ := w.Player.AssignQuest(w.roller, quest.Catalog)
	return rec, fmt.Sprintf("New quest assigned: %s", rec.Description), nil
}

// CompleteQuest completes the player's oldest open quest.
func (w *World) CompleteQuest() (quest.Record, string, error) {
	if err := w.checkPlayer(); err != nil {
		return quest.Record{}, "", err
	}
	rec, _, err := w.Player.CompleteQuest()
	if err != nil {
		return quest.Record{}, "", err
	}
	return rec, fmt.Sprintf("Quest completed: %s", rec.Description), nil
}

// UseItem uses one unit of the named item.
func (w *World) UseItem(name string) (string, error) {
	if err := w.checkPlayer(); err != nil {
		return "", err
	}
	return w.Player.UseItem(name, w.roller)
}

// Heal restores the player to full health. It is refused mid-encounter.
func (w *World) Heal() (string, error) {
	if err := w.checkPlayer(); err != nil {
		return "", err
	}
	if w.InEncounter() {
		return "", fmt.Errorf("cannot heal during battle: %w", ErrEncounterActive)
	}
	return w.Player.Heal(), nil
}

func (w *World) checkPlayer() error {
	if !w.Player.IsAlive() {
		return ErrPlayerDefeated
	}
	return nil
}

func (w *World) removeEnemy(e *actor.Enemy) {
	w.enemies = slices.DeleteFunc(w.enemies, func(x *actor.Enemy) bool { return x == e })
}
