// Package quest tracks the quests assigned to a player.
package quest

import (
	"errors"

	"github.com/jwebster45206/rpg-engine/pkg/dice"
)

// ErrNoQuestsPending is returned when every assigned quest is already complete.
var ErrNoQuestsPending = errors.New("no quests to complete")

// Catalog is the fixed set of quest descriptions handed out by the world.
var Catalog = []string{
	"Defeat 5 Goblins",
	"Collect 3 Healing Herbs",
	"Find the Magic Stone",
	"Defeat the Dragon",
	"Help the Villager",
	"Find the Lost Sword",
}

// Record is one assigned quest. Records are never deleted.
type Record struct {
	Description string `json:"description"`
	Completed   bool   `json:"is_completed"`
}

// Status is the human-readable completion state.
func (r Record) Status() string {
	if r.Completed {
		return "Completed"
	}
	return "Incomplete"
}

// Log is a player's quests in assignment order.
type Log []Record

// Assign appends a new incomplete quest drawn uniformly from pool.
// An empty pool falls back to Catalog.
func (l *Log) Assign(r dice.Roller, pool []string) Record {
	if len(pool) == 0 {
		pool = Catalog
	}
	desc, _ := dice.Pick(r, pool)
	rec := Record{Description: desc}
	*l = append(*l, rec)
	return rec
}

// CompleteNext marks the first incomplete quest as completed and returns it.
func (l Log) CompleteNext() (Record, error) {
	for i := range l {
		if !l[i].Completed {
			l[i].Completed = true
			return l[i], nil
		}
	}
	return Record{}, ErrNoQuestsPending
}

// Pending counts incomplete quests.
func (l Log) Pending() int {
	n := 0
	for _, r := range l {
		if !r.Completed {
			n++
		}
	}
	return n
}
