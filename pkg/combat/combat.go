// Package combat resolves a single encounter between the player and an enemy.
package combat

import (
	"fmt"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
)

// Outcome is the terminal state of an encounter.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomePlayerWon
	OutcomePlayerDefeated
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWon:
		return "player_won"
	case OutcomePlayerDefeated:
		return "player_defeated"
	default:
		return "unspecified"
	}
}

// MarshalText renders the outcome by name in JSON payloads.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "player_won":
		*o = OutcomePlayerWon
	case "player_defeated":
		*o = OutcomePlayerDefeated
	case "unspecified", "":
		*o = OutcomeUnspecified
	default:
		return fmt.Errorf("unknown combat outcome %q", b)
	}
	return nil
}

// Result is what an encounter produced.
type Result struct {
	Log              []string `json:"log"`
	Outcome          Outcome  `json:"outcome"`
	Rounds           int      `json:"rounds"`
	ExperienceGained int      `json:"experience_gained,omitempty"`
	LeveledUp        bool     `json:"leveled_up,omitempty"`
}

// Resolve fights until one side is dead. The player acts first each round and
// the enemy answers only if it survived. Each actor picks basic or special
// attack with equal probability.
//
// On a win the player gains the enemy's experience value, which may trigger a
// single level-up. Removing the enemy from the world is the caller's job.
func Resolve(r dice.Roller, p *actor.Player, e *actor.Enemy) Result {
	var res Result
	for p.IsAlive() && e.IsAlive() {
		res.Rounds++
		res.Log = append(res.Log, act(r, &p.Character, &e.Character))
		if e.IsAlive() {
			res.Log = append(res.Log, act(r, &e.Character, &p.Character))
		}
	}

	if !p.IsAlive() {
		res.Outcome = OutcomePlayerDefeated
		res.Log = append(res.Log, fmt.Sprintf("%s has been defeated by %s.", p.Name, e.Name))
		return res
	}

	res.Outcome = OutcomePlayerWon
	res.Log = append(res.Log, fmt.Sprintf("%s defeated %s!", p.Name, e.Name))
	res.ExperienceGained = e.ExperienceValue
	if msg, ok := p.GainExperience(e.ExperienceValue); ok {
		res.LeveledUp = true
		res.Log = append(res.Log, msg)
	}
	return res
}

func act(r dice.Roller, attacker, target *actor.Character) string {
	if dice.Coin(r) {
		_, msg := attacker.Attack(target, r)
		return msg
	}
	_, msg := attacker.SpecialAttack(target, r)
	return msg
}
