// Package item defines the item catalog and the one-shot effects items have
// on a character.
package item

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies the effect an item has when used.
type Kind string

const (
	KindHeal    Kind = "heal"
	KindBoost   Kind = "boost"
	KindLevelUp Kind = "level_up"
	KindRandom  Kind = "random"
	KindInert   Kind = "inert"
)

const (
	HealAmount  = 20
	BoostAmount = 5
)

// randomPool is what a Random item can resolve to. It must never contain KindRandom.
var randomPool = []Kind{KindHeal, KindBoost, KindLevelUp}

// ParseKind maps a stored effect name to a Kind. Empty or unknown names are inert.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindHeal, KindBoost, KindLevelUp, KindRandom:
		return k
	default:
		return KindInert
	}
}

// Target is the character an item effect is applied to.
type Target interface {
	DisplayName() string
	AddHealth(n int)
	AddAttackPower(n int)
	// ExperienceForLevel is the experience needed to level up at the current level.
	ExperienceForLevel() int
	// GainExperience adds experience and reports the level-up message, if any.
	GainExperience(amount int) (string, bool)
}

// Item is a catalog entry. Each entry can be found once per game.
type Item struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind,omitempty"`
}

// Catalog returns the items available to find in a new world.
func Catalog() []Item {
	return []Item{
		{Name: "Health Potion", Kind: KindHeal},
		{Name: "Strength Elixir", Kind: KindBoost},
		{Name: "Magic Stone", Kind: KindBoost},
		{Name: "Healing Herb", Kind: KindHeal},
		{Name: "Experience Scroll", Kind: KindLevelUp},
		{Name: "Revive Potion", Kind: KindInert},
		{Name: "Energy Drink", Kind: KindBoost},
		{Name: "Mystery Box", Kind: KindRandom},
	}
}

// Apply runs the effect of kind on t and returns a description of what happened.
// Random resolves to one of Heal, Boost or LevelUp at use time.
func Apply(kind Kind, t Target, r dice.Roller) string {
	switch ParseKind(string(kind)) {
	case KindHeal:
		t.AddHealth(HealAmount)
		return fmt.Sprintf("%s heals %d health.", t.DisplayName(), HealAmount)
	case KindBoost:
		t.AddAttackPower(BoostAmount)
		return fmt.Sprintf("%s gains %d attack power.", t.DisplayName(), BoostAmount)
	case KindLevelUp:
		msg := fmt.Sprintf("%s gains enough experience to level up!", t.DisplayName())
		if levelMsg, ok := t.GainExperience(t.ExperienceForLevel()); ok {
			msg += " " + levelMsg
		}
		return msg
	case KindRandom:
		resolved, _ := dice.Pick(r, randomPool)
		return Apply(resolved, t, r)
	default:
		return "Nothing happens."
	}
}

// NormalizeName returns the canonical display form of an item name so that
// lookups ignore case and surrounding whitespace.
func NormalizeName(name string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}
