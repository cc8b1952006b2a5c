// Package actor holds the combat and progression state of the player and of
// the enemies they fight.
package actor

import (
	"fmt"

	"github.com/jwebster45206/rpg-engine/pkg/dice"
)

// Character is the state shared by players and enemies.
// Health has no upper bound; anything at or below zero is dead.
type Character struct {
	Name        string `json:"name"`
	Health      int    `json:"health"`
	AttackPower int    `json:"attack_power"`
}

// Attack hits target for a uniform roll in [1, AttackPower].
func (c *Character) Attack(target *Character, r dice.Roller) (int, string) {
	damage := dice.Between(r, 1, c.AttackPower)
	target.TakeDamage(damage)
	return damage, fmt.Sprintf("%s attacks %s for %d damage.", c.Name, target.Name, damage)
}

// SpecialAttack hits target for a uniform roll in [AttackPower, 2*AttackPower].
// Its lowest roll equals the basic attack's highest, so it never averages less.
func (c *Character) SpecialAttack(target *Character, r dice.Roller) (int, string) {
	damage := dice.Between(r, c.AttackPower, c.AttackPower*2)
	target.TakeDamage(damage)
	return damage, fmt.Sprintf("%s performs a special attack on %s for %d damage!", c.Name, target.Name, damage)
}

// TakeDamage reduces Health by n. Health may go negative.
func (c *Character) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	c.Health -= n
}

// IsAlive returns true while Health is above zero.
func (c *Character) IsAlive() bool {
	return c.Health > 0
}
