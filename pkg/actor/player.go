package actor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/jwebster45206/rpg-engine/pkg/item"
	"github.com/jwebster45206/rpg-engine/pkg/quest"
)

const (
	StartingHealth      = 100
	StartingAttackPower = 10

	// FullHealth is the absolute value Heal restores to, regardless of level.
	FullHealth = 100

	LevelUpHealth      = 20
	LevelUpAttackPower = 5

	// ExperiencePerLevel scales the level-up threshold: level * ExperiencePerLevel.
	ExperiencePerLevel = 10
)

// ErrItemNotInInventory is returned when using an item the player does not hold.
var ErrItemNotInInventory = errors.New("item not found in inventory")

// Player is the character controlled by the user.
type Player struct {
	Character
	Level           int          `json:"level"`
	Experience      int          `json:"experience"`
	QuestsCompleted int          `json:"quests_completed"`
	Inventory       []item.Stack `json:"inventory"`
	Quests          quest.Log    `json:"quests"`
}

// NewPlayer creates a level 1 player with starting stats.
func NewPlayer(name string) *Player {
	return &Player{
		Character: Character{
			Name:        name,
			Health:      StartingHealth,
			AttackPower: StartingAttackPower,
		},
		Level:     1,
		Inventory: []item.Stack{},
		Quests:    quest.Log{},
	}
}

// DisplayName implements item.Target.
func (p *Player) DisplayName() string { return p.Name }

// AddHealth implements item.Target.
func (p *Player) AddHealth(n int) { p.Health += n }

// AddAttackPower implements item.Target.
func (p *Player) AddAttackPower(n int) { p.AttackPower += n }

// ExperienceForLevel is the experience at which the current level ends.
func (p *Player) ExperienceForLevel() int {
	return p.Level * ExperiencePerLevel
}

// GainExperience adds amount to Experience. Reaching the threshold triggers
// exactly one level-up no matter how far past it the gain goes; the surplus
// is lost when Experience resets.
func (p *Player) GainExperience(amount int) (string, bool) {
	if amount > 0 {
		p.Experience += amount
	}
	if p.Experience >= p.ExperienceForLevel() {
		return p.LevelUp(), true
	}
	return "", false
}

// LevelUp advances one level, raises health and attack power and resets experience.
func (p *Player) LevelUp() string {
	p.Level++
	p.Health += LevelUpHealth
	p.AttackPower += LevelUpAttackPower
	p.Experience = 0
	return fmt.Sprintf("%s has leveled up to level %d!", p.Name, p.Level)
}

// Heal sets Health to FullHealth. It can lower health that items or
// level-ups pushed above it.
func (p *Player) Heal() string {
	p.Health = FullHealth
	return fmt.Sprintf("%s has been fully healed.", p.Name)
}

// AddItem grants one unit of it. Units stack only with a held item of the
// same name and kind; otherwise a new stack is appended.
func (p *Player) AddItem(it item.Item) string {
	if i := p.findKindStack(it); i >= 0 {
		p.Inventory[i].Quantity++
	} else {
		p.Inventory = append(p.Inventory, item.NewStack(it))
	}
	return fmt.Sprintf("%s picks up %s.", p.Name, it.Name)
}

// UseItem applies the oldest stack matching name and consumes one unit of it.
// Names match case-insensitively. Empty stacks leave the inventory.
func (p *Player) UseItem(name string, r dice.Roller) (string, error) {
	i := p.findStack(name)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrItemNotInInventory, name)
	}
	stack := &p.Inventory[i]
	effect, _ := stack.Use(p, r)
	msg := fmt.Sprintf("%s uses %s. %s", p.Name, stack.Name, effect)
	if stack.Empty() {
		p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
	}
	return msg, nil
}

// ShowInventory lists stacks as "Name (xN)".
func (p *Player) ShowInventory() []string {
	if len(p.Inventory) == 0 {
		return []string{"No items in inventory."}
	}
	lines := make([]string, 0, len(p.Inventory))
	for _, s := range p.Inventory {
		lines = append(lines, s.String())
	}
	return lines
}

func (p *Player) findKindStack(it item.Item) int {
	want := item.NormalizeName(it.Name)
	for i, s := range p.Inventory {
		if s.Kind == it.Kind && item.NormalizeName(s.Name) == want {
			return i
		}
	}
	return -1
}

func (p *Player) findStack(name string) int {
	want := item.NormalizeName(name)
	for i, s := range p.Inventory {
		if item.NormalizeName(s.Name) == want {
			return i
		}
	}
	return -1
}

// AssignQuest draws a quest from pool and appends it to the player's log.
func (p *Player) AssignQuest(r dice.Roller, pool []string) (quest.Record, string) {
	rec := p.Quests.Assign(r, pool)
	return rec, fmt.Sprintf("%s accepts quest: %s", p.Name, rec.Description)
}

// CompleteQuest completes the oldest incomplete quest.
func (p *Player) CompleteQuest() (quest.Record, string, error) {
	rec, err := p.Quests.CompleteNext()
	if err != nil {
		return quest.Record{}, "", err
	}
	p.QuestsCompleted++
	return rec, fmt.Sprintf("%s completed quest: %s", p.Name, rec.Description), nil
}

// Stat is one row of the stats view.
type Stat struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// Stats returns the attributes shown on the stats screen.
func (p *Player) Stats() []Stat {
	return []Stat{
		{"Health", strconv.Itoa(p.Health)},
		{"Attack Power", strconv.Itoa(p.AttackPower)},
		{"Level", strconv.Itoa(p.Level)},
		{"Experience", strconv.Itoa(p.Experience)},
		{"Quests Completed", strconv.Itoa(p.QuestsCompleted)},
	}
}
