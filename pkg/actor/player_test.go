package actor

import (
	"errors"
	"testing"

	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/jwebster45206/rpg-engine/pkg/item"
	"github.com/jwebster45206/rpg-engine/pkg/quest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer("Aria")
	assert.Equal(t, "Aria", p.Name)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 10, p.AttackPower)
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.Experience)
	assert.Zero(t, p.QuestsCompleted)
	assert.Empty(t, p.Inventory)
	assert.Empty(t, p.Quests)
}

func TestGainExperienceBelowThreshold(t *testing.T) {
	p := NewPlayer("Aria")
	for i := 0; i < 3; i++ {
		_, leveled := p.GainExperience(3)
		assert.False(t, leveled)
	}
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 9, p.Experience)
}

func TestGainExperienceLevelsOnceRegardlessOfMagnitude(t *testing.T) {
	p := NewPlayer("Aria")
	msg, leveled := p.GainExperience(1000)
	require.True(t, leveled)
	assert.Equal(t, "Aria has leveled up to level 2!", msg)
	assert.Equal(t, 2, p.Level)
	assert.Zero(t, p.Experience)
}

func TestGainExperienceAtThreshold(t *testing.T) {
	p := NewPlayer("Aria")
	p.Level = 3
	p.Experience = 25
	_, leveled := p.GainExperience(5)
	assert.True(t, leveled)
	assert.Equal(t, 4, p.Level)
}

func TestLevelUp(t *testing.T) {
	p := NewPlayer("Aria")
	p.Experience = 7
	p.Health = 33
	p.LevelUp()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 53, p.Health)
	assert.Equal(t, 15, p.AttackPower)
	assert.Zero(t, p.Experience)
}

func TestHealIsAbsolute(t *testing.T) {
	p := NewPlayer("Aria")
	p.Health = 12
	p.Heal()
	assert.Equal(t, FullHealth, p.Health)

	p.Health = 160
	p.Heal()
	assert.Equal(t, FullHealth, p.Health)
}

func TestAddItemStacksByName(t *testing.T) {
	p := NewPlayer("Aria")
	potion := item.Item{Name: "Health Potion", Kind: item.KindHeal}
	assert.Equal(t, "Aria picks up Health Potion.", p.AddItem(potion))
	p.AddItem(potion)
	p.AddItem(item.Item{Name: "Magic Stone", Kind: item.KindBoost})

	require.Len(t, p.Inventory, 2)
	assert.Equal(t, 2, p.Inventory[0].Quantity)
	assert.Equal(t, []string{"Health Potion (x2)", "Magic Stone (x1)"}, p.ShowInventory())
}

func TestAddItemKeepsKindsApart(t *testing.T) {
	p := NewPlayer("Aria")
	p.Inventory = []item.Stack{{Item: item.Item{Name: "Health Potion", Kind: item.KindInert}, Quantity: 1}}

	p.AddItem(item.Item{Name: "Health Potion", Kind: item.KindHeal})
	p.AddItem(item.Item{Name: "health potion", Kind: item.KindHeal})

	require.Len(t, p.Inventory, 2)
	assert.Equal(t, item.KindInert, p.Inventory[0].Kind)
	assert.Equal(t, 1, p.Inventory[0].Quantity)
	assert.Equal(t, item.KindHeal, p.Inventory[1].Kind)
	assert.Equal(t, 2, p.Inventory[1].Quantity)
}

func TestShowInventoryEmpty(t *testing.T) {
	assert.Equal(t, []string{"No items in inventory."}, NewPlayer("Aria").ShowInventory())
}

func TestUseItem(t *testing.T) {
	r := dice.New(2)

	t.Run("quantity one removes the stack", func(t *testing.T) {
		p := NewPlayer("Aria")
		p.AddItem(item.Item{Name: "Health Potion", Kind: item.KindHeal})
		msg, err := p.UseItem("Health Potion", r)
		require.NoError(t, err)
		assert.Equal(t, "Aria uses Health Potion. Aria heals 20 health.", msg)
		assert.Equal(t, 120, p.Health)
		assert.Empty(t, p.Inventory)
	})

	t.Run("quantity above one decrements", func(t *testing.T) {
		p := NewPlayer("Aria")
		p.Inventory = []item.Stack{{Item: item.Item{Name: "Energy Drink", Kind: item.KindBoost}, Quantity: 3}}
		_, err := p.UseItem("energy drink", r)
		require.NoError(t, err)
		require.Len(t, p.Inventory, 1)
		assert.Equal(t, 2, p.Inventory[0].Quantity)
		assert.Equal(t, 15, p.AttackPower)
	})

	t.Run("level up item", func(t *testing.T) {
		p := NewPlayer("Aria")
		p.AddItem(item.Item{Name: "Experience Scroll", Kind: item.KindLevelUp})
		_, err := p.UseItem("Experience Scroll", r)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Level)
	})

	t.Run("reloaded stack is inert but still consumed", func(t *testing.T) {
		p := NewPlayer("Aria")
		p.Inventory = []item.Stack{{Item: item.Item{Name: "Health Potion", Kind: item.KindInert}, Quantity: 1}}
		msg, err := p.UseItem("Health Potion", r)
		require.NoError(t, err)
		assert.Contains(t, msg, "Nothing happens.")
		assert.Equal(t, 100, p.Health)
		assert.Empty(t, p.Inventory)
	})

	t.Run("missing item", func(t *testing.T) {
		p := NewPlayer("Aria")
		_, err := p.UseItem("Excalibur", r)
		assert.True(t, errors.Is(err, ErrItemNotInInventory))
	})
}

func TestQuests(t *testing.T) {
	p := NewPlayer("Aria")
	rec, msg := p.AssignQuest(dice.New(4), []string{"Help the Villager"})
	assert.Equal(t, "Help the Villager", rec.Description)
	assert.Equal(t, "Aria accepts quest: Help the Villager", msg)

	done, msg, err := p.CompleteQuest()
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, "Aria completed quest: Help the Villager", msg)
	assert.Equal(t, 1, p.QuestsCompleted)

	_, _, err = p.CompleteQuest()
	assert.ErrorIs(t, err, quest.ErrNoQuestsPending)
	assert.Equal(t, 1, p.QuestsCompleted)
}

func TestStats(t *testing.T) {
	stats := NewPlayer("Aria").Stats()
	require.Len(t, stats, 5)
	assert.Equal(t, Stat{Attribute: "Health", Value: "100"}, stats[0])
	assert.Equal(t, Stat{Attribute: "Quests Completed", Value: "0"}, stats[4])
}
