package world

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/combat"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/jwebster45206/rpg-engine/pkg/item"
	"github.com/jwebster45206/rpg-engine/pkg/quest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(seed uint64, enemies []*actor.Enemy, items []item.Item) *World {
	return NewWithPools(actor.NewPlayer("Hero"), dice.New(seed), enemies, items)
}

func TestEncounterEnemyOnEmptyPool(t *testing.T) {
	w := newTestWorld(1, nil, nil)
	_, _, err := w.EncounterEnemy()
	assert.ErrorIs(t, err, ErrNoEnemiesAvailable)
	assert.Nil(t, w.CurrentEnemy())
}

func TestEncounterEnemyPrefersLevelAppropriate(t *testing.T) {
	for seed := uint64(0); seed < 40; seed++ {
		w := newTestWorld(seed, actor.Bestiary(), nil)
		e, msg, err := w.EncounterEnemy()
		require.NoError(t, err)
		// Level 1 admits only health <= 20: the Slime.
		assert.Equal(t, "Slime", e.Name)
		assert.Equal(t, "A wild Slime appears!", msg)
		assert.Same(t, e, w.CurrentEnemy())
	}
}

func TestEncounterEnemyFallsBackToFullPool(t *testing.T) {
	w := newTestWorld(2, []*actor.Enemy{actor.NewEnemy("Dragon", 100, 15, 20)}, nil)
	e, _, err := w.EncounterEnemy()
	require.NoError(t, err)
	assert.Equal(t, "Dragon", e.Name)
}

func TestEncounterEnemyWhileEngaged(t *testing.T) {
	w := newTestWorld(3, actor.Bestiary(), nil)
	_, _, err := w.EncounterEnemy()
	require.NoError(t, err)
	_, _, err = w.EncounterEnemy()
	assert.ErrorIs(t, err, ErrEncounterActive)
}

func TestBattleGoblinScenario(t *testing.T) {
	goblin := actor.NewEnemy("Goblin", 30, 5, 5)
	orc := actor.NewEnemy("Orc", 50, 8, 8)
	w := newTestWorld(5, []*actor.Enemy{goblin, orc}, nil)
	w.current = goblin

	res, err := w.Battle()
	require.NoError(t, err)
	require.Equal(t, combat.OutcomePlayerWon, res.Outcome)

	assert.Nil(t, w.CurrentEnemy())
	assert.Equal(t, []*actor.Enemy{orc}, w.Enemies())
	assert.GreaterOrEqual(t, w.Player.Experience, 5)
}

func TestBattleWithoutEncounter(t *testing.T) {
	w := newTestWorld(1, actor.Bestiary(), nil)
	_, err := w.Battle()
	assert.ErrorIs(t, err, ErrNoEncounter)
}

func TestBattleDefeatEndsSession(t *testing.T) {
	dragon := actor.NewEnemy("Dragon", 100, 15, 20)
	w := newTestWorld(6, []*actor.Enemy{dragon}, item.Catalog())
	w.Player.Health = 1
	w.Player.AttackPower = 1
	w.current = dragon

	res, err := w.Battle()
	require.NoError(t, err)
	require.Equal(t, combat.OutcomePlayerDefeated, res.Outcome)
	assert.Len(t, w.Enemies(), 1, "surviving enemy stays in the pool")
	assert.Nil(t, w.CurrentEnemy())

	_, _, err = w.FindItem()
	assert.ErrorIs(t, err, ErrPlayerDefeated)
	_, err = w.Heal()
	assert.ErrorIs(t, err, ErrPlayerDefeated)
}

func TestFlee(t *testing.T) {
	w := newTestWorld(7, actor.Bestiary(), nil)
	_, err := w.Flee()
	assert.ErrorIs(t, err, ErrNoEncounter)

	_, _, err = w.EncounterEnemy()
	require.NoError(t, err)
	msg, err := w.Flee()
	require.NoError(t, err)
	assert.Equal(t, "Hero flees from Slime.", msg)
	assert.Nil(t, w.CurrentEnemy())
	assert.Len(t, w.Enemies(), 8)
}

func TestFindItemEachOnce(t *testing.T) {
	w := newTestWorld(8, nil, item.Catalog())
	seen := map[string]bool{}
	for range item.Catalog() {
		s, msg, err := w.FindItem()
		require.NoError(t, err)
		assert.Equal(t, 1, s.Quantity)
		assert.False(t, seen[s.Name], "found %s twice", s.Name)
		assert.Equal(t, "Hero finds a "+s.Name+"!", msg)
		seen[s.Name] = true
	}
	assert.Len(t, w.Player.Inventory, len(item.Catalog()))
	assert.Empty(t, w.Items())

	_, _, err := w.FindItem()
	assert.ErrorIs(t, err, ErrNoItemsAvailable)
}

func TestQuestFlow(t *testing.T) {
	w := newTestWorld(9, nil, nil)
	rec, msg, err := w.AssignQuest()
	require.NoError(t, err)
	assert.Equal(t, "New quest assigned: "+rec.Description, msg)

	done, msg, err := w.CompleteQuest()
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, "Quest completed: "+rec.Description, msg)

	_, _, err = w.CompleteQuest()
	assert.True(t, errors.Is(err, quest.ErrNoQuestsPending))
}

func TestHealRefusedDuringEncounter(t *testing.T) {
	w := newTestWorld(10, actor.Bestiary(), nil)
	w.Player.Health = 40
	_, _, err := w.EncounterEnemy()
	require.NoError(t, err)

	_, err = w.Heal()
	assert.ErrorIs(t, err, ErrEncounterActive)
	assert.Equal(t, 40, w.Player.Health)

	_, err = w.Flee()
	require.NoError(t, err)
	msg, err := w.Heal()
	require.NoError(t, err)
	assert.Equal(t, "Hero has been fully healed.", msg)
	assert.Equal(t, 100, w.Player.Health)
}

func TestUseItem(t *testing.T) {
	w := newTestWorld(11, nil, []item.Item{{Name: "Strength Elixir", Kind: item.KindBoost}})
	_, _, err := w.FindItem()
	require.NoError(t, err)

	msg, err := w.UseItem("strength elixir")
	require.NoError(t, err)
	assert.Equal(t, "Hero uses Strength Elixir. Hero gains 5 attack power.", msg)

	_, err = w.UseItem("strength elixir")
	assert.ErrorIs(t, err, actor.ErrItemNotInInventory)
}

func TestFoundItemKeepsEffectBesideLoadedStack(t *testing.T) {
	w := newTestWorld(3, nil, []item.Item{{Name: "Health Potion", Kind: item.KindHeal}})
	// Stacks loaded from a save carry no kind.
	w.Player.Inventory = []item.Stack{{Item: item.Item{Name: "Health Potion", Kind: item.KindInert}, Quantity: 1}}

	_, _, err := w.FindItem()
	require.NoError(t, err)
	assert.Equal(t, []string{"Health Potion (x1)", "Health Potion (x1)"}, w.Player.ShowInventory())

	msg, err := w.UseItem("Health Potion")
	require.NoError(t, err)
	assert.Equal(t, "Hero uses Health Potion. Nothing happens.", msg)
	assert.Equal(t, 100, w.Player.Health)

	msg, err = w.UseItem("Health Potion")
	require.NoError(t, err)
	assert.Equal(t, "Hero uses Health Potion. Hero heals 20 health.", msg)
	assert.Equal(t, 120, w.Player.Health)
	assert.Empty(t, w.Player.Inventory)
}

func TestExplore(t *testing.T) {
	w := newTestWorld(12, actor.Bestiary(), item.Catalog())
	var enemies, items int
	for i := 0; i < 40; i++ {
		ex, err := w.Explore()
		require.NoError(t, err)
		require.NotEmpty(t, ex.Log)
		switch ex.Discovery {
		case DiscoveryEnemy:
			enemies++
			if ex.Enemy != nil {
				_, err := w.Flee()
				require.NoError(t, err)
			}
		case DiscoveryItem:
			items++
		}
	}
	assert.Positive(t, enemies)
	assert.Positive(t, items)
	assert.Empty(t, w.Items())
}

func TestExploreEmptyPoolsReportInLog(t *testing.T) {
	w := newTestWorld(13, nil, nil)
	for i := 0; i < 10; i++ {
		ex, err := w.Explore()
		require.NoError(t, err)
		require.Len(t, ex.Log, 1)
		assert.Contains(t, []string{"No more enemies to fight.", "No more items to find."}, ex.Log[0])
	}
}

func TestMap(t *testing.T) {
	w := newTestWorld(14, nil, nil)
	m := w.Map()
	assert.Equal(t, "Hero's Map", m.Title)
	assert.Equal(t, 1, m.Level)

	rows := m.Rows()
	require.Len(t, rows, MapSize)
	marks := 0
	for _, row := range rows {
		assert.Len(t, row, MapSize)
		for _, c := range row {
			if c == '@' {
				marks++
			}
		}
	}
	assert.Equal(t, 1, marks)
}

func TestSnapshotRoundTrip(t *testing.T) {
	w := New(actor.NewPlayer("Hero"), dice.New(15))
	_, _, err := w.FindItem()
	require.NoError(t, err)
	e, _, err := w.EncounterEnemy()
	require.NoError(t, err)

	data, err := json.Marshal(w)
	require.NoError(t, err)

	var restored World
	require.NoError(t, json.Unmarshal(data, &restored))
	restored.SetRoller(dice.New(16))

	assert.Equal(t, w.Player, restored.Player)
	assert.Len(t, restored.Enemies(), 8)
	assert.Len(t, restored.Items(), 7)
	require.NotNil(t, restored.CurrentEnemy())
	assert.Equal(t, e.Name, restored.CurrentEnemy().Name)

	_, err = restored.Battle()
	require.NoError(t, err)
	assert.Nil(t, restored.CurrentEnemy())
}

func TestSnapshotRejectsBadIndex(t *testing.T) {
	var w World
	err := json.Unmarshal([]byte(`{"player":{"name":"Hero"},"enemies":[],"current_enemy":3}`), &w)
	assert.Error(t, err)
}
