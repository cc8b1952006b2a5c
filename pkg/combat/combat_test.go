package combat

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveGoblinScenario(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		r := dice.New(seed)
		p := actor.NewPlayer("Hero")
		goblin := actor.NewEnemy("Goblin", 30, 5, 5)

		res := Resolve(r, p, goblin)

		require.Equal(t, OutcomePlayerWon, res.Outcome, "seed %d", seed)
		assert.False(t, goblin.IsAlive())
		assert.True(t, p.IsAlive())
		assert.Equal(t, 5, p.Experience, "seed %d", seed)
		assert.Equal(t, 5, res.ExperienceGained)
		assert.False(t, res.LeveledUp)
		assert.Equal(t, "Hero defeated Goblin!", res.Log[len(res.Log)-1])
	}
}

func TestResolveNeverLeavesBothAlive(t *testing.T) {
	r := dice.New(77)
	for i := 0; i < 200; i++ {
		p := actor.NewPlayer("Hero")
		p.Health = 1 + r.IntN(60)
		e := actor.NewEnemy("Orc", 1+r.IntN(80), 1+r.IntN(15), 8)

		res := Resolve(r, p, e)

		require.False(t, p.IsAlive() && e.IsAlive())
		require.False(t, !p.IsAlive() && !e.IsAlive(), "both combatants died")
		switch res.Outcome {
		case OutcomePlayerWon:
			assert.False(t, e.IsAlive())
		case OutcomePlayerDefeated:
			assert.False(t, p.IsAlive())
			assert.Zero(t, res.ExperienceGained)
		default:
			t.Fatalf("unexpected outcome %v", res.Outcome)
		}
	}
}

func TestResolveEnemyDoesNotActAfterDying(t *testing.T) {
	r := dice.New(3)
	p := actor.NewPlayer("Hero")
	slime := actor.NewEnemy("Slime", 1, 3, 3)

	res := Resolve(r, p, slime)

	require.Equal(t, OutcomePlayerWon, res.Outcome)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, 100, p.Health)
	for _, line := range res.Log {
		assert.False(t, strings.HasPrefix(line, "Slime"), "slime acted: %q", line)
	}
}

func TestResolveAppendsLevelUpMessage(t *testing.T) {
	r := dice.New(9)
	p := actor.NewPlayer("Hero")
	p.Experience = 8
	slime := actor.NewEnemy("Slime", 1, 3, 3)

	res := Resolve(r, p, slime)

	require.True(t, res.LeveledUp)
	assert.Equal(t, "Hero has leveled up to level 2!", res.Log[len(res.Log)-1])
	assert.Equal(t, 2, p.Level)
	assert.Zero(t, p.Experience)
}

func TestResolvePlayerDefeated(t *testing.T) {
	r := dice.New(4)
	p := actor.NewPlayer("Hero")
	p.Health = 1
	p.AttackPower = 1
	dragon := actor.NewEnemy("Dragon", 100, 15, 20)

	res := Resolve(r, p, dragon)

	assert.Equal(t, OutcomePlayerDefeated, res.Outcome)
	assert.Equal(t, "Hero has been defeated by Dragon.", res.Log[len(res.Log)-1])
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.Experience)
}

func TestResolveIsDeterministic(t *testing.T) {
	run := func() Result {
		return Resolve(dice.New(21), actor.NewPlayer("Hero"), actor.NewEnemy("Troll", 40, 6, 6))
	}
	assert.Equal(t, run(), run())
}

func TestOutcomeJSON(t *testing.T) {
	data, err := json.Marshal(Result{Outcome: OutcomePlayerWon})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"outcome":"player_won"`)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(`{"outcome":"player_defeated"}`), &res))
	assert.Equal(t, OutcomePlayerDefeated, res.Outcome)

	assert.Error(t, json.Unmarshal([]byte(`{"outcome":"draw"}`), &res))
}
