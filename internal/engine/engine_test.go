package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/powerengine/internal/ai"
	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/combat"
	"github.com/udisondev/powerengine/internal/game/cultivation"
	"github.com/udisondev/powerengine/internal/model"
)

type constRoller float64

func (r constRoller) Float64() float64 { return float64(r) }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(data.Default(), combat.DefaultBalance(), 42)
	require.NoError(t, err)
	return e
}

func swordsman(id string, realm, level int32) *model.Character {
	return &model.Character{
		ID:             id,
		Name:           "Swordsman " + id,
		AgeYears:       30,
		Species:        "human",
		BaseAttributes: model.Attributes{Constitution: 10, Agility: 8, SpiritualSense: 6, Comprehension: 5, Fortune: 3, MentalFortitude: 4},
		Cultivation:    data.CultivationState{RealmIndex: realm, Level: level},
		Skills: []model.LearnedSkill{
			{SkillID: "azure_cloud_sword", Level: 3},
			{SkillID: "spring_rejuvenation", Level: 1},
			{SkillID: "iron_body_method", Level: 2},
		},
		Equipment: model.Equipment{data.SlotWeapon: "iron_sword", data.SlotBody: "cloud_silk_robe"},
		Vitals:    model.Vitals{HP: 150, Mana: 80},
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, combat.DefaultBalance(), 1)
	require.Error(t, err)

	bad := combat.DefaultBalance()
	bad.MitigationK = 0
	_, err = New(data.Default(), bad, 1)
	require.Error(t, err)
}

func TestScore_MatchesPotential(t *testing.T) {
	e := newTestEngine(t)
	c := swordsman("a", 1, 0)

	score, err := e.Score(c)
	require.NoError(t, err)
	assert.Positive(t, score)

	potential, err := e.PotentialScore(c)
	require.NoError(t, err)
	assert.Equal(t, score/int64(c.AgeYears), potential)
}

func TestScore_UnknownSpecies(t *testing.T) {
	e := newTestEngine(t)
	c := swordsman("a", 0, 0)
	c.Species = "dragon"

	_, err := e.Score(c)
	require.ErrorIs(t, err, data.ErrUnknownContent)
}

func TestResolveSkillAttack_NotLearned(t *testing.T) {
	e := newTestEngine(t)
	a, b := swordsman("a", 0, 0), swordsman("b", 0, 0)

	_, err := e.ResolveSkillAttack(a, "flame_palm", b, constRoller(0.5))
	require.ErrorIs(t, err, model.ErrSkillNotLearned)
}

func TestResolveSkillAttack_EvadedNeverDamages(t *testing.T) {
	e := newTestEngine(t)
	a, b := swordsman("a", 0, 0), swordsman("b", 0, 0)

	// Roll 0 is below every positive evasion rate.
	out, err := e.ResolveSkillAttack(a, "azure_cloud_sword", b, constRoller(0))
	require.NoError(t, err)
	assert.True(t, out.IsEvaded)
	assert.Zero(t, out.Damage)
}

func TestResolveBasicAttack_Hits(t *testing.T) {
	e := newTestEngine(t)
	a, b := swordsman("a", 2, 0), swordsman("b", 0, 0)

	out, err := e.ResolveBasicAttack(a, b, constRoller(0.99))
	require.NoError(t, err)
	assert.False(t, out.IsEvaded)
	assert.GreaterOrEqual(t, out.Damage, int32(1))
}

func TestDecideNpcAction_HealsWhenLow(t *testing.T) {
	e := newTestEngine(t)
	npc := swordsman("npc", 0, 0)
	npc.IsNPC = true
	npc.Vitals.HP = 10

	d, err := e.DecideNpcAction(npc, swordsman("p", 0, 0), constRoller(0.9))
	require.NoError(t, err)
	assert.Equal(t, ai.ActionCastSkill, d.Action)
	assert.Equal(t, "spring_rejuvenation", d.SkillID)
	assert.NotEmpty(t, d.Justification)
}

func TestDecideNpcAction_UnsetVitalsCountAsFull(t *testing.T) {
	e := newTestEngine(t)
	npc := swordsman("npc", 0, 0)
	npc.IsNPC = true
	npc.Vitals = model.Vitals{}
	opp := swordsman("p", 0, 0)
	opp.Vitals = model.Vitals{}

	d, err := e.DecideNpcAction(npc, opp, constRoller(0.9))
	require.NoError(t, err)
	assert.Equal(t, ai.ActionCastSkill, d.Action)
	assert.Equal(t, "azure_cloud_sword", d.SkillID)
}

func TestDuel_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	a, b := swordsman("a", 1, 0), swordsman("b", 0, 5)

	first, err := e.Duel(context.Background(), a, b, 0)
	require.NoError(t, err)
	second, err := e.Duel(context.Background(), a, b, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first.Turns)
	if !first.Draw {
		assert.Contains(t, []string{"a", "b"}, first.WinnerID)
	}
}

func TestBreakthrough(t *testing.T) {
	e := newTestEngine(t)

	t.Run("mortal enters the ladder", func(t *testing.T) {
		c := swordsman("m", 0, 0)
		c.Cultivation = data.Mortal()

		rolled, err := e.Breakthrough(c)
		require.NoError(t, err)
		assert.Equal(t, data.CultivationState{RealmIndex: 0, Level: 0}, c.Cultivation)
		assert.Len(t, rolled, 3)
		assert.Len(t, c.RolledBonuses, 3)
	})

	t.Run("not enough qi", func(t *testing.T) {
		c := swordsman("q", 0, 0)
		c.Vitals.Qi = 99

		_, err := e.Breakthrough(c)
		require.ErrorIs(t, err, cultivation.ErrInsufficientQi)
		assert.Equal(t, data.CultivationState{RealmIndex: 0, Level: 0}, c.Cultivation)
	})

	t.Run("same seed same rolls", func(t *testing.T) {
		c1, c2 := swordsman("same", 0, 0), swordsman("same", 0, 0)
		c1.Vitals.Qi, c2.Vitals.Qi = 100, 100

		r1, err := e.Breakthrough(c1)
		require.NoError(t, err)
		r2, err := e.Breakthrough(c2)
		require.NoError(t, err)
		assert.Equal(t, r1, r2)
	})
}

func population(n int) []*model.Character {
	chars := make([]*model.Character, 0, n)
	for i := range n {
		c := swordsman(fmt.Sprintf("c%02d", i), int32(i%4), int32(i%3))
		c.AgeYears = int32(20 + i)
		c.IsNPC = i%2 == 0
		chars = append(chars, c)
	}
	return chars
}

func TestRankPopulation(t *testing.T) {
	e := newTestEngine(t)
	chars := population(24)

	board, err := e.RankPopulation(context.Background(), chars, 4)
	require.NoError(t, err)
	require.Len(t, board.Entries, len(chars))

	for i, entry := range board.Entries {
		assert.Equal(t, i+1, entry.Rank)
		if i > 0 {
			assert.LessOrEqual(t, entry.Score, board.Entries[i-1].Score)
		}
	}

	for _, c := range chars {
		want, err := e.Score(c)
		require.NoError(t, err)
		got, ok := board.Find(c.ID)
		require.True(t, ok)
		assert.Equal(t, want, got.Score, c.ID)
		assert.Equal(t, c.IsNPC, got.IsNPC)
	}
}

func TestRankPopulation_WorkerCountDoesNotMatter(t *testing.T) {
	e := newTestEngine(t)
	chars := population(17)

	serial, err := e.RankPopulation(context.Background(), chars, 1)
	require.NoError(t, err)
	parallel, err := e.RankPopulation(context.Background(), chars, 0)
	require.NoError(t, err)

	assert.Equal(t, serial.Entries, parallel.Entries)
}

func TestRankPopulation_Errors(t *testing.T) {
	e := newTestEngine(t)

	t.Run("bad character fails the batch", func(t *testing.T) {
		chars := population(5)
		chars[3].Equipment[data.SlotHead] = "no_such_item"

		_, err := e.RankPopulation(context.Background(), chars, 2)
		require.ErrorIs(t, err, data.ErrUnknownContent)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := e.RankPopulation(ctx, population(3), 2)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("empty population", func(t *testing.T) {
		board, err := e.RankPopulation(context.Background(), nil, 2)
		require.NoError(t, err)
		assert.Empty(t, board.Entries)
	})
}
