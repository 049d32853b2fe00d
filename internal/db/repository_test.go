package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/ranking"
	"github.com/udisondev/powerengine/internal/model"
)

func testCharacter(id string, npc bool) *model.Character {
	return &model.Character{
		ID:             id,
		Name:           "Cultivator " + id,
		IsNPC:          npc,
		AgeYears:       42,
		Species:        "human",
		BaseAttributes: model.Attributes{Constitution: 12, Agility: 7, SpiritualSense: 9},
		Cultivation:    data.CultivationState{RealmIndex: 1, Level: 2},
		RolledBonuses:  []model.RolledBonus{{Target: data.StatConstitution, Value: 3}},
		Skills:         []model.LearnedSkill{{SkillID: "flame_palm", Level: 4}},
		Equipment:      model.Equipment{data.SlotWeapon: "iron_sword"},
		Affinities:     []model.ElementalAffinity{{Type: data.AffinityFire, Purity: 62.5}},
		Vitals:         model.Vitals{HP: 90, Mana: 40, Qi: 700},
	}
}

func TestCharacterRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCharacterRepository(pool)
	ctx := context.Background()

	missing, err := repo.LoadByID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	hero := testCharacter("hero", false)
	require.NoError(t, repo.Save(ctx, hero))

	got, err := repo.LoadByID(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, hero, got)

	hero.Vitals.Qi = 0
	hero.Cultivation.Level = 0
	require.NoError(t, repo.Save(ctx, hero))
	got, err = repo.LoadByID(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, int32(0), got.Vitals.Qi)
	assert.Equal(t, int32(0), got.Cultivation.Level)

	require.NoError(t, repo.SaveAll(ctx, []*model.Character{
		testCharacter("b_npc", true),
		testCharacter("a_npc", true),
	}))

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a_npc", "b_npc", "hero"}, []string{all[0].ID, all[1].ID, all[2].ID})

	npcs, err := repo.LoadNPCs(ctx)
	require.NoError(t, err)
	require.Len(t, npcs, 2)
	for _, n := range npcs {
		assert.True(t, n.IsNPC)
	}

	require.NoError(t, repo.Delete(ctx, "a_npc"))
	npcs, err = repo.LoadNPCs(ctx)
	require.NoError(t, err)
	assert.Len(t, npcs, 1)
}

func TestRankingRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRankingRepository(pool)
	ctx := context.Background()

	none, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	first := ranking.NewLeaderboard([]ranking.Entry{
		{CharacterID: "a", Name: "A", Score: 100, Potential: 5},
	})
	second := ranking.NewLeaderboard([]ranking.Entry{
		{CharacterID: "a", Name: "A", Score: 100, Potential: 5},
		{CharacterID: "b", Name: "B", IsNPC: true, Realm: "Core Formation Early", Score: 900, Potential: 30},
	})

	id1, err := repo.SaveSnapshot(ctx, first)
	require.NoError(t, err)
	id2, err := repo.SaveSnapshot(ctx, second)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	latest, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, id2, latest.ID)
	assert.Equal(t, second.Entries, latest.Leaderboard.Entries)
	assert.False(t, latest.TakenAt.IsZero())
}
