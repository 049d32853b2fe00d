package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStat(t *testing.T) {
	tests := []struct {
		in   string
		want Stat
	}{
		{"constitution", StatConstitution},
		{"Attack_Power", StatAttackPower},
		{"crit-rate", StatCritRate},
		{" spiritual sense ", StatSpiritualSense},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStat_UnknownSuggests(t *testing.T) {
	_, err := ParseStat("atack_power")
	require.ErrorIs(t, err, ErrUnknownStat)
	assert.Contains(t, err.Error(), `did you mean "attack_power"`)

	_, err = ParseStat("qwertyuiopasdf")
	require.ErrorIs(t, err, ErrUnknownStat)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestStatClassification(t *testing.T) {
	for _, s := range AttributeStats {
		assert.True(t, s.IsAttribute(), s)
		assert.False(t, s.IsCombatStat(), s)
	}
	for _, s := range CombatStatNames {
		assert.True(t, s.IsCombatStat(), s)
	}
	assert.True(t, StatCritDamage.IsRate())
	assert.False(t, StatMaxHealth.IsRate())
	assert.False(t, Stat("luck").IsKnown())
}

func TestParseBonusMode(t *testing.T) {
	m, err := ParseBonusMode("mul")
	require.NoError(t, err)
	assert.Equal(t, BonusMultiplier, m)

	m, err = ParseBonusMode("")
	require.NoError(t, err)
	assert.Equal(t, BonusAdditive, m)

	_, err = ParseBonusMode("compound")
	assert.Error(t, err)
}
