package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnableDebugLogging(t *testing.T) {
	EnableDebugLogging(false)
	t.Cleanup(func() { EnableDebugLogging(false) })

	tests := []struct {
		name     string
		enabled  bool
		expected bool
	}{
		{"enable", true, true},
		{"disable", false, false},
		{"enable again", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			EnableDebugLogging(tt.enabled)
			assert.Equal(t, tt.expected, IsDebugEnabled())
		})
	}
}

func TestDecide_ConcurrentWithDebugLogging(t *testing.T) {
	EnableDebugLogging(true)
	t.Cleanup(func() { EnableDebugLogging(false) })

	s := Situation{HP: 100, MaxHP: 100, Mana: 100, MaxMana: 100, OpponentHP: 500,
		Skills: []SkillOption{{SkillID: "strike", ManaCost: 10, BaseDamage: 40}}}

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				d := Decide(s, constRoller(0.9))
				assert.Equal(t, ActionCastSkill, d.Action)
			}
		}()
	}
	wg.Wait()
}
