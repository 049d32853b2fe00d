package combat

import (
	"errors"
	"fmt"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/skill"
	"github.com/udisondev/powerengine/internal/model"
)

var (
	ErrSkillMismatch = errors.New("learned skill does not match definition")
	ErrPassiveSkill  = errors.New("passive skill cannot attack")
)

// ValidateSkillAttack checks the caller contract of a skill attack.
// Returns error if the attack must not be resolved.
//
// Checks:
//   - definition present
//   - learned entry refers to the same skill
//   - skill is ACTIVE
//   - learned level within [1, MaxLevel]
func ValidateSkillAttack(def *data.SkillDefinition, learned model.LearnedSkill) error {
	if def == nil {
		return skill.ErrNilSkill
	}
	if learned.SkillID != def.ID {
		return fmt.Errorf("%w: learned %q, definition %q", ErrSkillMismatch, learned.SkillID, def.ID)
	}
	if def.IsPassive() {
		return fmt.Errorf("%w: %s", ErrPassiveSkill, def.ID)
	}
	if learned.Level < 1 || learned.Level > def.MaxLevel {
		return fmt.Errorf("%w: %s level %d not in [1,%d]", skill.ErrLevelOutOfRange, def.ID, learned.Level, def.MaxLevel)
	}
	return nil
}
