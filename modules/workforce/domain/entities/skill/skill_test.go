package skill_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
)

func TestNewAssignmentValidatesLevel(t *testing.T) {
	employeeID, skillID := uuid.New(), uuid.New()

	for _, level := range []int{1, 3, 5} {
		a, err := skill.NewAssignment(employeeID, skillID, level)
		require.NoError(t, err)
		require.Equal(t, level, a.Level())
	}

	for _, level := range []int{0, -1, 6} {
		_, err := skill.NewAssignment(employeeID, skillID, level)
		require.ErrorIs(t, err, skill.ErrInvalidLevel)
	}
}

func TestCategoryValid(t *testing.T) {
	require.True(t, skill.CategoryHard.Valid())
	require.True(t, skill.CategorySoft.Valid())
	require.False(t, skill.Category("medium").Valid())
}
