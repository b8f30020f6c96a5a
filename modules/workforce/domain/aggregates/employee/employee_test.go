package employee_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
)

func TestParseSeniority(t *testing.T) {
	for input, want := range map[string]employee.Seniority{
		"junior":  employee.SeniorityJunior,
		"Middle":  employee.SeniorityMiddle,
		" senior": employee.SenioritySenior,
	} {
		got, err := employee.ParseSeniority(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := employee.ParseSeniority("principal")
	require.ErrorIs(t, err, employee.ErrInvalidSeniority)
}

func TestSeniorityDistance(t *testing.T) {
	require.Equal(t, 0, employee.SeniorityMiddle.Distance(employee.SeniorityMiddle))
	require.Equal(t, 2, employee.SeniorityJunior.Distance(employee.SenioritySenior))
	require.Equal(t, 2, employee.SenioritySenior.Distance(employee.SeniorityJunior))
}

func TestNewTrimsFields(t *testing.T) {
	e := employee.New(uuid.New(), "  Ada Lovelace ", " Engineer ", employee.SenioritySenior)
	require.Equal(t, "Ada Lovelace", e.Name())
	require.Equal(t, "Engineer", e.Position())
}

func TestAssignTeamReturnsCopy(t *testing.T) {
	e := employee.New(uuid.New(), "Ada", "Engineer", employee.SeniorityMiddle)
	teamID := uuid.New()

	assigned := e.AssignTeam(teamID)
	require.Nil(t, e.TeamID())
	require.NotNil(t, assigned.TeamID())
	require.Equal(t, teamID, *assigned.TeamID())
}
