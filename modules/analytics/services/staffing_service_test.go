package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/services"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/pkg/serrors"
)

func TestMatchStaffing(t *testing.T) {
	t.Run("unknown skill is rejected with a stable code", func(t *testing.T) {
		b := newSnapshotBuilder()
		b.addEmployee("Ada", employee.SenioritySenior)

		svc := services.NewStaffingService(&stubLoader{snap: b.build()})
		_, err := svc.MatchStaffing(context.Background(), []analysis.StaffingRequirement{
			{SkillID: uuid.New(), MinLevel: 3, Weight: 1},
		})
		require.ErrorIs(t, err, services.ErrSkillNotInWorkspace)

		var base *serrors.Base
		require.True(t, errors.As(err, &base))
		require.Equal(t, "SKILL_NOT_IN_WORKSPACE", base.Code)
	})

	t.Run("weighted fit ranking", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		grace := b.addEmployee("Grace", employee.SeniorityMiddle)
		linus := b.addEmployee("Linus", employee.SeniorityJunior)
		golang := b.addSkill("Go")
		sql := b.addSkill("SQL")
		b.assign(ada, golang, 4)
		b.assign(ada, sql, 3)
		b.assign(grace, golang, 2)
		_ = linus

		svc := services.NewStaffingService(&stubLoader{snap: b.build()})
		result, err := svc.MatchStaffing(context.Background(), []analysis.StaffingRequirement{
			{SkillID: golang, MinLevel: 4, Weight: 1},
			{SkillID: sql, MinLevel: 3, Weight: 1},
		})
		require.NoError(t, err)

		// Linus contributes nothing and is dropped.
		require.Len(t, result.Candidates, 2)
		require.Equal(t, ada, result.Candidates[0].Employee.ID)
		require.InDelta(t, 100.0, result.Candidates[0].FitScore, 0.01)
		require.Equal(t, 2, result.Candidates[0].Matched)

		require.Equal(t, grace, result.Candidates[1].Employee.ID)
		// Go at 2 of 4 on half the weight.
		require.InDelta(t, 25.0, result.Candidates[1].FitScore, 0.01)
		require.Len(t, result.Candidates[1].MissingSkills, 1)
		require.Equal(t, "SQL", result.Candidates[1].MissingSkills[0].Name)
	})

	t.Run("defaults applied to requirements", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		golang := b.addSkill("Go")
		b.assign(ada, golang, 3)

		svc := services.NewStaffingService(&stubLoader{snap: b.build()})
		result, err := svc.MatchStaffing(context.Background(), []analysis.StaffingRequirement{
			{SkillID: golang},
		})
		require.NoError(t, err)
		require.Len(t, result.Candidates, 1)
		// min level defaults to 3, so level 3 is a full match.
		require.InDelta(t, 100.0, result.Candidates[0].FitScore, 0.01)
		require.Equal(t, 1, result.Candidates[0].Matched)
	})

	t.Run("warns when a required skill leans on one person", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		b.addEmployee("Grace", employee.SeniorityMiddle)
		golang := b.addSkill("Go")
		orphan := b.addSkill("COBOL")
		b.assign(ada, golang, 5)

		svc := services.NewStaffingService(&stubLoader{snap: b.build()})
		result, err := svc.MatchStaffing(context.Background(), []analysis.StaffingRequirement{
			{SkillID: golang, MinLevel: 3, Weight: 1},
			{SkillID: orphan, MinLevel: 3, Weight: 1},
		})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 2)
		require.Contains(t, result.Warnings[0], "Go")
		require.Contains(t, result.Warnings[1], "COBOL")

		// Ada meets the scarce Go requirement, so staffing her is flagged.
		require.Len(t, result.Candidates, 1)
		require.NotEmpty(t, result.Candidates[0].RiskFlags)
	})

	t.Run("empty requirements yield an empty result", func(t *testing.T) {
		svc := services.NewStaffingService(&stubLoader{snap: newSnapshotBuilder().build()})
		result, err := svc.MatchStaffing(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, result.Candidates)
		require.Empty(t, result.Warnings)
	})
}
