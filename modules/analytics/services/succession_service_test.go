package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/services"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
)

func TestFindReplacements(t *testing.T) {
	t.Run("unknown employee", func(t *testing.T) {
		svc := services.NewSuccessionService(&stubLoader{snap: newSnapshotBuilder().build()})
		_, err := svc.FindReplacements(context.Background(), uuid.New(), 0)
		require.ErrorIs(t, err, employee.ErrNotFound)
	})

	t.Run("weighted similarity score", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		grace := b.addEmployee("Grace", employee.SeniorityMiddle)
		golang := b.addSkill("Go")
		sql := b.addSkill("SQL")
		b.assign(ada, golang, 5)
		b.assign(ada, sql, 3)
		b.assign(grace, golang, 4)

		svc := services.NewSuccessionService(&stubLoader{snap: b.build()})
		candidates, err := svc.FindReplacements(context.Background(), ada, 0)
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		c := candidates[0]
		require.Equal(t, grace, c.Employee.ID)
		// overlap 4/8, level 0.8 one band away, artifact floor 0.5
		require.InDelta(t, 0.5, c.OverlapScore, 0.001)
		require.Equal(t, 56, c.SimilarityScore)
		require.Equal(t, analysis.ReadinessStretch, c.Readiness)
		require.Len(t, c.SharedSkills, 1)
		require.Equal(t, "Go", c.SharedSkills[0].Name)
		require.Len(t, c.MissingSkills, 1)
		require.Equal(t, "SQL", c.MissingSkills[0].Name)
	})

	t.Run("absent skill is missing even at a low target level", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		grace := b.addEmployee("Grace", employee.SenioritySenior)
		golang := b.addSkill("Go")
		docs := b.addSkill("Technical Writing")
		b.assign(ada, golang, 5)
		b.assign(ada, docs, 1)
		b.assign(grace, golang, 5)

		svc := services.NewSuccessionService(&stubLoader{snap: b.build()})
		candidates, err := svc.FindReplacements(context.Background(), ada, 0)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		// Grace has no rating at all, so a target level of 1 still counts
		// as missing.
		require.Len(t, candidates[0].MissingSkills, 1)
		require.Equal(t, "Technical Writing", candidates[0].MissingSkills[0].Name)
	})

	t.Run("excludes candidates with zero overlap", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		grace := b.addEmployee("Grace", employee.SeniorityMiddle)
		golang := b.addSkill("Go")
		react := b.addSkill("React")
		b.assign(ada, golang, 5)
		b.assign(grace, react, 4)

		svc := services.NewSuccessionService(&stubLoader{snap: b.build()})
		candidates, err := svc.FindReplacements(context.Background(), ada, 0)
		require.NoError(t, err)
		require.Empty(t, candidates)
	})

	t.Run("ready requires strong overlap and matching seniority", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		grace := b.addEmployee("Grace", employee.SenioritySenior)
		golang := b.addSkill("Go")
		sql := b.addSkill("SQL")
		b.assign(ada, golang, 5)
		b.assign(ada, sql, 3)
		b.assign(grace, golang, 5)
		b.assign(grace, sql, 3)

		svc := services.NewSuccessionService(&stubLoader{snap: b.build()})
		candidates, err := svc.FindReplacements(context.Background(), ada, 0)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		require.Equal(t, analysis.ReadinessReady, candidates[0].Readiness)
		require.InDelta(t, 1.0, candidates[0].OverlapScore, 0.001)
	})

	t.Run("skill-less target falls back to seniority proximity", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		grace := b.addEmployee("Grace", employee.SenioritySenior)
		linus := b.addEmployee("Linus", employee.SeniorityJunior)

		svc := services.NewSuccessionService(&stubLoader{snap: b.build()})
		candidates, err := svc.FindReplacements(context.Background(), ada, 0)
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		require.Equal(t, grace, candidates[0].Employee.ID)
		require.Equal(t, 100, candidates[0].SimilarityScore)
		require.Equal(t, linus, candidates[1].Employee.ID)
		require.Equal(t, 60, candidates[1].SimilarityScore)
	})

	t.Run("limit truncates the ranking", func(t *testing.T) {
		b := newSnapshotBuilder()
		ada := b.addEmployee("Ada", employee.SenioritySenior)
		golang := b.addSkill("Go")
		b.assign(ada, golang, 5)
		for _, name := range []string{"Grace", "Linus", "Margaret"} {
			other := b.addEmployee(name, employee.SeniorityMiddle)
			b.assign(other, golang, 3)
		}

		svc := services.NewSuccessionService(&stubLoader{snap: b.build()})
		candidates, err := svc.FindReplacements(context.Background(), ada, 2)
		require.NoError(t, err)
		require.Len(t, candidates, 2)
	})
}
