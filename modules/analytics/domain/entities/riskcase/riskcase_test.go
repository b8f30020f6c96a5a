package riskcase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
)

func newOpenCase(source riskcase.Source) riskcase.RiskCase {
	return riskcase.New(
		uuid.New(), uuid.New(),
		"single_point_of_failure",
		riskcase.SeverityHigh,
		source,
		"Single point of failure: Go",
		"Ada is the only person holding Go.",
		"Schedule pairing.",
		"",
	)
}

func TestTransitionTable(t *testing.T) {
	now := time.Now()

	t.Run("open to monitoring", func(t *testing.T) {
		c, err := newOpenCase(riskcase.SourceEngine).TransitionTo(riskcase.StatusMonitoring, "", now)
		require.NoError(t, err)
		require.Equal(t, riskcase.StatusMonitoring, c.Status())
		require.Nil(t, c.ResolvedAt())
	})

	t.Run("monitoring to open is rejected", func(t *testing.T) {
		c, err := newOpenCase(riskcase.SourceEngine).TransitionTo(riskcase.StatusMonitoring, "", now)
		require.NoError(t, err)
		_, err = c.TransitionTo(riskcase.StatusOpen, "", now)
		require.ErrorIs(t, err, riskcase.ErrInvalidTransition)
	})

	t.Run("resolved is terminal", func(t *testing.T) {
		c, err := newOpenCase(riskcase.SourceEngine).TransitionTo(riskcase.StatusResolved, "paired up", now)
		require.NoError(t, err)
		_, err = c.TransitionTo(riskcase.StatusMonitoring, "", now)
		require.ErrorIs(t, err, riskcase.ErrCaseClosed)
		_, err = c.TransitionTo(riskcase.StatusResolved, "again", now)
		require.ErrorIs(t, err, riskcase.ErrCaseClosed)
	})
}

func TestResolveRequiresNote(t *testing.T) {
	now := time.Now()

	_, err := newOpenCase(riskcase.SourceEngine).TransitionTo(riskcase.StatusResolved, "   ", now)
	require.ErrorIs(t, err, riskcase.ErrResolutionNoteRequired)

	c, err := newOpenCase(riskcase.SourceEngine).TransitionTo(riskcase.StatusResolved, "coverage restored", now)
	require.NoError(t, err)
	require.Equal(t, "coverage restored", c.ResolutionNote())
	require.NotNil(t, c.ResolvedAt())
	require.Equal(t, now, *c.ResolvedAt())
}

func TestRefresh(t *testing.T) {
	t.Run("engine case takes new scoring", func(t *testing.T) {
		c := newOpenCase(riskcase.SourceEngine).Refresh(riskcase.SeverityMedium, "two people now", "keep pairing")
		require.Equal(t, riskcase.SeverityMedium, c.Severity())
		require.Equal(t, "two people now", c.Reason())
	})

	t.Run("manual case is untouched", func(t *testing.T) {
		c := newOpenCase(riskcase.SourceManual).Refresh(riskcase.SeverityLow, "ignored", "ignored")
		require.Equal(t, riskcase.SeverityHigh, c.Severity())
		require.Equal(t, "Ada is the only person holding Go.", c.Reason())
	})
}

func TestSeverityWeight(t *testing.T) {
	require.Greater(t, riskcase.SeverityHigh.Weight(), riskcase.SeverityMedium.Weight())
	require.Greater(t, riskcase.SeverityMedium.Weight(), riskcase.SeverityLow.Weight())
	require.False(t, riskcase.Severity("critical").Valid())
}
