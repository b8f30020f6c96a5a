package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/scenario"
	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/analytics/services"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/jobrole"
	"github.com/skillforge/skillforge/pkg/composables"
)

type memScenarioRepo struct {
	scenarios map[uuid.UUID]scenario.MoveScenario
}

func newMemScenarioRepo() *memScenarioRepo {
	return &memScenarioRepo{scenarios: map[uuid.UUID]scenario.MoveScenario{}}
}

func (r *memScenarioRepo) Create(ctx context.Context, s scenario.MoveScenario) (scenario.MoveScenario, error) {
	stored := scenario.Hydrate(
		uuid.New(), s.WorkspaceID(), s.TeamID(), s.Title(), s.Description(),
		s.Status(), s.CreatedBy(), s.Actions(), time.Now(), time.Now(),
	)
	r.scenarios[stored.ID()] = stored
	return stored, nil
}

func (r *memScenarioRepo) GetByID(ctx context.Context, id uuid.UUID) (scenario.MoveScenario, error) {
	s, ok := r.scenarios[id]
	if !ok {
		return scenario.MoveScenario{}, scenario.ErrNotFound
	}
	return s, nil
}

func (r *memScenarioRepo) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]scenario.MoveScenario, error) {
	var out []scenario.MoveScenario
	for _, s := range r.scenarios {
		if s.TeamID() == teamID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memScenarioRepo) AppendAction(ctx context.Context, scenarioID uuid.UUID, a scenario.Action) (scenario.Action, error) {
	s, ok := r.scenarios[scenarioID]
	if !ok {
		return scenario.Action{}, scenario.ErrNotFound
	}
	a.ID = uuid.New()
	appended, err := s.Append(a)
	if err != nil {
		return scenario.Action{}, err
	}
	r.scenarios[scenarioID] = appended
	return a, nil
}

func (r *memScenarioRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status scenario.Status) error {
	s, ok := r.scenarios[id]
	if !ok {
		return scenario.ErrNotFound
	}
	updated, err := s.TransitionTo(status)
	if err != nil {
		return err
	}
	r.scenarios[id] = updated
	return nil
}

type scenarioFixture struct {
	svc    *services.ScenarioService
	repo   *memScenarioRepo
	bus    *recordingBus
	teamID uuid.UUID
	ctx    context.Context
}

func newScenarioFixture(b *snapshotBuilder, roles map[uuid.UUID]jobrole.JobRole, teamID uuid.UUID) *scenarioFixture {
	repo := newMemScenarioRepo()
	bus := &recordingBus{}
	svc := services.NewScenarioService(
		repo,
		&stubRoleRepo{roles: roles},
		&stubLoader{snap: b.build()},
		bus,
		logrus.New(),
	)
	return &scenarioFixture{
		svc:    svc,
		repo:   repo,
		bus:    bus,
		teamID: teamID,
		ctx:    composables.WithWorkspaceID(context.Background(), b.workspaceID),
	}
}

func TestGenerateMoveScenario(t *testing.T) {
	t.Run("requires workspace scope", func(t *testing.T) {
		f := newScenarioFixture(newSnapshotBuilder(), nil, uuid.New())
		_, err := f.svc.GenerateMoveScenario(context.Background(), f.teamID, "", "ada")
		require.ErrorIs(t, err, composables.ErrNoWorkspaceID)
	})

	t.Run("team without roles yields an empty draft", func(t *testing.T) {
		f := newScenarioFixture(newSnapshotBuilder(), nil, uuid.New())
		result, err := f.svc.GenerateMoveScenario(f.ctx, f.teamID, "Q3 plan", "ada")
		require.NoError(t, err)
		require.Equal(t, scenario.StatusDraft, result.Status())
		require.Empty(t, result.Actions())

		created := f.bus.eventsOf(func(e interface{}) bool {
			_, ok := e.(*scenario.CreatedEvent)
			return ok
		})
		require.Len(t, created, 1)
	})

	t.Run("close candidate below the band gets a develop action", func(t *testing.T) {
		teamID := uuid.New()
		b := newSnapshotBuilder()
		linus := b.addTeamEmployee("Linus", employee.SeniorityJunior, teamID)
		golang := b.addSkill("Go")
		b.assign(linus, golang, 3)

		role := hydrateRole(t, b.workspaceID, "Backend Engineer", employee.SeniorityMiddle, &teamID,
			mustRequirement(t, golang, 4, 1),
		)
		f := newScenarioFixture(b, map[uuid.UUID]jobrole.JobRole{role.ID(): role}, teamID)

		result, err := f.svc.GenerateMoveScenario(f.ctx, teamID, "", "ada")
		require.NoError(t, err)
		require.Len(t, result.Actions(), 1)

		action := result.Actions()[0]
		require.Equal(t, scenario.ActionDevelop, action.Type)
		require.Equal(t, linus, *action.ToEmployeeID)
		require.Equal(t, golang, *action.SkillID)
		require.Equal(t, 1, action.Priority)
	})

	t.Run("candidate at the band gets a promote action", func(t *testing.T) {
		teamID := uuid.New()
		b := newSnapshotBuilder()
		grace := b.addTeamEmployee("Grace", employee.SenioritySenior, teamID)
		golang := b.addSkill("Go")
		b.assign(grace, golang, 4)

		role := hydrateRole(t, b.workspaceID, "Backend Engineer", employee.SeniorityMiddle, &teamID,
			mustRequirement(t, golang, 4, 1),
		)
		f := newScenarioFixture(b, map[uuid.UUID]jobrole.JobRole{role.ID(): role}, teamID)

		result, err := f.svc.GenerateMoveScenario(f.ctx, teamID, "", "ada")
		require.NoError(t, err)
		require.Len(t, result.Actions(), 1)
		require.Equal(t, scenario.ActionPromote, result.Actions()[0].Type)
		require.Equal(t, grace, *result.Actions()[0].ToEmployeeID)
	})

	t.Run("no close candidate means a hire", func(t *testing.T) {
		teamID := uuid.New()
		b := newSnapshotBuilder()
		linus := b.addTeamEmployee("Linus", employee.SeniorityJunior, teamID)
		golang := b.addSkill("Go")
		sql := b.addSkill("SQL")
		b.assign(linus, golang, 1)

		role := hydrateRole(t, b.workspaceID, "Backend Engineer", employee.SeniorityMiddle, &teamID,
			mustRequirement(t, golang, 4, 1),
			mustRequirement(t, sql, 3, 1),
		)
		f := newScenarioFixture(b, map[uuid.UUID]jobrole.JobRole{role.ID(): role}, teamID)

		result, err := f.svc.GenerateMoveScenario(f.ctx, teamID, "", "ada")
		require.NoError(t, err)
		require.Len(t, result.Actions(), 1)

		action := result.Actions()[0]
		require.Equal(t, scenario.ActionHire, action.Type)
		require.Equal(t, role.ID(), *action.JobRoleID)
		require.Nil(t, action.ToEmployeeID)
	})
}

func TestAddAction(t *testing.T) {
	f := newScenarioFixture(newSnapshotBuilder(), nil, uuid.New())
	created, err := f.svc.GenerateMoveScenario(f.ctx, f.teamID, "", "ada")
	require.NoError(t, err)

	t.Run("appends with the next priority", func(t *testing.T) {
		action, err := f.svc.AddAction(f.ctx, created.ID(), scenario.Action{
			Type: scenario.ActionBackfill,
			Note: "backfill the vacated seat",
		})
		require.NoError(t, err)
		require.Equal(t, 1, action.Priority)

		stored, err := f.svc.GetByID(f.ctx, created.ID())
		require.NoError(t, err)
		require.Len(t, stored.Actions(), 1)
	})

	t.Run("rejects invalid action types", func(t *testing.T) {
		_, err := f.svc.AddAction(f.ctx, created.ID(), scenario.Action{Type: "terminate"})
		require.ErrorIs(t, err, scenario.ErrInvalidActionType)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := f.svc.AddAction(f.ctx, uuid.New(), scenario.Action{Type: scenario.ActionHire})
		require.ErrorIs(t, err, scenario.ErrNotFound)
	})
}

func TestScenarioUpdateStatus(t *testing.T) {
	f := newScenarioFixture(newSnapshotBuilder(), nil, uuid.New())
	created, err := f.svc.GenerateMoveScenario(f.ctx, f.teamID, "", "ada")
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(f.ctx, created.ID(), scenario.StatusReview)
	require.NoError(t, err)
	require.Equal(t, scenario.StatusReview, updated.Status())

	_, err = f.svc.UpdateStatus(f.ctx, created.ID(), scenario.StatusDraft)
	require.ErrorIs(t, err, scenario.ErrInvalidTransition)
}

var _ snapshot.Loader = (*stubLoader)(nil)
