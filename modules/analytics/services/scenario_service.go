package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/scenario"
	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/jobrole"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/eventbus"
	"github.com/skillforge/skillforge/pkg/metrics"
)

// A role whose best internal candidate averages at most this much weighted
// gap per unit of requirement weight is treated as closeable from inside
// the team.
const closeableGapPerWeight = 1.0

// ScenarioService drafts and manages move scenarios: generated staffing
// plans plus manual follow-up actions.
type ScenarioService struct {
	repo      scenario.Repository
	roles     jobrole.Repository
	loader    snapshot.Loader
	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewScenarioService(
	repo scenario.Repository,
	roles jobrole.Repository,
	loader snapshot.Loader,
	publisher eventbus.EventBus,
	log *logrus.Logger,
) *ScenarioService {
	return &ScenarioService{repo: repo, roles: roles, loader: loader, publisher: publisher, log: log}
}

// GenerateMoveScenario drafts one action per role bound to the team: when
// the best internal candidate is close enough, a develop or promote action
// targeting them; otherwise a hire. A team with no role profiles yields a
// valid scenario with no actions.
func (s *ScenarioService) GenerateMoveScenario(ctx context.Context, teamID uuid.UUID, title, createdBy string) (scenario.MoveScenario, error) {
	start := time.Now()
	result, err := s.generateMoveScenario(ctx, teamID, title, createdBy)
	metrics.RecordRun("generate_scenario", err, time.Since(start))
	return result, err
}

func (s *ScenarioService) generateMoveScenario(ctx context.Context, teamID uuid.UUID, title, createdBy string) (scenario.MoveScenario, error) {
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return scenario.MoveScenario{}, err
	}
	roles, err := s.roles.GetByTeam(ctx, teamID)
	if err != nil {
		return scenario.MoveScenario{}, err
	}
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return scenario.MoveScenario{}, err
	}

	if title == "" {
		title = "Generated staffing plan"
	}
	draft := scenario.New(workspaceID, teamID, title, "Drafted from current role coverage", createdBy)

	for i, role := range roles {
		action := s.planAction(snap, teamID, role)
		action.Priority = i + 1
		draft, err = draft.Append(action)
		if err != nil {
			return scenario.MoveScenario{}, err
		}
	}

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return scenario.MoveScenario{}, err
	}
	metrics.RecordScenarioGenerated()
	s.log.WithFields(logrus.Fields{
		"scenario": created.ID(),
		"team":     teamID,
		"actions":  len(created.Actions()),
	}).Debug("drafted move scenario")
	s.publisher.Publish(&scenario.CreatedEvent{Result: created})
	return created, nil
}

// planAction decides hire versus grow-from-within for one role. The best
// candidate is whoever carries the least weighted gap against the profile.
func (s *ScenarioService) planAction(snap *snapshot.Snapshot, teamID uuid.UUID, role jobrole.JobRole) scenario.Action {
	roleID := role.ID()
	var best *struct {
		emp  snapshot.Employee
		gaps float64
		top  *uuid.UUID
	}
	for _, emp := range scopedEmployees(snap, &teamID) {
		gaps := employeeGaps(snap, emp, role)
		if best != nil && gaps.TotalWeightedGap >= best.gaps {
			continue
		}
		var topSkill *uuid.UUID
		if len(gaps.Gaps) > 0 {
			widest := gaps.Gaps[0]
			for _, g := range gaps.Gaps[1:] {
				if g.Gap > widest.Gap {
					widest = g
				}
			}
			id := widest.Skill.ID
			topSkill = &id
		}
		best = &struct {
			emp  snapshot.Employee
			gaps float64
			top  *uuid.UUID
		}{emp: emp, gaps: gaps.TotalWeightedGap, top: topSkill}
	}

	totalWeight := role.TotalWeight()
	closeable := best != nil && totalWeight > 0 && best.gaps/totalWeight <= closeableGapPerWeight
	if !closeable {
		return scenario.Action{
			Type:      scenario.ActionHire,
			TeamID:    &teamID,
			JobRoleID: &roleID,
			Note:      fmt.Sprintf("No internal candidate is close to %s; open a hire", role.Title()),
		}
	}

	candidateID := best.emp.ID
	if best.emp.Seniority >= role.Seniority() {
		return scenario.Action{
			Type:         scenario.ActionPromote,
			TeamID:       &teamID,
			ToEmployeeID: &candidateID,
			JobRoleID:    &roleID,
			Note:         fmt.Sprintf("%s already operates at the %s band; promote into %s", best.emp.Name, role.Seniority(), role.Title()),
		}
	}
	return scenario.Action{
		Type:         scenario.ActionDevelop,
		TeamID:       &teamID,
		ToEmployeeID: &candidateID,
		JobRoleID:    &roleID,
		SkillID:      best.top,
		Note:         fmt.Sprintf("Grow %s toward %s, starting with the widest skill gap", best.emp.Name, role.Title()),
	}
}

func (s *ScenarioService) GetByID(ctx context.Context, id uuid.UUID) (scenario.MoveScenario, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ScenarioService) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]scenario.MoveScenario, error) {
	return s.repo.GetByTeam(ctx, teamID)
}

// AddAction appends one manual action. The aggregate validates the action;
// existing actions are never rewritten.
func (s *ScenarioService) AddAction(ctx context.Context, scenarioID uuid.UUID, a scenario.Action) (scenario.Action, error) {
	current, err := s.repo.GetByID(ctx, scenarioID)
	if err != nil {
		return scenario.Action{}, err
	}
	a.Priority = len(current.Actions()) + 1
	if _, err := current.Append(a); err != nil {
		return scenario.Action{}, err
	}
	return s.repo.AppendAction(ctx, scenarioID, a)
}

// UpdateStatus moves the scenario along its one-way lifecycle.
func (s *ScenarioService) UpdateStatus(ctx context.Context, id uuid.UUID, next scenario.Status) (scenario.MoveScenario, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return scenario.MoveScenario{}, err
	}
	updated, err := current.TransitionTo(next)
	if err != nil {
		return scenario.MoveScenario{}, err
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return scenario.MoveScenario{}, err
	}
	return updated, nil
}
