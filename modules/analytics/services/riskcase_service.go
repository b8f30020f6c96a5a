package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/eventbus"
	"github.com/skillforge/skillforge/pkg/metrics"
)

// RiskCaseService owns the durable case lifecycle: dedup on detection,
// manual creation, the status workflow and filtered listing.
type RiskCaseService struct {
	repo      riskcase.Repository
	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewRiskCaseService(repo riskcase.Repository, publisher eventbus.EventBus, log *logrus.Logger) *RiskCaseService {
	return &RiskCaseService{repo: repo, publisher: publisher, log: log}
}

// EnsureRiskCase records an engine detection. A non-terminal case with the
// same (workspace, employee, category) is refreshed in place; otherwise a
// new open case is created. A resolved case never reopens: re-detection
// after resolution yields a fresh case.
func (s *RiskCaseService) EnsureRiskCase(ctx context.Context, detected *analysis.RiskDetected) (riskcase.RiskCase, error) {
	candidate := riskcase.New(
		detected.WorkspaceID,
		detected.EmployeeID,
		detected.Category,
		detected.Severity,
		riskcase.SourceEngine,
		detected.Title,
		detected.Reason,
		detected.Recommendation,
		"",
	)
	stored, created, err := s.repo.Upsert(ctx, candidate)
	if err != nil {
		return riskcase.RiskCase{}, err
	}
	metrics.RecordRiskCaseUpsert(created)
	if created {
		s.publisher.Publish(&riskcase.CreatedEvent{Result: stored})
	} else {
		s.log.WithFields(logrus.Fields{
			"case":     stored.ID(),
			"category": stored.Category(),
		}).Debug("refreshed existing risk case")
	}
	return stored, nil
}

// CreateRiskCase opens a manually flagged case. Manual cases bypass the
// dedup key and automatic re-scoring entirely.
func (s *RiskCaseService) CreateRiskCase(
	ctx context.Context,
	employeeID uuid.UUID,
	category riskcase.Category,
	severity riskcase.Severity,
	title, reason, recommendation, owner string,
) (riskcase.RiskCase, error) {
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return riskcase.RiskCase{}, err
	}
	created, err := s.repo.Insert(ctx, riskcase.New(
		workspaceID, employeeID, category, severity,
		riskcase.SourceManual,
		title, reason, recommendation, owner,
	))
	if err != nil {
		return riskcase.RiskCase{}, err
	}
	s.publisher.Publish(&riskcase.CreatedEvent{Result: created})
	return created, nil
}

func (s *RiskCaseService) GetByID(ctx context.Context, id uuid.UUID) (riskcase.RiskCase, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves a case through its workflow. The transition table and
// the resolution-note requirement live on the aggregate; this only loads,
// applies and stores.
func (s *RiskCaseService) UpdateStatus(ctx context.Context, id uuid.UUID, next riskcase.Status, note string) (riskcase.RiskCase, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return riskcase.RiskCase{}, err
	}
	updated, err := current.TransitionTo(next, note, time.Now())
	if err != nil {
		return riskcase.RiskCase{}, err
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return riskcase.RiskCase{}, err
	}
	if updated.Status() == riskcase.StatusResolved {
		s.publisher.Publish(&riskcase.ResolvedEvent{Result: updated})
	}
	return updated, nil
}

// Reassign hands the case to a new owner without touching its status.
func (s *RiskCaseService) Reassign(ctx context.Context, id uuid.UUID, owner string) (riskcase.RiskCase, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return riskcase.RiskCase{}, err
	}
	updated := current.Reassign(owner)
	if err := s.repo.Update(ctx, updated); err != nil {
		return riskcase.RiskCase{}, err
	}
	return updated, nil
}

// List returns a filtered page of cases. Status, severity and owner filters
// run in the store; the free-text Q filter fuzzy-matches title, reason and
// owner in memory over the filtered set, so the counters stay consistent
// with what the caller sees.
func (s *RiskCaseService) List(ctx context.Context, params *riskcase.FindParams) (*riskcase.ListResult, error) {
	if params == nil {
		params = &riskcase.FindParams{}
	}
	if params.Q == "" {
		return s.repo.List(ctx, params)
	}

	all := *params
	all.Q = ""
	all.Limit = 0
	all.Offset = 0
	result, err := s.repo.List(ctx, &all)
	if err != nil {
		return nil, err
	}

	var matched []riskcase.RiskCase
	var high int64
	for _, c := range result.Cases {
		if !matchesQuery(c, params.Q) {
			continue
		}
		matched = append(matched, c)
		if c.Severity() == riskcase.SeverityHigh {
			high++
		}
	}

	total := int64(len(matched))
	if params.Offset > 0 {
		if params.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[params.Offset:]
		}
	}
	if params.Limit > 0 && len(matched) > params.Limit {
		matched = matched[:params.Limit]
	}
	return &riskcase.ListResult{Cases: matched, Total: total, HighCount: high}, nil
}

func matchesQuery(c riskcase.RiskCase, q string) bool {
	return fuzzy.MatchNormalizedFold(q, c.Title()) ||
		fuzzy.MatchNormalizedFold(q, c.Reason()) ||
		fuzzy.MatchNormalizedFold(q, c.Owner())
}
