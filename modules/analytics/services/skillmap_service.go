package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/pkg/eventbus"
	"github.com/skillforge/skillforge/pkg/metrics"
)

const (
	defaultRiskOverviewLimit = 5

	lowCoverageThreshold    = 20.0
	overloadedCoverage      = 30.0
	overloadedEvidenceCount = 6
)

// SkillMapService computes per-skill ownership, coverage and risk
// classification over a workspace snapshot.
type SkillMapService struct {
	loader    snapshot.Loader
	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewSkillMapService(loader snapshot.Loader, publisher eventbus.EventBus, log *logrus.Logger) *SkillMapService {
	return &SkillMapService{loader: loader, publisher: publisher, log: log}
}

// SkillStats returns the ownership picture for every skill in the
// workspace, ordered by name.
func (s *SkillMapService) SkillStats(ctx context.Context) ([]analysis.SkillStats, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	stats := computeSkillStats(snap)
	sort.Slice(stats, func(i, j int) bool { return stats[i].Skill.Name < stats[j].Skill.Name })
	return stats, nil
}

// WorkspaceRiskOverview flattens every per-skill risk plus the derived
// knowledge-concentration risks, ranked by severity then metric, truncated
// to limit (default 5). Detected employee-scoped risks are published for
// the case lifecycle to pick up; the caller never waits on that.
func (s *SkillMapService) WorkspaceRiskOverview(ctx context.Context, limit int) ([]analysis.RiskItem, error) {
	start := time.Now()
	items, err := s.riskOverview(ctx, limit)
	metrics.RecordRun("risk_overview", err, time.Since(start))
	return items, err
}

func (s *SkillMapService) riskOverview(ctx context.Context, limit int) ([]analysis.RiskItem, error) {
	if limit <= 0 {
		limit = defaultRiskOverviewLimit
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	risks := collectRisks(snap)
	s.log.WithFields(logrus.Fields{
		"workspace": snap.WorkspaceID(),
		"skills":    len(snap.Skills()),
		"risks":     len(risks),
	}).Debug("classified workspace risks")
	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].Severity.Weight() != risks[j].Severity.Weight() {
			return risks[i].Severity.Weight() > risks[j].Severity.Weight()
		}
		return risks[i].MetricValue > risks[j].MetricValue
	})

	s.publishDetected(snap, risks)

	if len(risks) > limit {
		risks = risks[:limit]
	}
	return risks, nil
}

// EmployeeRiskProfile reports the concentration risk centered on one
// employee. Unknown employees yield employee.ErrNotFound.
func (s *SkillMapService) EmployeeRiskProfile(ctx context.Context, employeeID uuid.UUID) (*analysis.RiskProfile, error) {
	start := time.Now()
	profile, err := s.employeeRiskProfile(ctx, employeeID)
	metrics.RecordRun("employee_risk_profile", err, time.Since(start))
	return profile, err
}

func (s *SkillMapService) employeeRiskProfile(ctx context.Context, employeeID uuid.UUID) (*analysis.RiskProfile, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	emp, ok := snap.Employee(employeeID)
	if !ok {
		return nil, employee.ErrNotFound
	}

	var soleOwned []analysis.SkillRef
	for _, a := range snap.ByEmployee(employeeID) {
		if len(snap.BySkill(a.SkillID)) == 1 {
			soleOwned = append(soleOwned, analysis.SkillRef{ID: a.SkillID, Name: a.SkillName})
		}
	}

	var affecting []analysis.RiskItem
	for _, risk := range collectRisks(snap) {
		for _, ref := range risk.Employees {
			if ref.ID == employeeID {
				affecting = append(affecting, risk)
				break
			}
		}
	}

	profile := &analysis.RiskProfile{
		Employee:        employeeRef(emp),
		Seniority:       emp.Seniority,
		SkillCount:      len(snap.ByEmployee(employeeID)),
		SoleOwnedSkills: soleOwned,
		ArtifactCount:   snap.ArtifactCount(employeeID),
		Risks:           affecting,
	}

	s.publishDetected(snap, affecting)
	return profile, nil
}

// publishDetected emits one RiskDetected per employee-scoped risk so the
// case lifecycle can upsert durable records. Risks spanning a whole skill
// rather than a person carry no case key and are skipped.
func (s *SkillMapService) publishDetected(snap *snapshot.Snapshot, risks []analysis.RiskItem) {
	for _, risk := range risks {
		if len(risk.Employees) != 1 {
			continue
		}
		if risk.Kind != analysis.KindSinglePointOfFailure && risk.Kind != analysis.KindKnowledgeConcentration {
			continue
		}
		s.publisher.Publish(&analysis.RiskDetected{
			WorkspaceID:    snap.WorkspaceID(),
			EmployeeID:     risk.Employees[0].ID,
			Category:       risk.Kind,
			Severity:       risk.Severity,
			Title:          risk.Title,
			Reason:         risk.Description,
			Recommendation: recommendationFor(risk.Kind),
		})
	}
}

func recommendationFor(kind riskcase.Category) string {
	switch kind {
	case analysis.KindSinglePointOfFailure:
		return "Spread the skill: schedule pairing or shadowing with at least one more person."
	case analysis.KindKnowledgeConcentration:
		return "Plan a handover path: document critical work and train a backup per skill."
	}
	return "Review the skill distribution for this employee."
}

func computeSkillStats(snap *snapshot.Snapshot) []analysis.SkillStats {
	total := snap.TotalEmployees()
	stats := make([]analysis.SkillStats, 0, len(snap.Skills()))
	for _, sk := range snap.Skills() {
		owners := snap.BySkill(sk.ID)
		stat := analysis.SkillStats{
			Skill:         analysis.SkillRef{ID: sk.ID, Name: sk.Name},
			Category:      sk.Category,
			BusFactor:     len(owners),
			ArtifactCount: snap.SkillArtifactCount(sk.ID),
		}
		if total > 0 {
			stat.CoveragePercent = round1(float64(len(owners)) / float64(total) * 100)
		}
		if len(owners) > 0 {
			levelSum := 0
			for _, a := range owners {
				levelSum += a.Level
				if emp, ok := snap.Employee(a.EmployeeID); ok {
					stat.Owners = append(stat.Owners, employeeRef(emp))
				}
			}
			stat.AverageLevel = round1(float64(levelSum) / float64(len(owners)))
		}
		stats = append(stats, stat)
	}
	return stats
}

// collectRisks applies the classification thresholds to every skill and
// derives the per-owner knowledge-concentration risks. A skill may carry
// more than one independent risk reason.
func collectRisks(snap *snapshot.Snapshot) []analysis.RiskItem {
	var risks []analysis.RiskItem
	soleOwned := make(map[uuid.UUID][]analysis.SkillRef)

	for _, stat := range computeSkillStats(snap) {
		switch {
		case stat.BusFactor <= 1:
			risk := analysis.RiskItem{
				Kind:        analysis.KindSinglePointOfFailure,
				Severity:    riskcase.SeverityHigh,
				Title:       fmt.Sprintf("Single point of failure: %s", stat.Skill.Name),
				MetricValue: float64(stat.BusFactor),
				MetricLabel: "bus factor",
				Skills:      []analysis.SkillRef{stat.Skill},
				Employees:   stat.Owners,
			}
			if stat.BusFactor == 1 {
				risk.Description = fmt.Sprintf("%s is the only person holding %s.", stat.Owners[0].Name, stat.Skill.Name)
				soleOwned[stat.Owners[0].ID] = append(soleOwned[stat.Owners[0].ID], stat.Skill)
			} else {
				risk.Description = fmt.Sprintf("Nobody in the workspace holds %s.", stat.Skill.Name)
			}
			risks = append(risks, risk)
		case stat.BusFactor == 2:
			risks = append(risks, analysis.RiskItem{
				Kind:        analysis.KindLowBusFactor,
				Severity:    riskcase.SeverityMedium,
				Title:       fmt.Sprintf("Low bus factor: %s", stat.Skill.Name),
				Description: fmt.Sprintf("Only two people hold %s.", stat.Skill.Name),
				MetricValue: float64(stat.BusFactor),
				MetricLabel: "bus factor",
				Skills:      []analysis.SkillRef{stat.Skill},
				Employees:   stat.Owners,
			})
		case stat.CoveragePercent < lowCoverageThreshold:
			risks = append(risks, analysis.RiskItem{
				Kind:        analysis.KindLowCoverage,
				Severity:    riskcase.SeverityMedium,
				Title:       fmt.Sprintf("Low coverage: %s", stat.Skill.Name),
				Description: fmt.Sprintf("Only %.1f%% of the workspace holds %s.", stat.CoveragePercent, stat.Skill.Name),
				MetricValue: stat.CoveragePercent,
				MetricLabel: "coverage %",
				Skills:      []analysis.SkillRef{stat.Skill},
				Employees:   stat.Owners,
			})
		}

		// Independent of the bus-factor classification above.
		if stat.CoveragePercent < overloadedCoverage && stat.ArtifactCount >= overloadedEvidenceCount {
			risks = append(risks, analysis.RiskItem{
				Kind:        analysis.KindOverloadedSkill,
				Severity:    riskcase.SeverityMedium,
				Title:       fmt.Sprintf("Overloaded skill: %s", stat.Skill.Name),
				Description: fmt.Sprintf("%s carries %d artifacts but only %.1f%% coverage.", stat.Skill.Name, stat.ArtifactCount, stat.CoveragePercent),
				MetricValue: float64(stat.ArtifactCount),
				MetricLabel: "artifact count",
				Skills:      []analysis.SkillRef{stat.Skill},
				Employees:   stat.Owners,
			})
		}
	}

	for employeeID, skills := range soleOwned {
		if len(skills) < 2 {
			continue
		}
		emp, ok := snap.Employee(employeeID)
		if !ok {
			continue
		}
		risks = append(risks, analysis.RiskItem{
			Kind:        analysis.KindKnowledgeConcentration,
			Severity:    riskcase.SeverityHigh,
			Title:       fmt.Sprintf("%s holds %d critical skills alone", emp.Name, len(skills)),
			Description: fmt.Sprintf("%s is the sole owner of %d skills; their departure would strand all of them.", emp.Name, len(skills)),
			MetricValue: float64(len(skills)),
			MetricLabel: "sole-owned skills",
			Skills:      skills,
			Employees:   []analysis.EmployeeRef{employeeRef(emp)},
		})
	}

	return risks
}

func employeeRef(e snapshot.Employee) analysis.EmployeeRef {
	return analysis.EmployeeRef{ID: e.ID, Name: e.Name, Position: e.Position}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
