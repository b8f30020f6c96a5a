package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/jobrole"
	"github.com/skillforge/skillforge/pkg/metrics"
)

// ProfileGapService compares employees against job-role profiles: per-skill
// gaps, weighted match percentages and team-level aggregation.
type ProfileGapService struct {
	loader snapshot.Loader
	roles  jobrole.Repository
}

func NewProfileGapService(loader snapshot.Loader, roles jobrole.Repository) *ProfileGapService {
	return &ProfileGapService{loader: loader, roles: roles}
}

// EmployeeGaps reports one employee's shortfall on every requirement of a
// role. Requirements the employee meets or exceeds carry a zero gap and are
// omitted.
func (s *ProfileGapService) EmployeeGaps(ctx context.Context, employeeID, roleID uuid.UUID) (*analysis.EmployeeGaps, error) {
	snap, role, err := s.load(ctx, roleID)
	if err != nil {
		return nil, err
	}
	emp, ok := snap.Employee(employeeID)
	if !ok {
		return nil, employee.ErrNotFound
	}
	gaps := employeeGaps(snap, emp, role)
	return &gaps, nil
}

// TeamGapReport aggregates the role's gaps across its team, or across the
// whole workspace when the role is not bound to a team.
func (s *ProfileGapService) TeamGapReport(ctx context.Context, roleID uuid.UUID) (*analysis.GapReport, error) {
	start := time.Now()
	report, err := s.teamGapReport(ctx, roleID)
	metrics.RecordRun("team_gap_report", err, time.Since(start))
	return report, err
}

func (s *ProfileGapService) teamGapReport(ctx context.Context, roleID uuid.UUID) (*analysis.GapReport, error) {
	snap, role, err := s.load(ctx, roleID)
	if err != nil {
		return nil, err
	}

	report := &analysis.GapReport{}
	type agg struct {
		sum      int
		max      int
		affected int
	}
	aggregates := make(map[uuid.UUID]*agg)
	scoped := scopedEmployees(snap, role.TeamID())

	for _, emp := range scoped {
		gaps := employeeGaps(snap, emp, role)
		report.Employees = append(report.Employees, gaps)
		for _, g := range gaps.Gaps {
			a := aggregates[g.Skill.ID]
			if a == nil {
				a = &agg{}
				aggregates[g.Skill.ID] = a
			}
			a.sum += g.Gap
			a.affected++
			if g.Gap > a.max {
				a.max = g.Gap
			}
		}
	}

	for _, req := range role.Requirements() {
		a := aggregates[req.SkillID()]
		if a == nil {
			continue
		}
		sk, _ := snap.Skill(req.SkillID())
		report.Skills = append(report.Skills, analysis.TeamSkillGap{
			Skill:             analysis.SkillRef{ID: req.SkillID(), Name: sk.Name},
			RequiredLevel:     req.RequiredLevel(),
			AvgGap:            round1(float64(a.sum) / float64(len(scoped))),
			MaxGap:            a.max,
			AffectedEmployees: a.affected,
		})
	}

	sort.SliceStable(report.Skills, func(i, j int) bool {
		if report.Skills[i].AvgGap != report.Skills[j].AvgGap {
			return report.Skills[i].AvgGap > report.Skills[j].AvgGap
		}
		return report.Skills[i].Skill.Name < report.Skills[j].Skill.Name
	})
	return report, nil
}

// MatchScores ranks the role's scoped employees by weighted profile match.
func (s *ProfileGapService) MatchScores(ctx context.Context, roleID uuid.UUID) ([]analysis.ProfileMatchScore, error) {
	snap, role, err := s.load(ctx, roleID)
	if err != nil {
		return nil, err
	}

	totalWeight := role.TotalWeight()
	if totalWeight == 0 {
		return nil, nil
	}
	var weightedRequired float64
	for _, req := range role.Requirements() {
		weightedRequired += req.Weight() * float64(req.RequiredLevel())
	}

	var scores []analysis.ProfileMatchScore
	for _, emp := range scopedEmployees(snap, role.TeamID()) {
		var weightedGap float64
		rated := 0
		for _, req := range role.Requirements() {
			current := snap.LevelOf(emp.ID, req.SkillID())
			if current > 0 {
				rated++
			}
			if gap := req.RequiredLevel() - current; gap > 0 {
				weightedGap += req.Weight() * float64(gap)
			}
		}
		match := 0.0
		if weightedRequired > 0 {
			match = clamp01(1-weightedGap/weightedRequired) * 100
		}
		scores = append(scores, analysis.ProfileMatchScore{
			Employee:        employeeRef(emp),
			MatchPercent:    round1(match),
			CoveragePercent: round1(float64(rated) / float64(len(role.Requirements())) * 100),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].MatchPercent != scores[j].MatchPercent {
			return scores[i].MatchPercent > scores[j].MatchPercent
		}
		return scores[i].Employee.Name < scores[j].Employee.Name
	})
	return scores, nil
}

func (s *ProfileGapService) load(ctx context.Context, roleID uuid.UUID) (*snapshot.Snapshot, jobrole.JobRole, error) {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return nil, jobrole.JobRole{}, err
	}
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, jobrole.JobRole{}, err
	}
	return snap, role, nil
}

func scopedEmployees(snap *snapshot.Snapshot, teamID *uuid.UUID) []snapshot.Employee {
	if teamID == nil {
		return snap.Employees()
	}
	var scoped []snapshot.Employee
	for _, emp := range snap.Employees() {
		if emp.TeamID != nil && *emp.TeamID == *teamID {
			scoped = append(scoped, emp)
		}
	}
	return scoped
}

func employeeGaps(snap *snapshot.Snapshot, emp snapshot.Employee, role jobrole.JobRole) analysis.EmployeeGaps {
	result := analysis.EmployeeGaps{Employee: employeeRef(emp)}
	for _, req := range role.Requirements() {
		current := snap.LevelOf(emp.ID, req.SkillID())
		gap := req.RequiredLevel() - current
		if gap <= 0 {
			continue
		}
		sk, _ := snap.Skill(req.SkillID())
		result.Gaps = append(result.Gaps, analysis.SkillGap{
			Skill:         analysis.SkillRef{ID: req.SkillID(), Name: sk.Name},
			RequiredLevel: req.RequiredLevel(),
			CurrentLevel:  current,
			Gap:           gap,
			Weight:        req.Weight(),
		})
		result.TotalWeightedGap += req.Weight() * float64(gap)
	}
	return result
}
