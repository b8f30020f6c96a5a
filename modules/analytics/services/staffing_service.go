package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/pkg/metrics"
	"github.com/skillforge/skillforge/pkg/serrors"
)

const staffingCandidateLimit = 10

var ErrSkillNotInWorkspace = serrors.NewError(
	"SKILL_NOT_IN_WORKSPACE",
	"requirement references a skill that does not exist in this workspace",
	"",
)

// StaffingService scores every employee against an ad-hoc requirement list
// for project staffing.
type StaffingService struct {
	loader snapshot.Loader
}

func NewStaffingService(loader snapshot.Loader) *StaffingService {
	return &StaffingService{loader: loader}
}

// MatchStaffing ranks employees by weighted fit against the requirements.
// Every requirement skill must exist in the workspace. Candidates who
// contribute to no requirement at all are dropped, and the top ten are
// returned with per-candidate risk flags plus workspace-level warnings for
// requirements that lean on a single person.
func (s *StaffingService) MatchStaffing(ctx context.Context, requirements []analysis.StaffingRequirement) (*analysis.StaffingResult, error) {
	start := time.Now()
	result, err := s.matchStaffing(ctx, requirements)
	metrics.RecordRun("staffing_match", err, time.Since(start))
	return result, err
}

func (s *StaffingService) matchStaffing(ctx context.Context, requirements []analysis.StaffingRequirement) (*analysis.StaffingResult, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	normalized := make([]analysis.StaffingRequirement, 0, len(requirements))
	totalWeight := 0.0
	for _, req := range requirements {
		if !snap.HasSkill(req.SkillID) {
			return nil, ErrSkillNotInWorkspace.WithDetails(req.SkillID.String())
		}
		req = req.Normalize()
		normalized = append(normalized, req)
		totalWeight += req.Weight
	}
	if len(normalized) == 0 || totalWeight == 0 {
		return &analysis.StaffingResult{}, nil
	}

	var warnings []string
	for _, req := range normalized {
		if owners := snap.BySkill(req.SkillID); len(owners) <= 1 {
			sk, _ := snap.Skill(req.SkillID)
			if len(owners) == 0 {
				warnings = append(warnings, fmt.Sprintf("Required skill %s has no owner in the workspace", sk.Name))
			} else {
				warnings = append(warnings, fmt.Sprintf("Required skill %s depends on a single person", sk.Name))
			}
		}
	}

	var candidates []analysis.StaffingCandidate
	for _, emp := range snap.Employees() {
		c := scoreStaffing(snap, emp, normalized, totalWeight)
		if c != nil {
			candidates = append(candidates, *c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].FitScore != candidates[j].FitScore {
			return candidates[i].FitScore > candidates[j].FitScore
		}
		return candidates[i].Employee.Name < candidates[j].Employee.Name
	})
	if len(candidates) > staffingCandidateLimit {
		candidates = candidates[:staffingCandidateLimit]
	}
	return &analysis.StaffingResult{Candidates: candidates, Warnings: warnings}, nil
}

func scoreStaffing(
	snap *snapshot.Snapshot,
	emp snapshot.Employee,
	requirements []analysis.StaffingRequirement,
	totalWeight float64,
) *analysis.StaffingCandidate {
	candidate := analysis.StaffingCandidate{Employee: employeeRef(emp)}
	contribution := 0.0
	for _, req := range requirements {
		sk, _ := snap.Skill(req.SkillID)
		level := snap.LevelOf(emp.ID, req.SkillID)
		if level == 0 {
			candidate.MissingSkills = append(candidate.MissingSkills, analysis.SkillRef{ID: sk.ID, Name: sk.Name})
			continue
		}
		ratio := math.Min(float64(level)/float64(req.MinLevel), 1)
		contribution += ratio * (req.Weight / totalWeight)
		if level >= req.MinLevel {
			candidate.Matched++
			// Meeting a scarce skill cuts both ways: staffing this
			// person onto the project drains the only coverage.
			if len(snap.BySkill(req.SkillID)) <= 2 {
				candidate.RiskFlags = append(candidate.RiskFlags, fmt.Sprintf("moving them concentrates %s further", sk.Name))
			}
		}
	}
	if contribution == 0 {
		return nil
	}
	candidate.FitScore = math.Round(contribution * 1000) / 10
	return &candidate
}
