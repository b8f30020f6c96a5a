package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/pkg/metrics"
)

const (
	overlapWeight  = 0.7
	levelWeight    = 0.2
	artifactWeight = 0.1

	readyOverlapThreshold = 0.7
)

// SuccessionService ranks who could step in for a departing employee based
// on skill overlap, seniority distance and artifact evidence.
type SuccessionService struct {
	loader snapshot.Loader
}

func NewSuccessionService(loader snapshot.Loader) *SuccessionService {
	return &SuccessionService{loader: loader}
}

// FindReplacements ranks every other employee against the target's skill
// set. Candidates with zero overlap are dropped; when the target holds no
// skills at all the ranking degrades to seniority proximity alone.
func (s *SuccessionService) FindReplacements(ctx context.Context, targetID uuid.UUID, limit int) ([]analysis.ReplacementCandidate, error) {
	start := time.Now()
	candidates, err := s.findReplacements(ctx, targetID, limit)
	metrics.RecordRun("find_replacements", err, time.Since(start))
	return candidates, err
}

func (s *SuccessionService) findReplacements(ctx context.Context, targetID uuid.UUID, limit int) ([]analysis.ReplacementCandidate, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	target, ok := snap.Employee(targetID)
	if !ok {
		return nil, employee.ErrNotFound
	}

	targetSkills := snap.ByEmployee(targetID)
	maxArtifacts := snap.MaxArtifactCount()

	var candidates []analysis.ReplacementCandidate
	for _, other := range snap.Employees() {
		if other.ID == targetID {
			continue
		}
		c, keep := scoreCandidate(snap, target, targetSkills, other, maxArtifacts)
		if keep {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].SimilarityScore != candidates[j].SimilarityScore {
			return candidates[i].SimilarityScore > candidates[j].SimilarityScore
		}
		return candidates[i].Employee.Name < candidates[j].Employee.Name
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func scoreCandidate(
	snap *snapshot.Snapshot,
	target snapshot.Employee,
	targetSkills []snapshot.Assignment,
	other snapshot.Employee,
	maxArtifacts int,
) (analysis.ReplacementCandidate, bool) {
	candidate := analysis.ReplacementCandidate{
		Employee:  employeeRef(other),
		Seniority: other.Seniority,
	}
	distance := target.Seniority.Distance(other.Seniority)

	// A target with no recorded skills gives overlap nothing to work
	// with; fall back to pure seniority proximity so the caller still
	// gets a ranking instead of an empty list.
	if len(targetSkills) == 0 {
		score := math.Max(0.6, 1-float64(distance)*0.3)
		candidate.SimilarityScore = int(math.Round(score * 100))
		candidate.Readiness = analysis.ReadinessStretch
		if other.Seniority >= target.Seniority {
			candidate.Readiness = analysis.ReadinessReady
		}
		return candidate, true
	}

	var targetSum, overlapSum int
	for _, ts := range targetSkills {
		targetSum += ts.Level
		candidateLevel := snap.LevelOf(other.ID, ts.SkillID)
		if candidateLevel > 0 {
			overlapSum += min(candidateLevel, ts.Level)
			candidate.SharedSkills = append(candidate.SharedSkills, analysis.SkillRef{ID: ts.SkillID, Name: ts.SkillName})
		}
		if candidateLevel == 0 || candidateLevel < ts.Level-1 {
			candidate.MissingSkills = append(candidate.MissingSkills, analysis.SkillRef{ID: ts.SkillID, Name: ts.SkillName})
		}
	}
	if overlapSum == 0 {
		return candidate, false
	}

	overlap := clamp01(float64(overlapSum) / float64(targetSum))
	levelScore := math.Max(0.6, 1-float64(distance)*0.2)
	artifactScore := 0.5
	if maxArtifacts > 0 {
		artifactScore = float64(snap.ArtifactCount(other.ID)) / float64(maxArtifacts)
	}

	candidate.OverlapScore = overlap
	candidate.SimilarityScore = int(math.Round((overlapWeight*overlap + levelWeight*levelScore + artifactWeight*artifactScore) * 100))
	candidate.Readiness = analysis.ReadinessStretch
	if overlap >= readyOverlapThreshold && other.Seniority >= target.Seniority {
		candidate.Readiness = analysis.ReadinessReady
	}
	return candidate, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
