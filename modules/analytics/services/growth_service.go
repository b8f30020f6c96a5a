package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/analytics/catalogue"
	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/pkg/metrics"
)

// GrowthService matches employees against the role templates of the growth
// catalogue and suggests what to learn next.
type GrowthService struct {
	loader    snapshot.Loader
	catalogue *catalogue.Catalogue
}

func NewGrowthService(loader snapshot.Loader, cat *catalogue.Catalogue) *GrowthService {
	if cat == nil {
		cat = catalogue.Default()
	}
	return &GrowthService{loader: loader, catalogue: cat}
}

// SuggestGrowthPaths ranks the catalogue's roles by how close the employee
// already is, keeping at most limit suggestions; a non-positive limit keeps
// them all. Template requirements name skills; they are resolved against
// the workspace catalogue case-insensitively, and a template none of whose
// skills exist in the workspace is skipped rather than reported as fully
// missing.
func (s *GrowthService) SuggestGrowthPaths(ctx context.Context, employeeID uuid.UUID, limit int) ([]analysis.GrowthPathSuggestion, error) {
	start := time.Now()
	suggestions, err := s.suggestGrowthPaths(ctx, employeeID, limit)
	metrics.RecordRun("growth_paths", err, time.Since(start))
	return suggestions, err
}

func (s *GrowthService) suggestGrowthPaths(ctx context.Context, employeeID uuid.UUID, limit int) ([]analysis.GrowthPathSuggestion, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := snap.Employee(employeeID); !ok {
		return nil, employee.ErrNotFound
	}

	skillsByName := make(map[string]snapshot.Skill, len(snap.Skills()))
	for _, sk := range snap.Skills() {
		skillsByName[strings.ToLower(sk.Name)] = sk
	}

	var suggestions []analysis.GrowthPathSuggestion
	for _, tpl := range s.catalogue.Templates() {
		suggestion, ok := s.evaluate(snap, employeeID, tpl, skillsByName)
		if ok {
			suggestions = append(suggestions, suggestion)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Readiness != suggestions[j].Readiness {
			return suggestions[i].Readiness > suggestions[j].Readiness
		}
		return suggestions[i].Role < suggestions[j].Role
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

func (s *GrowthService) evaluate(
	snap *snapshot.Snapshot,
	employeeID uuid.UUID,
	tpl catalogue.Template,
	skillsByName map[string]snapshot.Skill,
) (analysis.GrowthPathSuggestion, bool) {
	resolvable := 0
	var missing []analysis.MissingSkill
	for _, req := range tpl.Requirements {
		sk, ok := skillsByName[strings.ToLower(req.Skill)]
		if !ok {
			continue
		}
		resolvable++
		current := snap.LevelOf(employeeID, sk.ID)
		if current < req.Level {
			missing = append(missing, analysis.MissingSkill{
				Name:         sk.Name,
				CurrentLevel: current,
				TargetLevel:  req.Level,
			})
		}
	}
	if resolvable == 0 {
		return analysis.GrowthPathSuggestion{}, false
	}

	actions := make([]string, 0, len(missing)+len(tpl.Advice))
	for _, m := range missing {
		actions = append(actions, fmt.Sprintf("Grow %s from level %d to %d", m.Name, m.CurrentLevel, m.TargetLevel))
	}
	actions = append(actions, tpl.Advice...)

	return analysis.GrowthPathSuggestion{
		Role:               tpl.Role,
		Readiness:          round2(1 - float64(len(missing))/float64(resolvable)),
		MissingSkills:      missing,
		RecommendedActions: actions,
	}, true
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
