// Package analysis holds the typed results the engine hands back to its
// callers, plus the event payloads crossing the fire-and-forget boundary.
package analysis

import (
	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
)

// Risk signal categories. These double as the risk-case dedup keys, so they
// must stay stable across releases.
const (
	KindSinglePointOfFailure   riskcase.Category = "single_point_of_failure"
	KindLowBusFactor           riskcase.Category = "low_bus_factor"
	KindLowCoverage            riskcase.Category = "low_coverage"
	KindOverloadedSkill        riskcase.Category = "overloaded_skill"
	KindKnowledgeConcentration riskcase.Category = "knowledge_concentration"
)

// EmployeeRef identifies an affected employee in a result.
type EmployeeRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position string    `json:"position"`
}

// SkillRef identifies a skill in a result.
type SkillRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SkillStats is the per-skill ownership picture: bus factor, coverage and
// average level are always computed from the snapshot, never stored.
type SkillStats struct {
	Skill           SkillRef       `json:"skill"`
	Category        skill.Category `json:"category"`
	BusFactor       int            `json:"busFactor"`
	CoveragePercent float64        `json:"coveragePercent"`
	AverageLevel    float64        `json:"averageLevel"`
	ArtifactCount   int            `json:"artifactCount"`
	Owners          []EmployeeRef  `json:"owners"`
}

// RiskItem is one entry of the workspace risk list.
type RiskItem struct {
	Kind        riskcase.Category `json:"kind"`
	Severity    riskcase.Severity `json:"severity"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	MetricValue float64           `json:"metricValue"`
	MetricLabel string            `json:"metricLabel"`
	Skills      []SkillRef        `json:"skills"`
	Employees   []EmployeeRef     `json:"employees"`
}

// RiskProfile is the per-employee view of concentration risk.
type RiskProfile struct {
	Employee        EmployeeRef        `json:"employee"`
	Seniority       employee.Seniority `json:"seniority"`
	SkillCount      int                `json:"skillCount"`
	SoleOwnedSkills []SkillRef         `json:"soleOwnedSkills"`
	ArtifactCount   int                `json:"artifactCount"`
	Risks           []RiskItem         `json:"risks"`
}

// Readiness labels for succession and staffing results.
const (
	ReadinessReady   = "ready"
	ReadinessStretch = "stretch"
)

// ReplacementCandidate is one ranked succession match.
type ReplacementCandidate struct {
	Employee        EmployeeRef        `json:"employee"`
	Seniority       employee.Seniority `json:"seniority"`
	SimilarityScore int                `json:"similarityScore"`
	OverlapScore    float64            `json:"overlapScore"`
	Readiness       string             `json:"readiness"`
	SharedSkills    []SkillRef         `json:"sharedSkills"`
	MissingSkills   []SkillRef         `json:"missingSkills"`
}

// MissingSkill reports a shortfall against a growth template requirement.
type MissingSkill struct {
	Name         string `json:"name"`
	CurrentLevel int    `json:"currentLevel"`
	TargetLevel  int    `json:"targetLevel"`
}

// GrowthPathSuggestion is one ranked growth path for an employee.
type GrowthPathSuggestion struct {
	Role               string         `json:"role"`
	Readiness          float64        `json:"readiness"`
	MissingSkills      []MissingSkill `json:"missingSkills"`
	RecommendedActions []string       `json:"recommendedActions"`
}

// StaffingRequirement is one required skill of a staffing request.
type StaffingRequirement struct {
	SkillID  uuid.UUID `json:"skillId"`
	MinLevel int       `json:"minLevel"`
	Weight   float64   `json:"weight"`
}

// Normalize applies the documented defaults: minLevel 3, weight 1.
func (r StaffingRequirement) Normalize() StaffingRequirement {
	if r.MinLevel <= 0 {
		r.MinLevel = 3
	}
	if r.Weight <= 0 {
		r.Weight = 1
	}
	return r
}

// StaffingCandidate is one ranked staffing match.
type StaffingCandidate struct {
	Employee      EmployeeRef `json:"employee"`
	FitScore      float64     `json:"fitScore"`
	Matched       int         `json:"matchedRequirements"`
	MissingSkills []SkillRef  `json:"missingSkills"`
	RiskFlags     []string    `json:"riskFlags"`
}

// StaffingResult pairs the candidate ranking with workspace-level warnings
// that hold no matter which candidate is picked.
type StaffingResult struct {
	Candidates []StaffingCandidate `json:"candidates"`
	Warnings   []string            `json:"warnings"`
}

// SkillGap is one (employee, requirement) shortfall against a role profile.
type SkillGap struct {
	Skill         SkillRef `json:"skill"`
	RequiredLevel int      `json:"requiredLevel"`
	CurrentLevel  int      `json:"currentLevel"`
	Gap           int      `json:"gap"`
	Weight        float64  `json:"weight"`
}

// EmployeeGaps collects one employee's gaps against a profile.
type EmployeeGaps struct {
	Employee         EmployeeRef `json:"employee"`
	Gaps             []SkillGap  `json:"gaps"`
	TotalWeightedGap float64     `json:"totalWeightedGap"`
}

// TeamSkillGap aggregates a requirement's gap across a team.
type TeamSkillGap struct {
	Skill             SkillRef `json:"skill"`
	RequiredLevel     int      `json:"requiredLevel"`
	AvgGap            float64  `json:"avgGap"`
	MaxGap            int      `json:"maxGap"`
	AffectedEmployees int      `json:"affectedEmployees"`
}

// GapReport is the full profile-gap picture for a team or single employee.
type GapReport struct {
	Employees []EmployeeGaps `json:"employees"`
	Skills    []TeamSkillGap `json:"skills"`
}

// ProfileMatchScore is one employee's weighted match against a profile.
// CoveragePercent counts the requirements the employee holds any rating
// for, regardless of whether the rating reaches the required level.
type ProfileMatchScore struct {
	Employee        EmployeeRef `json:"employee"`
	MatchPercent    float64     `json:"matchPercent"`
	CoveragePercent float64     `json:"coveragePercent"`
}

// RiskDetected crosses the engine's effect boundary: analytics publishes it
// after a risk computation, a handler turns it into a durable case. The
// analytics call itself never waits on, or fails with, case persistence.
type RiskDetected struct {
	WorkspaceID    uuid.UUID
	EmployeeID     uuid.UUID
	Category       riskcase.Category
	Severity       riskcase.Severity
	Title          string
	Reason         string
	Recommendation string
}
