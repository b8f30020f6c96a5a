package jobrole

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
)

var (
	ErrNotFound      = errors.New("job role not found")
	ErrInvalidWeight = errors.New("requirement weight must be positive")
)

// Requirement is one weighted skill demand of a role profile.
type Requirement struct {
	skillID       uuid.UUID
	requiredLevel int
	weight        float64
}

// NewRequirement validates the level range and defaults a zero weight to 1.
func NewRequirement(skillID uuid.UUID, requiredLevel int, weight float64) (Requirement, error) {
	if requiredLevel < skill.MinLevel || requiredLevel > skill.MaxLevel {
		return Requirement{}, skill.ErrInvalidLevel
	}
	if weight == 0 {
		weight = 1
	}
	if weight < 0 {
		return Requirement{}, ErrInvalidWeight
	}
	return Requirement{skillID: skillID, requiredLevel: requiredLevel, weight: weight}, nil
}

func (r Requirement) SkillID() uuid.UUID { return r.skillID }
func (r Requirement) RequiredLevel() int { return r.requiredLevel }
func (r Requirement) Weight() float64    { return r.weight }

// JobRole is a named profile of weighted skill requirements, the comparison
// target for gap and match scoring.
type JobRole struct {
	id           uuid.UUID
	workspaceID  uuid.UUID
	title        string
	seniority    employee.Seniority
	teamID       *uuid.UUID
	requirements []Requirement
	createdAt    time.Time
}

func New(workspaceID uuid.UUID, title string, seniority employee.Seniority, requirements []Requirement) JobRole {
	return JobRole{
		workspaceID:  workspaceID,
		title:        strings.TrimSpace(title),
		seniority:    seniority,
		requirements: requirements,
	}
}

func Hydrate(
	id uuid.UUID,
	workspaceID uuid.UUID,
	title string,
	seniority employee.Seniority,
	teamID *uuid.UUID,
	requirements []Requirement,
	createdAt time.Time,
) JobRole {
	return JobRole{
		id:           id,
		workspaceID:  workspaceID,
		title:        strings.TrimSpace(title),
		seniority:    seniority,
		teamID:       teamID,
		requirements: requirements,
		createdAt:    createdAt,
	}
}

func (j JobRole) ID() uuid.UUID                 { return j.id }
func (j JobRole) WorkspaceID() uuid.UUID        { return j.workspaceID }
func (j JobRole) Title() string                 { return j.title }
func (j JobRole) Seniority() employee.Seniority { return j.seniority }
func (j JobRole) TeamID() *uuid.UUID            { return j.teamID }
func (j JobRole) CreatedAt() time.Time          { return j.createdAt }

// Requirements returns the ordered requirement list. Callers must not
// mutate the returned slice.
func (j JobRole) Requirements() []Requirement { return j.requirements }

// TotalWeight sums requirement weights; it is the denominator for weighted
// match scoring.
func (j JobRole) TotalWeight() float64 {
	var total float64
	for _, r := range j.requirements {
		total += r.weight
	}
	return total
}
