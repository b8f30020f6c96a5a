package employee

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("employee not found")
	ErrInvalidSeniority = errors.New("invalid seniority level")
)

// Seniority is the ordered career band: Junior < Middle < Senior.
type Seniority int

const (
	SeniorityJunior Seniority = iota + 1
	SeniorityMiddle
	SenioritySenior
)

func ParseSeniority(v string) (Seniority, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "junior":
		return SeniorityJunior, nil
	case "middle":
		return SeniorityMiddle, nil
	case "senior":
		return SenioritySenior, nil
	}
	return 0, errors.Wrap(ErrInvalidSeniority, v)
}

func (s Seniority) String() string {
	switch s {
	case SeniorityJunior:
		return "junior"
	case SeniorityMiddle:
		return "middle"
	case SenioritySenior:
		return "senior"
	}
	return "unknown"
}

func (s Seniority) Valid() bool {
	return s >= SeniorityJunior && s <= SenioritySenior
}

// Distance is the absolute number of bands between two levels.
func (s Seniority) Distance(other Seniority) int {
	d := int(s) - int(other)
	if d < 0 {
		return -d
	}
	return d
}

type Employee struct {
	id          uuid.UUID
	workspaceID uuid.UUID
	name        string
	position    string
	seniority   Seniority
	teamID      *uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func New(workspaceID uuid.UUID, name, position string, seniority Seniority) Employee {
	return Employee{
		workspaceID: workspaceID,
		name:        strings.TrimSpace(name),
		position:    strings.TrimSpace(position),
		seniority:   seniority,
	}
}

func Hydrate(
	id uuid.UUID,
	workspaceID uuid.UUID,
	name string,
	position string,
	seniority Seniority,
	teamID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Employee {
	return Employee{
		id:          id,
		workspaceID: workspaceID,
		name:        strings.TrimSpace(name),
		position:    strings.TrimSpace(position),
		seniority:   seniority,
		teamID:      teamID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (e Employee) ID() uuid.UUID          { return e.id }
func (e Employee) WorkspaceID() uuid.UUID { return e.workspaceID }
func (e Employee) Name() string           { return e.name }
func (e Employee) Position() string       { return e.position }
func (e Employee) Seniority() Seniority   { return e.seniority }
func (e Employee) TeamID() *uuid.UUID     { return e.teamID }
func (e Employee) CreatedAt() time.Time   { return e.createdAt }
func (e Employee) UpdatedAt() time.Time   { return e.updatedAt }
func (e Employee) IsZero() bool           { return e.id == uuid.Nil && e.name == "" }

// AssignTeam returns a copy of the employee attached to the given team.
func (e Employee) AssignTeam(teamID uuid.UUID) Employee {
	e.teamID = &teamID
	return e
}
