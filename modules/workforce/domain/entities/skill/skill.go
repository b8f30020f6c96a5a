package skill

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("skill not found")
	ErrInvalidLevel = errors.New("skill level must be between 1 and 5")
)

const (
	MinLevel = 1
	MaxLevel = 5
)

// Category distinguishes hard (technical) from soft skills.
type Category string

const (
	CategoryHard Category = "hard"
	CategorySoft Category = "soft"
)

func (c Category) Valid() bool {
	return c == CategoryHard || c == CategorySoft
}

type Skill struct {
	id          uuid.UUID
	workspaceID uuid.UUID
	name        string
	category    Category
	createdAt   time.Time
}

func New(workspaceID uuid.UUID, name string, category Category) Skill {
	return Skill{
		workspaceID: workspaceID,
		name:        strings.TrimSpace(name),
		category:    category,
	}
}

func Hydrate(id, workspaceID uuid.UUID, name string, category Category, createdAt time.Time) Skill {
	return Skill{
		id:          id,
		workspaceID: workspaceID,
		name:        strings.TrimSpace(name),
		category:    category,
		createdAt:   createdAt,
	}
}

func (s Skill) ID() uuid.UUID          { return s.id }
func (s Skill) WorkspaceID() uuid.UUID { return s.workspaceID }
func (s Skill) Name() string           { return s.name }
func (s Skill) Category() Category     { return s.category }
func (s Skill) CreatedAt() time.Time   { return s.createdAt }

// Assignment links an employee to a skill at a recorded proficiency level.
// At most one assignment exists per (employee, skill) pair; writes are
// last-write-wins.
type Assignment struct {
	employeeID uuid.UUID
	skillID    uuid.UUID
	level      int
	updatedAt  time.Time
}

func NewAssignment(employeeID, skillID uuid.UUID, level int) (Assignment, error) {
	if level < MinLevel || level > MaxLevel {
		return Assignment{}, ErrInvalidLevel
	}
	return Assignment{employeeID: employeeID, skillID: skillID, level: level}, nil
}

func HydrateAssignment(employeeID, skillID uuid.UUID, level int, updatedAt time.Time) Assignment {
	return Assignment{employeeID: employeeID, skillID: skillID, level: level, updatedAt: updatedAt}
}

func (a Assignment) EmployeeID() uuid.UUID { return a.employeeID }
func (a Assignment) SkillID() uuid.UUID    { return a.skillID }
func (a Assignment) Level() int            { return a.level }
func (a Assignment) UpdatedAt() time.Time  { return a.updatedAt }
