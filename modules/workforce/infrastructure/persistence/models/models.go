package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        string
	Position    string
	Seniority   string
	TeamID      *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Skill struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        string
	Category    string
	CreatedAt   time.Time
}

type SkillAssignment struct {
	EmployeeID uuid.UUID
	SkillID    uuid.UUID
	Level      int
	UpdatedAt  time.Time
}

type JobRole struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Title       string
	Seniority   string
	TeamID      *uuid.UUID
	CreatedAt   time.Time
}

type JobRoleRequirement struct {
	JobRoleID     uuid.UUID
	Position      int
	SkillID       uuid.UUID
	RequiredLevel int
	Weight        float64
}
