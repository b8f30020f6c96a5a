package models

import (
	"time"

	"github.com/google/uuid"
)

type RiskCase struct {
	ID             uuid.UUID
	WorkspaceID    uuid.UUID
	EmployeeID     uuid.UUID
	Category       string
	Severity       string
	Source         string
	Status         string
	Title          string
	Reason         string
	Recommendation string
	Owner          string
	ResolutionNote string
	ResolvedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type MoveScenario struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	TeamID      uuid.UUID
	Title       string
	Description string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MoveScenarioAction struct {
	ID             uuid.UUID
	ScenarioID     uuid.UUID
	Position       int
	ActionType     string
	TeamID         *uuid.UUID
	FromEmployeeID *uuid.UUID
	ToEmployeeID   *uuid.UUID
	JobRoleID      *uuid.UUID
	SkillID        *uuid.UUID
	Priority       int
	Note           string
}
