package scenario

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s MoveScenario) (MoveScenario, error)
	GetByID(ctx context.Context, id uuid.UUID) (MoveScenario, error)
	GetByTeam(ctx context.Context, teamID uuid.UUID) ([]MoveScenario, error)
	// AppendAction persists one more action at the end of the scenario's
	// list without rewriting existing rows.
	AppendAction(ctx context.Context, scenarioID uuid.UUID, a Action) (Action, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
