package jobrole

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]JobRole, error)
	GetByID(ctx context.Context, id uuid.UUID) (JobRole, error)
	GetByTeam(ctx context.Context, teamID uuid.UUID) ([]JobRole, error)
	Create(ctx context.Context, j JobRole) (JobRole, error)
}
