package employee

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	TeamID *uuid.UUID
	Limit  int
	Offset int
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (Employee, error)
	GetByTeam(ctx context.Context, teamID uuid.UUID) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
}
