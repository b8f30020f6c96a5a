package skill

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (Skill, error)
	Create(ctx context.Context, s Skill) (Skill, error)
}

type AssignmentRepository interface {
	GetAll(ctx context.Context) ([]Assignment, error)
	GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Assignment, error)
	// Upsert records the level for the (employee, skill) pair,
	// overwriting any previous level.
	Upsert(ctx context.Context, a Assignment) error
}
