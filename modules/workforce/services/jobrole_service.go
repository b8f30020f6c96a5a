package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/workforce/domain/entities/jobrole"
	"github.com/skillforge/skillforge/pkg/composables"
)

type JobRoleService struct {
	repo jobrole.Repository
}

func NewJobRoleService(repo jobrole.Repository) *JobRoleService {
	return &JobRoleService{repo: repo}
}

func (s *JobRoleService) GetAll(ctx context.Context) ([]jobrole.JobRole, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]jobrole.JobRole, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *JobRoleService) GetByID(ctx context.Context, id uuid.UUID) (jobrole.JobRole, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (jobrole.JobRole, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *JobRoleService) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]jobrole.JobRole, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]jobrole.JobRole, error) {
		return s.repo.GetByTeam(txCtx, teamID)
	})
}

func (s *JobRoleService) Create(ctx context.Context, j jobrole.JobRole) (jobrole.JobRole, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (jobrole.JobRole, error) {
		return s.repo.Create(txCtx, j)
	})
}
