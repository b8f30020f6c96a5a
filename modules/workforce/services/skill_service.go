package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
	"github.com/skillforge/skillforge/pkg/composables"
)

type SkillService struct {
	repo skill.Repository
}

func NewSkillService(repo skill.Repository) *SkillService {
	return &SkillService{repo: repo}
}

func (s *SkillService) GetAll(ctx context.Context) ([]skill.Skill, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]skill.Skill, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *SkillService) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (skill.Skill, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *SkillService) Create(ctx context.Context, sk skill.Skill) (skill.Skill, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (skill.Skill, error) {
		return s.repo.Create(txCtx, sk)
	})
}
