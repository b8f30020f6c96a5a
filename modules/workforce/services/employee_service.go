package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/eventbus"
)

type EmployeeService struct {
	repo        employee.Repository
	assignments skill.AssignmentRepository
	publisher   eventbus.EventBus
}

func NewEmployeeService(
	repo employee.Repository,
	assignments skill.AssignmentRepository,
	publisher eventbus.EventBus,
) *EmployeeService {
	return &EmployeeService{
		repo:        repo,
		assignments: assignments,
		publisher:   publisher,
	}
}

func (s *EmployeeService) Count(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *EmployeeService) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		created, err := s.repo.Create(txCtx, e)
		if err != nil {
			return employee.Employee{}, err
		}
		s.publisher.Publish(&employee.CreatedEvent{Result: created})
		return created, nil
	})
}

// RecordSkill upserts the level for an (employee, skill) pair,
// last-write-wins.
func (s *EmployeeService) RecordSkill(ctx context.Context, employeeID, skillID uuid.UUID, level int) error {
	assignment, err := skill.NewAssignment(employeeID, skillID, level)
	if err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, employeeID); err != nil {
			return err
		}
		return s.assignments.Upsert(txCtx, assignment)
	})
}
