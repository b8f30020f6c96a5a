package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
	"github.com/skillforge/skillforge/modules/workforce/infrastructure/persistence/models"
	"github.com/skillforge/skillforge/pkg/composables"
)

var ErrSkillNameTaken = errors.New("skill name already exists in workspace")

type SkillRepository struct{}

func NewSkillRepository() skill.Repository {
	return &SkillRepository{}
}

func (r *SkillRepository) GetAll(ctx context.Context) ([]skill.Skill, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, workspace_id, name, category, created_at
		FROM skills
		WHERE workspace_id = $1
		ORDER BY name
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []skill.Skill
	for rows.Next() {
		var m models.Skill
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.Name, &m.Category, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, toDomainSkill(m))
	}
	return out, rows.Err()
}

func (r *SkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return skill.Skill{}, err
	}

	var m models.Skill
	err = tx.QueryRow(ctx, `
		SELECT id, workspace_id, name, category, created_at
		FROM skills
		WHERE workspace_id = $1 AND id = $2
	`, workspaceID, id).Scan(&m.ID, &m.WorkspaceID, &m.Name, &m.Category, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return toDomainSkill(m), nil
}

func (r *SkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return skill.Skill{}, err
	}

	var m models.Skill
	err = tx.QueryRow(ctx, `
		INSERT INTO skills (workspace_id, name, category)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, name, category, created_at
	`, workspaceID, s.Name(), string(s.Category())).Scan(&m.ID, &m.WorkspaceID, &m.Name, &m.Category, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return skill.Skill{}, ErrSkillNameTaken
		}
		return skill.Skill{}, fmt.Errorf("create skill: %w", err)
	}
	return toDomainSkill(m), nil
}

type AssignmentRepository struct{}

func NewAssignmentRepository() skill.AssignmentRepository {
	return &AssignmentRepository{}
}

func (r *AssignmentRepository) GetAll(ctx context.Context) ([]skill.Assignment, error) {
	return r.query(ctx, `
		SELECT sa.employee_id, sa.skill_id, sa.level, sa.updated_at
		FROM skill_assignments sa
		JOIN employees e ON e.id = sa.employee_id
		WHERE e.workspace_id = $1
	`)
}

func (r *AssignmentRepository) GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]skill.Assignment, error) {
	return r.query(ctx, `
		SELECT sa.employee_id, sa.skill_id, sa.level, sa.updated_at
		FROM skill_assignments sa
		JOIN employees e ON e.id = sa.employee_id
		WHERE e.workspace_id = $1 AND sa.employee_id = $2
	`, employeeID)
}

func (r *AssignmentRepository) Upsert(ctx context.Context, a skill.Assignment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO skill_assignments (employee_id, skill_id, level, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (employee_id, skill_id)
		DO UPDATE SET level = EXCLUDED.level, updated_at = now()
	`, a.EmployeeID(), a.SkillID(), a.Level())
	return err
}

func (r *AssignmentRepository) query(ctx context.Context, sql string, extraArgs ...any) ([]skill.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return nil, err
	}

	args := append([]any{workspaceID}, extraArgs...)
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []skill.Assignment
	for rows.Next() {
		var m models.SkillAssignment
		if err := rows.Scan(&m.EmployeeID, &m.SkillID, &m.Level, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, toDomainAssignment(m))
	}
	return out, rows.Err()
}
