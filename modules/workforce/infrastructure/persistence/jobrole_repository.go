package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillforge/skillforge/modules/workforce/domain/entities/jobrole"
	"github.com/skillforge/skillforge/modules/workforce/infrastructure/persistence/models"
	"github.com/skillforge/skillforge/pkg/composables"
)

type JobRoleRepository struct{}

func NewJobRoleRepository() jobrole.Repository {
	return &JobRoleRepository{}
}

func (r *JobRoleRepository) GetAll(ctx context.Context) ([]jobrole.JobRole, error) {
	return r.query(ctx, `WHERE workspace_id = $1 ORDER BY title`, nil)
}

func (r *JobRoleRepository) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]jobrole.JobRole, error) {
	return r.query(ctx, `WHERE workspace_id = $1 AND team_id = $2 ORDER BY title`, []any{teamID})
}

func (r *JobRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (jobrole.JobRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return jobrole.JobRole{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return jobrole.JobRole{}, err
	}

	var m models.JobRole
	err = tx.QueryRow(ctx, `
		SELECT id, workspace_id, title, seniority, team_id, created_at
		FROM job_roles
		WHERE workspace_id = $1 AND id = $2
	`, workspaceID, id).Scan(&m.ID, &m.WorkspaceID, &m.Title, &m.Seniority, &m.TeamID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobrole.JobRole{}, jobrole.ErrNotFound
		}
		return jobrole.JobRole{}, err
	}

	reqs, err := r.requirements(ctx, []uuid.UUID{m.ID})
	if err != nil {
		return jobrole.JobRole{}, err
	}
	return toDomainJobRole(m, reqs[m.ID])
}

func (r *JobRoleRepository) Create(ctx context.Context, j jobrole.JobRole) (jobrole.JobRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return jobrole.JobRole{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return jobrole.JobRole{}, err
	}

	var m models.JobRole
	err = tx.QueryRow(ctx, `
		INSERT INTO job_roles (workspace_id, title, seniority, team_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, workspace_id, title, seniority, team_id, created_at
	`, workspaceID, j.Title(), j.Seniority().String(), j.TeamID()).Scan(
		&m.ID, &m.WorkspaceID, &m.Title, &m.Seniority, &m.TeamID, &m.CreatedAt,
	)
	if err != nil {
		return jobrole.JobRole{}, fmt.Errorf("create job role: %w", err)
	}

	reqRows := make([]models.JobRoleRequirement, 0, len(j.Requirements()))
	for i, req := range j.Requirements() {
		_, err = tx.Exec(ctx, `
			INSERT INTO job_role_requirements (job_role_id, position, skill_id, required_level, weight)
			VALUES ($1, $2, $3, $4, $5)
		`, m.ID, i, req.SkillID(), req.RequiredLevel(), req.Weight())
		if err != nil {
			return jobrole.JobRole{}, fmt.Errorf("create job role requirement: %w", err)
		}
		reqRows = append(reqRows, models.JobRoleRequirement{
			JobRoleID:     m.ID,
			Position:      i,
			SkillID:       req.SkillID(),
			RequiredLevel: req.RequiredLevel(),
			Weight:        req.Weight(),
		})
	}
	return toDomainJobRole(m, reqRows)
}

func (r *JobRoleRepository) query(ctx context.Context, where string, extraArgs []any) ([]jobrole.JobRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return nil, err
	}

	args := append([]any{workspaceID}, extraArgs...)
	rows, err := tx.Query(ctx, `
		SELECT id, workspace_id, title, seniority, team_id, created_at
		FROM job_roles `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roleRows []models.JobRole
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var m models.JobRole
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.Title, &m.Seniority, &m.TeamID, &m.CreatedAt); err != nil {
			return nil, err
		}
		roleRows = append(roleRows, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(roleRows) == 0 {
		return nil, nil
	}

	reqsByRole, err := r.requirements(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]jobrole.JobRole, 0, len(roleRows))
	for _, m := range roleRows {
		role, err := toDomainJobRole(m, reqsByRole[m.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, nil
}

func (r *JobRoleRepository) requirements(ctx context.Context, roleIDs []uuid.UUID) (map[uuid.UUID][]models.JobRoleRequirement, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT job_role_id, position, skill_id, required_level, weight
		FROM job_role_requirements
		WHERE job_role_id = ANY($1)
		ORDER BY job_role_id, position
	`, roleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.JobRoleRequirement, len(roleIDs))
	for rows.Next() {
		var m models.JobRoleRequirement
		if err := rows.Scan(&m.JobRoleID, &m.Position, &m.SkillID, &m.RequiredLevel, &m.Weight); err != nil {
			return nil, err
		}
		out[m.JobRoleID] = append(out[m.JobRoleID], m)
	}
	return out, rows.Err()
}
