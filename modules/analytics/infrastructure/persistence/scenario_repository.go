package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/scenario"
	"github.com/skillforge/skillforge/modules/analytics/infrastructure/persistence/models"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/repo"
)

const scenarioFields = `
	id, workspace_id, team_id, title, description, status, created_by,
	created_at, updated_at`

const actionFields = `
	id, scenario_id, position, action_type, team_id, from_employee_id,
	to_employee_id, job_role_id, skill_id, priority, note`

type ScenarioRepository struct{}

func NewScenarioRepository() scenario.Repository {
	return &ScenarioRepository{}
}

// Create stores the scenario header and its initial actions in one
// transaction.
func (r *ScenarioRepository) Create(ctx context.Context, s scenario.MoveScenario) (scenario.MoveScenario, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (scenario.MoveScenario, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return scenario.MoveScenario{}, err
		}

		var m models.MoveScenario
		err = tx.QueryRow(txCtx, `
			INSERT INTO move_scenarios (workspace_id, team_id, title, description, status, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING`+scenarioFields+`
		`, s.WorkspaceID(), s.TeamID(), s.Title(), s.Description(), string(s.Status()), s.CreatedBy()).Scan(
			&m.ID, &m.WorkspaceID, &m.TeamID, &m.Title, &m.Description,
			&m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return scenario.MoveScenario{}, fmt.Errorf("create scenario: %w", err)
		}

		actionRows := make([]models.MoveScenarioAction, 0, len(s.Actions()))
		for i, a := range s.Actions() {
			stored, err := insertAction(txCtx, tx, m.ID, i, a)
			if err != nil {
				return scenario.MoveScenario{}, err
			}
			actionRows = append(actionRows, stored)
		}
		return toDomainScenario(m, actionRows), nil
	})
}

func (r *ScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (scenario.MoveScenario, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return scenario.MoveScenario{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return scenario.MoveScenario{}, err
	}

	var m models.MoveScenario
	err = tx.QueryRow(ctx, `
		SELECT`+scenarioFields+`
		FROM move_scenarios
		WHERE workspace_id = $1 AND id = $2
	`, workspaceID, id).Scan(
		&m.ID, &m.WorkspaceID, &m.TeamID, &m.Title, &m.Description,
		&m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return scenario.MoveScenario{}, scenario.ErrNotFound
		}
		return scenario.MoveScenario{}, err
	}

	actions, err := queryActions(ctx, tx, []uuid.UUID{m.ID})
	if err != nil {
		return scenario.MoveScenario{}, err
	}
	return toDomainScenario(m, actions[m.ID]), nil
}

func (r *ScenarioRepository) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]scenario.MoveScenario, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT`+scenarioFields+`
		FROM move_scenarios
		WHERE workspace_id = $1 AND team_id = $2
		ORDER BY created_at DESC
	`, workspaceID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []models.MoveScenario
	var ids []uuid.UUID
	for rows.Next() {
		var m models.MoveScenario
		if err := rows.Scan(
			&m.ID, &m.WorkspaceID, &m.TeamID, &m.Title, &m.Description,
			&m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		headers = append(headers, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, nil
	}

	actions, err := queryActions(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]scenario.MoveScenario, 0, len(headers))
	for _, m := range headers {
		out = append(out, toDomainScenario(m, actions[m.ID]))
	}
	return out, nil
}

// AppendAction claims the next position after the current tail. The unique
// (scenario_id, position) constraint guarantees no prior row is rewritten.
func (r *ScenarioRepository) AppendAction(ctx context.Context, scenarioID uuid.UUID, a scenario.Action) (scenario.Action, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (scenario.Action, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return scenario.Action{}, err
		}

		var next int
		err = tx.QueryRow(txCtx, `
			SELECT COALESCE(MAX(position) + 1, 0)
			FROM move_scenario_actions
			WHERE scenario_id = $1
		`, scenarioID).Scan(&next)
		if err != nil {
			return scenario.Action{}, err
		}

		stored, err := insertAction(txCtx, tx, scenarioID, next, a)
		if err != nil {
			return scenario.Action{}, err
		}
		if _, err := tx.Exec(txCtx, `UPDATE move_scenarios SET updated_at = now() WHERE id = $1`, scenarioID); err != nil {
			return scenario.Action{}, err
		}
		return toDomainAction(stored), nil
	})
}

func (r *ScenarioRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status scenario.Status) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE move_scenarios
		SET status = $3, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
	`, workspaceID, id, string(status))
	if err != nil {
		return fmt.Errorf("update scenario status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scenario.ErrNotFound
	}
	return nil
}

func insertAction(ctx context.Context, tx repo.Tx, scenarioID uuid.UUID, position int, a scenario.Action) (models.MoveScenarioAction, error) {
	var m models.MoveScenarioAction
	err := tx.QueryRow(ctx, `
		INSERT INTO move_scenario_actions (scenario_id, position, action_type, team_id, from_employee_id, to_employee_id, job_role_id, skill_id, priority, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING`+actionFields+`
	`,
		scenarioID, position, string(a.Type), a.TeamID, a.FromEmployeeID,
		a.ToEmployeeID, a.JobRoleID, a.SkillID, a.Priority, a.Note,
	).Scan(
		&m.ID, &m.ScenarioID, &m.Position, &m.ActionType, &m.TeamID,
		&m.FromEmployeeID, &m.ToEmployeeID, &m.JobRoleID, &m.SkillID,
		&m.Priority, &m.Note,
	)
	if err != nil {
		return models.MoveScenarioAction{}, fmt.Errorf("insert scenario action: %w", err)
	}
	return m, nil
}

func queryActions(ctx context.Context, tx repo.Tx, scenarioIDs []uuid.UUID) (map[uuid.UUID][]models.MoveScenarioAction, error) {
	rows, err := tx.Query(ctx, `
		SELECT`+actionFields+`
		FROM move_scenario_actions
		WHERE scenario_id = ANY($1)
		ORDER BY scenario_id, position
	`, scenarioIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.MoveScenarioAction)
	for rows.Next() {
		var m models.MoveScenarioAction
		if err := rows.Scan(
			&m.ID, &m.ScenarioID, &m.Position, &m.ActionType, &m.TeamID,
			&m.FromEmployeeID, &m.ToEmployeeID, &m.JobRoleID, &m.SkillID,
			&m.Priority, &m.Note,
		); err != nil {
			return nil, err
		}
		out[m.ScenarioID] = append(out[m.ScenarioID], m)
	}
	return out, rows.Err()
}
