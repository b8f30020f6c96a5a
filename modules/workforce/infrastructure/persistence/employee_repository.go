package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/infrastructure/persistence/models"
	"github.com/skillforge/skillforge/pkg/composables"
)

const employeeFields = "id, workspace_id, name, position, seniority, team_id, created_at, updated_at"

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE workspace_id = $1`, workspaceID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return r.query(ctx, `WHERE workspace_id = $1 ORDER BY name`, nil)
}

func (r *EmployeeRepository) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]employee.Employee, error) {
	return r.query(ctx, `WHERE workspace_id = $1 AND team_id = $2 ORDER BY name`, []any{teamID})
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+employeeFields+`
		FROM employees
		WHERE workspace_id = $1 AND id = $2
	`, workspaceID, id)

	var m models.Employee
	if err := scanEmployee(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, err
	}
	return toDomainEmployee(m)
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO employees (workspace_id, name, position, seniority, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+employeeFields+`
	`, workspaceID, e.Name(), e.Position(), e.Seniority().String(), e.TeamID())

	var m models.Employee
	if err := scanEmployee(row, &m); err != nil {
		return employee.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return toDomainEmployee(m)
}

func (r *EmployeeRepository) query(ctx context.Context, where string, extraArgs []any) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return nil, err
	}

	args := append([]any{workspaceID}, extraArgs...)
	rows, err := tx.Query(ctx, `SELECT `+employeeFields+` FROM employees `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		var m models.Employee
		if err := scanEmployee(rows, &m); err != nil {
			return nil, err
		}
		e, err := toDomainEmployee(m)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEmployee(row pgx.Row, m *models.Employee) error {
	return row.Scan(
		&m.ID,
		&m.WorkspaceID,
		&m.Name,
		&m.Position,
		&m.Seniority,
		&m.TeamID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}
