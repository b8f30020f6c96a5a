package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/repo"
)

// SnapshotRepository assembles the analytics view of a workspace. All four
// reads run inside one transaction so the snapshot is internally
// consistent.
type SnapshotRepository struct{}

func NewSnapshotRepository() snapshot.Loader {
	return &SnapshotRepository{}
}

func (r *SnapshotRepository) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return nil, err
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (*snapshot.Snapshot, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return nil, err
		}

		employees, err := loadSnapshotEmployees(txCtx, tx, workspaceID)
		if err != nil {
			return nil, err
		}
		if len(employees) == 0 {
			return snapshot.Empty(workspaceID), nil
		}
		skills, err := loadSnapshotSkills(txCtx, tx, workspaceID)
		if err != nil {
			return nil, err
		}
		assignments, err := loadSnapshotAssignments(txCtx, tx, workspaceID)
		if err != nil {
			return nil, err
		}
		byEmployee, bySkill, err := loadArtifactCounts(txCtx, tx, workspaceID)
		if err != nil {
			return nil, err
		}
		return snapshot.New(workspaceID, employees, skills, assignments, byEmployee, bySkill), nil
	})
}

func loadSnapshotEmployees(ctx context.Context, tx repo.Tx, workspaceID uuid.UUID) ([]snapshot.Employee, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, name, position, seniority, team_id
		FROM employees
		WHERE workspace_id = $1
		ORDER BY name
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []snapshot.Employee
	for rows.Next() {
		var e snapshot.Employee
		var seniority string
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &seniority, &e.TeamID); err != nil {
			return nil, err
		}
		e.Seniority, err = employee.ParseSeniority(seniority)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func loadSnapshotSkills(ctx context.Context, tx repo.Tx, workspaceID uuid.UUID) ([]snapshot.Skill, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, name, category
		FROM skills
		WHERE workspace_id = $1
		ORDER BY name
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []snapshot.Skill
	for rows.Next() {
		var s snapshot.Skill
		var category string
		if err := rows.Scan(&s.ID, &s.Name, &category); err != nil {
			return nil, err
		}
		s.Category = skill.Category(category)
		out = append(out, s)
	}
	return out, rows.Err()
}

func loadSnapshotAssignments(ctx context.Context, tx repo.Tx, workspaceID uuid.UUID) ([]snapshot.Assignment, error) {
	rows, err := tx.Query(ctx, `
		SELECT sa.employee_id, sa.skill_id, s.name, s.category, sa.level
		FROM skill_assignments sa
		JOIN skills s ON s.id = sa.skill_id
		WHERE s.workspace_id = $1
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []snapshot.Assignment
	for rows.Next() {
		var a snapshot.Assignment
		var category string
		if err := rows.Scan(&a.EmployeeID, &a.SkillID, &a.SkillName, &category, &a.Level); err != nil {
			return nil, err
		}
		a.Category = skill.Category(category)
		out = append(out, a)
	}
	return out, rows.Err()
}

func loadArtifactCounts(ctx context.Context, tx repo.Tx, workspaceID uuid.UUID) (map[uuid.UUID]int, map[uuid.UUID]int, error) {
	rows, err := tx.Query(ctx, `
		SELECT employee_id, skill_id
		FROM artifacts
		WHERE workspace_id = $1
	`, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	byEmployee := make(map[uuid.UUID]int)
	bySkill := make(map[uuid.UUID]int)
	for rows.Next() {
		var employeeID, skillID *uuid.UUID
		if err := rows.Scan(&employeeID, &skillID); err != nil {
			return nil, nil, err
		}
		if employeeID != nil {
			byEmployee[*employeeID]++
		}
		if skillID != nil {
			bySkill[*skillID]++
		}
	}
	return byEmployee, bySkill, rows.Err()
}
