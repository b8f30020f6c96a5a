package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
	"github.com/skillforge/skillforge/modules/analytics/infrastructure/persistence/models"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/repo"
)

const riskCaseFields = `
	id, workspace_id, employee_id, category, severity, source, status,
	title, reason, recommendation, owner, resolution_note, resolved_at,
	created_at, updated_at`

type RiskCaseRepository struct{}

func NewRiskCaseRepository() riskcase.Repository {
	return &RiskCaseRepository{}
}

func scanRiskCase(row pgx.Row) (models.RiskCase, error) {
	var m models.RiskCase
	err := row.Scan(
		&m.ID, &m.WorkspaceID, &m.EmployeeID, &m.Category, &m.Severity,
		&m.Source, &m.Status, &m.Title, &m.Reason, &m.Recommendation,
		&m.Owner, &m.ResolutionNote, &m.ResolvedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// Upsert inserts the detection or refreshes the existing non-terminal case
// with the same (workspace, employee, category). The partial unique index
// on active engine cases arbitrates; xmax tells insert from update apart.
func (r *RiskCaseRepository) Upsert(ctx context.Context, c riskcase.RiskCase) (riskcase.RiskCase, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return riskcase.RiskCase{}, false, err
	}

	var m models.RiskCase
	var created bool
	err = tx.QueryRow(ctx, `
		INSERT INTO risk_cases (workspace_id, employee_id, category, severity, source, status, title, reason, recommendation, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (workspace_id, employee_id, category) WHERE status IN ('open', 'monitoring') AND source = 'engine'
		DO UPDATE SET
			severity = EXCLUDED.severity,
			title = EXCLUDED.title,
			reason = EXCLUDED.reason,
			recommendation = EXCLUDED.recommendation,
			updated_at = now()
		RETURNING`+riskCaseFields+`, (xmax = 0) AS inserted
	`,
		c.WorkspaceID(), c.EmployeeID(), string(c.Category()), string(c.Severity()),
		string(c.Source()), string(c.Status()), c.Title(), c.Reason(), c.Recommendation(), c.Owner(),
	).Scan(
		&m.ID, &m.WorkspaceID, &m.EmployeeID, &m.Category, &m.Severity,
		&m.Source, &m.Status, &m.Title, &m.Reason, &m.Recommendation,
		&m.Owner, &m.ResolutionNote, &m.ResolvedAt, &m.CreatedAt, &m.UpdatedAt,
		&created,
	)
	if err != nil {
		return riskcase.RiskCase{}, false, fmt.Errorf("upsert risk case: %w", err)
	}
	return toDomainRiskCase(m), created, nil
}

func (r *RiskCaseRepository) Insert(ctx context.Context, c riskcase.RiskCase) (riskcase.RiskCase, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return riskcase.RiskCase{}, err
	}

	m, err := scanRiskCase(tx.QueryRow(ctx, `
		INSERT INTO risk_cases (workspace_id, employee_id, category, severity, source, status, title, reason, recommendation, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING`+riskCaseFields+`
	`,
		c.WorkspaceID(), c.EmployeeID(), string(c.Category()), string(c.Severity()),
		string(c.Source()), string(c.Status()), c.Title(), c.Reason(), c.Recommendation(), c.Owner(),
	))
	if err != nil {
		return riskcase.RiskCase{}, fmt.Errorf("insert risk case: %w", err)
	}
	return toDomainRiskCase(m), nil
}

func (r *RiskCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (riskcase.RiskCase, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return riskcase.RiskCase{}, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return riskcase.RiskCase{}, err
	}

	m, err := scanRiskCase(tx.QueryRow(ctx, `
		SELECT`+riskCaseFields+`
		FROM risk_cases
		WHERE workspace_id = $1 AND id = $2
	`, workspaceID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return riskcase.RiskCase{}, riskcase.ErrNotFound
		}
		return riskcase.RiskCase{}, err
	}
	return toDomainRiskCase(m), nil
}

func (r *RiskCaseRepository) Update(ctx context.Context, c riskcase.RiskCase) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE risk_cases
		SET severity = $3, status = $4, title = $5, reason = $6, recommendation = $7,
			owner = $8, resolution_note = $9, resolved_at = $10, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
	`,
		c.WorkspaceID(), c.ID(), string(c.Severity()), string(c.Status()), c.Title(),
		c.Reason(), c.Recommendation(), c.Owner(), c.ResolutionNote(), c.ResolvedAt(),
	)
	if err != nil {
		return fmt.Errorf("update risk case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return riskcase.ErrNotFound
	}
	return nil
}

// List filters by status, severity and owner in SQL. Counters are window
// aggregates over the filtered set, so they ignore pagination.
func (r *RiskCaseRepository) List(ctx context.Context, params *riskcase.FindParams) (*riskcase.ListResult, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	workspaceID, err := composables.UseWorkspaceID(ctx)
	if err != nil {
		return nil, err
	}

	where := []string{"workspace_id = $1"}
	args := []any{workspaceID}
	if len(params.Statuses) > 0 {
		statuses := make([]string, len(params.Statuses))
		for i, st := range params.Statuses {
			statuses[i] = string(st)
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(params.Severities) > 0 {
		severities := make([]string, len(params.Severities))
		for i, sev := range params.Severities {
			severities[i] = string(sev)
		}
		args = append(args, severities)
		where = append(where, fmt.Sprintf("severity = ANY($%d)", len(args)))
	}
	if params.Owner != "" {
		args = append(args, params.Owner)
		where = append(where, fmt.Sprintf("owner = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT`+riskCaseFields+`,
			COUNT(*) OVER () AS total,
			COUNT(*) FILTER (WHERE severity = 'high') OVER () AS high_count
		FROM risk_cases
		WHERE %s
		ORDER BY
			CASE severity WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC,
			created_at DESC
		%s
	`, strings.Join(where, " AND "), repo.FormatLimitOffset(params.Limit, params.Offset))

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &riskcase.ListResult{}
	for rows.Next() {
		var m models.RiskCase
		if err := rows.Scan(
			&m.ID, &m.WorkspaceID, &m.EmployeeID, &m.Category, &m.Severity,
			&m.Source, &m.Status, &m.Title, &m.Reason, &m.Recommendation,
			&m.Owner, &m.ResolutionNote, &m.ResolvedAt, &m.CreatedAt, &m.UpdatedAt,
			&result.Total, &result.HighCount,
		); err != nil {
			return nil, err
		}
		result.Cases = append(result.Cases, toDomainRiskCase(m))
	}
	return result, rows.Err()
}
