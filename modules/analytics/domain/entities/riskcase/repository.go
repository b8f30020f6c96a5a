package riskcase

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Statuses   []Status
	Severities []Severity
	Owner      string
	// Q fuzzy-matches against title, reason and owner.
	Q      string
	Limit  int
	Offset int
}

// ListResult carries one page of cases plus counters computed over the
// whole filtered set, independent of pagination.
type ListResult struct {
	Cases     []RiskCase
	Total     int64
	HighCount int64
}

type Repository interface {
	// Upsert atomically finds-or-creates the non-terminal case keyed by
	// (workspace, employee, category). When a matching open or monitoring
	// case exists its reason, severity, recommendation and owner are
	// refreshed in place. Returns the stored case and whether it was
	// newly created.
	Upsert(ctx context.Context, c RiskCase) (RiskCase, bool, error)
	// Insert stores the case unconditionally. Used for manual cases,
	// which are never deduplicated.
	Insert(ctx context.Context, c RiskCase) (RiskCase, error)
	GetByID(ctx context.Context, id uuid.UUID) (RiskCase, error)
	Update(ctx context.Context, c RiskCase) error
	List(ctx context.Context, params *FindParams) (*ListResult, error)
}
