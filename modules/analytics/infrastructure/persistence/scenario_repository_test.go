package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/scenario"
	"github.com/skillforge/skillforge/pkg/composables"
	"github.com/skillforge/skillforge/pkg/constants"
)

// fakePgxTx satisfies pgx.Tx so repository methods that open their own
// transaction reuse it instead of needing a pool.
type fakePgxTx struct {
	queryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (t *fakePgxTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakePgxTx) Commit(ctx context.Context) error          { return nil }
func (t *fakePgxTx) Rollback(ctx context.Context) error        { return nil }
func (t *fakePgxTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakePgxTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakePgxTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakePgxTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakePgxTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.execFunc == nil {
		return pgconn.CommandTag{}, nil
	}
	return t.execFunc(ctx, sql, args...)
}
func (t *fakePgxTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.queryFunc(ctx, sql, args...)
}
func (t *fakePgxTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.queryRowFunc(ctx, sql, args...)
}
func (t *fakePgxTx) Conn() *pgx.Conn { return nil }

func TestScenarioRepository_AppendAction_ClaimsNextPosition(t *testing.T) {
	scenarioID := uuid.New()
	teamID := uuid.New()
	touched := false

	tx := &fakePgxTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			switch {
			case strings.Contains(sql, "COALESCE(MAX(position) + 1, 0)"):
				require.Equal(t, scenarioID, args[0])
				return stubRow{scan: func(dest ...any) error {
					*dest[0].(*int) = 3
					return nil
				}}
			case strings.Contains(sql, "INSERT INTO move_scenario_actions"):
				require.Equal(t, scenarioID, args[0])
				require.Equal(t, 3, args[1])
				require.Equal(t, "backfill", args[2])
				return &singleRow{row: []any{
					uuid.New(), scenarioID, 3, "backfill", &teamID,
					(*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil),
					4, "backfill the vacated seat",
				}}
			}
			t.Fatalf("unexpected query: %s", sql)
			return nil
		},
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "UPDATE move_scenarios SET updated_at")
			require.Equal(t, scenarioID, args[0])
			touched = true
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	ctx := composables.WithTx(context.Background(), tx)
	repo := NewScenarioRepository()

	stored, err := repo.AppendAction(ctx, scenarioID, scenario.Action{
		Type:     scenario.ActionBackfill,
		TeamID:   &teamID,
		Priority: 4,
		Note:     "backfill the vacated seat",
	})
	require.NoError(t, err)
	require.True(t, touched)
	require.Equal(t, scenario.ActionBackfill, stored.Type)
	require.Equal(t, 4, stored.Priority)
	require.Equal(t, teamID, *stored.TeamID)
}

func TestScenarioRepository_GetByID_NotFound(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "FROM move_scenarios")
			return stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}

	ctx := context.WithValue(composables.WithWorkspaceID(context.Background(), uuid.New()), constants.TxKey, tx)
	repo := NewScenarioRepository()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, scenario.ErrNotFound)
}

func TestScenarioRepository_UpdateStatus_ScopesToWorkspace(t *testing.T) {
	workspaceID := uuid.New()
	scenarioID := uuid.New()

	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "UPDATE move_scenarios")
			require.Contains(t, sql, "workspace_id = $1 AND id = $2")
			require.Equal(t, workspaceID, args[0])
			require.Equal(t, scenarioID, args[1])
			require.Equal(t, "review", args[2])
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	ctx := context.WithValue(composables.WithWorkspaceID(context.Background(), workspaceID), constants.TxKey, tx)
	repo := NewScenarioRepository()

	require.NoError(t, repo.UpdateStatus(ctx, scenarioID, scenario.StatusReview))
}

func TestSnapshotRepository_Load(t *testing.T) {
	t.Run("empty workspace falls back to an empty graph", func(t *testing.T) {
		workspaceID := uuid.New()
		queries := 0

		tx := &fakePgxTx{
			queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				queries++
				require.Contains(t, sql, "FROM employees")
				require.Equal(t, workspaceID, args[0])
				return &stubRows{}, nil
			},
		}

		ctx := composables.WithTx(composables.WithWorkspaceID(context.Background(), workspaceID), tx)
		snap, err := NewSnapshotRepository().Load(ctx)
		require.NoError(t, err)
		require.Equal(t, workspaceID, snap.WorkspaceID())
		require.Zero(t, snap.TotalEmployees())
		// Nothing else is fetched once the workspace turns out empty.
		require.Equal(t, 1, queries)
	})

	t.Run("assembles the graph from all four reads", func(t *testing.T) {
		workspaceID := uuid.New()
		adaID := uuid.New()
		skillID := uuid.New()

		tx := &fakePgxTx{
			queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Equal(t, workspaceID, args[0])
				switch {
				case strings.Contains(sql, "FROM employees"):
					return &stubRows{data: [][]any{
						{adaID, "Ada", "Engineer", "senior", (*uuid.UUID)(nil)},
					}}, nil
				case strings.Contains(sql, "FROM skills"):
					return &stubRows{data: [][]any{
						{skillID, "Go", "hard"},
					}}, nil
				case strings.Contains(sql, "FROM skill_assignments"):
					return &stubRows{data: [][]any{
						{adaID, skillID, "Go", "hard", 4},
					}}, nil
				case strings.Contains(sql, "FROM artifacts"):
					return &stubRows{data: [][]any{
						{&adaID, &skillID},
						{&adaID, (*uuid.UUID)(nil)},
					}}, nil
				}
				t.Fatalf("unexpected query: %s", sql)
				return nil, nil
			},
		}

		ctx := composables.WithTx(composables.WithWorkspaceID(context.Background(), workspaceID), tx)
		snap, err := NewSnapshotRepository().Load(ctx)
		require.NoError(t, err)

		require.Equal(t, 1, snap.TotalEmployees())
		require.Len(t, snap.Skills(), 1)
		require.Len(t, snap.BySkill(skillID), 1)
		require.Equal(t, 4, snap.LevelOf(adaID, skillID))
		require.Equal(t, 2, snap.ArtifactCount(adaID))
		require.Equal(t, 1, snap.SkillArtifactCount(skillID))
	})
}
