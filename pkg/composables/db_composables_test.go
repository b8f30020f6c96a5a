package composables_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/pkg/composables"
)

type countingTx struct {
	commits   int
	rollbacks int
}

func (t *countingTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *countingTx) Commit(ctx context.Context) error {
	t.commits++
	return nil
}
func (t *countingTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}
func (t *countingTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *countingTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *countingTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *countingTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *countingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *countingTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}
func (t *countingTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *countingTx) Conn() *pgx.Conn                                               { return nil }

func TestInTx_ReusesBoundTransaction(t *testing.T) {
	tx := &countingTx{}
	ctx := composables.WithTx(context.Background(), tx)

	ran := false
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		ran = true
		bound, err := composables.UseTx(txCtx)
		require.NoError(t, err)
		require.Same(t, tx, bound)
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)

	// The outer owner commits, not the nested call.
	require.Zero(t, tx.commits)
	require.Zero(t, tx.rollbacks)
}

func TestInTx_RequiresPoolWhenNoTransaction(t *testing.T) {
	err := composables.InTx(context.Background(), func(context.Context) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})
	require.ErrorIs(t, err, composables.ErrNoPool)
}

func TestUseTx_NoTxNoPool(t *testing.T) {
	_, err := composables.UseTx(context.Background())
	require.ErrorIs(t, err, composables.ErrNoPool)
}

func TestUseWorkspaceID(t *testing.T) {
	_, err := composables.UseWorkspaceID(context.Background())
	require.ErrorIs(t, err, composables.ErrNoWorkspaceID)

	id := uuid.New()
	got, err := composables.UseWorkspaceID(composables.WithWorkspaceID(context.Background(), id))
	require.NoError(t, err)
	require.Equal(t, id, got)
}
