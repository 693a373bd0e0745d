package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

func TestFakeDBPanicsWithoutHooks(t *testing.T) {
	db := &FakeDB{}
	ctx := context.Background()
	require.Panics(t, func() { _, _ = db.Exec(ctx, "DELETE FROM blogs") })
	require.Panics(t, func() { _, _ = db.Query(ctx, "SELECT 1") })
	require.Panics(t, func() { db.QueryRow(ctx, "SELECT 1") })
	require.Panics(t, func() { _ = db.Ping(ctx) })
	require.NotPanics(t, db.Close)
}

func TestFakeDBDelegates(t *testing.T) {
	called := map[string]bool{}
	db := &FakeDB{
		ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			called["exec"] = true
			return pgconn.NewCommandTag("DELETE 1"), errors.New("exec")
		},
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			called["query"] = true
			return emptyRows{}, nil
		},
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			called["row"] = true
			return emptyRows{}
		},
		PingFn:  func(context.Context) error { called["ping"] = true; return nil },
		CloseFn: func() { called["close"] = true },
	}
	ctx := context.Background()

	tag, err := db.Exec(ctx, "DELETE FROM blogs WHERE id = $1", "x")
	require.Error(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())

	rows, err := db.Query(ctx, "SELECT id FROM blogs")
	require.NoError(t, err)
	require.False(t, rows.Next())

	require.NoError(t, db.QueryRow(ctx, "SELECT 1").Scan())
	require.NoError(t, db.Ping(ctx))
	db.Close()

	for _, k := range []string{"exec", "query", "row", "ping", "close"} {
		require.True(t, called[k], "%s not called", k)
	}
}
