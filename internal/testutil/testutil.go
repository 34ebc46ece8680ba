package testutil

import (
	"context"
	"net"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcode.org/intcode/internal/dbutil"
)

func Context(t testing.TB) context.Context {
	ctx := context.Background()
	ctx, cf := context.WithCancel(ctx)
	t.Cleanup(cf)
	l, err := zap.NewDevelopment()
	require.NoError(t, err)
	ctx = logctx.NewContext(ctx, l)
	return ctx
}

// NewDB returns an in memory database which is closed during Cleanup.
func NewDB(t testing.TB) *sqlx.DB {
	db, err := dbutil.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func Listen(t testing.TB) net.Listener {
	l, err := net.Listen("tcp", "127.0.0.1:")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}
