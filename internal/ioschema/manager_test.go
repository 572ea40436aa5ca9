package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/cnpjdb/internal/iodb"
	"github.com/gnames/cnpjdb/internal/ioschema"
	"github.com/gnames/cnpjdb/internal/iotesting"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	err := mgr.Create(context.Background(), config.New())
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	cfg := iotesting.Config(t, t.TempDir())
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx, cfg))

	for _, v := range []string{"empresas", "estabelecimentos", "socios", "ingest_log"} {
		exists, err := op.TableExists(ctx, v)
		require.NoError(t, err)
		assert.True(t, exists, v)
	}

	_, err := op.Pool().Exec(ctx,
		"INSERT INTO empresas (cnpj_basico) VALUES ('00000001')")
	require.NoError(t, err)

	// second run keeps data
	require.NoError(t, mgr.Create(ctx, cfg))
	var count int
	err = op.Pool().QueryRow(ctx, "SELECT count(*) FROM empresas").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
