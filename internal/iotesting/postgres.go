// Package iotesting provides shared utilities for integration tests.
// Tests get a fresh database inside a throw-away PostgreSQL container,
// so they never touch a real installation.
package iotesting

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "postgres"
)

var (
	once     sync.Once
	ctr      *postgres.PostgresContainer
	startErr error
	dbNum    atomic.Int64
)

// DatabaseConfig returns connection settings of a new empty database.
// The container is started on the first call and shared by all tests of
// the package; it is removed by the testcontainers reaper.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    dbCfg := iotesting.DatabaseConfig(t)
//	    // ... connect with dbCfg
//	}
func DatabaseConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	once.Do(func() {
		ctr, startErr = startPostgres(ctx)
	})
	require.NoError(t, startErr)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	defer conn.Close(ctx)

	name := fmt.Sprintf("cnpjdb_test_%d", dbNum.Add(1))
	_, err = conn.Exec(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err)

	return config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     PostgresUser,
		Password: PostgresPassword,
		Database: name,
		SSLMode:  "disable",
	}
}

// Config returns a complete configuration with a fresh test database and
// dataRoot as the data directory.
func Config(t *testing.T, dataRoot string, opts ...config.Option) *config.Config {
	t.Helper()
	dbCfg := DatabaseConfig(t)
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseHost(dbCfg.Host),
		config.OptDatabasePort(dbCfg.Port),
		config.OptDatabaseUser(dbCfg.User),
		config.OptDatabasePassword(dbCfg.Password),
		config.OptDatabaseDatabase(dbCfg.Database),
		config.OptDatabaseSSLMode(dbCfg.SSLMode),
		config.OptDataRoot(dataRoot),
		config.OptHomeDir(t.TempDir()),
	})
	cfg.Update(opts)
	return cfg
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, error) {
	res, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}
	return res, nil
}
