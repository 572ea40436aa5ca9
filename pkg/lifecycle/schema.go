package lifecycle

import (
	"context"

	"github.com/gnames/cnpjdb/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to create target tables and the ingest log.
type SchemaManager interface {
	// Create creates the schema. Existing tables are kept; dropping them
	// is the caller's decision (see db.Operator.DropAllTables).
	Create(ctx context.Context, cfg *config.Config) error
}
