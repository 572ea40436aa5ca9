package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Empresa{},
		&Estabelecimento{},
		&Socio{},
		&IngestLog{},
	}
}

// TargetModels returns models of tables that receive extracted files,
// parents first.
func TargetModels() []any {
	return []any{
		&Empresa{},
		&Estabelecimento{},
		&Socio{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
