package repository

import (
	"embed"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the ledger schema
func Migrate(db *database.DB, logger *zap.Logger) error {
	return database.NewMigrator(db, logger).Run(migrations, "migrations")
}
