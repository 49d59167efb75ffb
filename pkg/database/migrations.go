package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Migration is one numbered schema change, e.g. "001_runs.sql"
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrator applies pending migrations and records them in schema_migrations
type Migrator struct {
	db     *DB
	logger *zap.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *DB, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{db: db, logger: logger}
}

// RunMigrations applies the .sql files of a directory on disk
func (m *Migrator) RunMigrations(dir string) error {
	return m.Run(os.DirFS(dir), ".")
}

// Run applies the .sql files under dir in fsys, typically an embed.FS.
// Applied versions are skipped, so Run is safe on every start.
func (m *Migrator) Run(fsys fs.FS, dir string) error {
	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := LoadMigrations(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	pending := 0
	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		m.logger.Info("Applying migration",
			zap.Int("version", migration.Version),
			zap.String("name", migration.Name))

		if err := m.apply(migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
		pending++
	}

	m.logger.Info("Database migrations completed", zap.Int("applied", pending))
	return nil
}

func (m *Migrator) createMigrationsTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

func (m *Migrator) appliedVersions() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// LoadMigrations reads "<version>_<name>.sql" files from dir, sorted by version
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(filename, ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(filename, "%d", &version); err != nil {
			return nil, fmt.Errorf("invalid migration filename format: %s", filename)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", other, filename, version)
		}
		seen[version] = filename

		content, err := fs.ReadFile(fsys, path.Join(dir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		name := ""
		if parts := strings.SplitN(filename, "_", 2); len(parts) == 2 {
			name = strings.TrimSuffix(parts[1], ".sql")
		}

		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func (m *Migrator) apply(migration Migration) error {
	return m.db.WithTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(migration.SQL); err != nil {
			return fmt.Errorf("failed to execute migration SQL: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
}
