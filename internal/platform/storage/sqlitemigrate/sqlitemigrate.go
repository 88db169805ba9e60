// Package sqlitemigrate applies embedded SQL migrations to a SQLite
// database, recording each applied file in a schema_migrations table.
//
// Migration files are named NNN_description.sql and split into sections by
// "-- +migrate Up" and "-- +migrate Down" markers. A file without markers is
// treated as an Up section only.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const (
	migrationTable = "schema_migrations"
	upMarker       = "-- +migrate Up"
	downMarker     = "-- +migrate Down"
)

// Migration is one migration file split into its sections.
type Migration struct {
	Name string
	Up   string
	Down string
}

// Load reads every .sql file directly under root, ordered by name.
func Load(migrationFS fs.FS, root string) ([]Migration, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(migrationFS, path.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		key := name
		if root != "." {
			key = path.Join(root, name)
		}
		up, down := Split(string(content))
		migrations = append(migrations, Migration{Name: key, Up: up, Down: down})
	}
	return migrations, nil
}

// ApplyMigrations loads migrations from root and applies the pending ones.
func ApplyMigrations(ctx context.Context, sqlDB *sql.DB, migrationFS fs.FS, root string) error {
	migrations, err := Load(migrationFS, root)
	if err != nil {
		return err
	}
	return Apply(ctx, sqlDB, migrations)
}

// Apply runs the Up section of every migration not yet recorded. Each
// migration runs in its own transaction together with its record.
func Apply(ctx context.Context, sqlDB *sql.DB, migrations []Migration) error {
	if sqlDB == nil {
		return errors.New("sql db is required")
	}
	if _, err := sqlDB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isApplied(ctx, sqlDB, m.Name)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", m.Name, err)
		}
		if applied || strings.TrimSpace(m.Up) == "" {
			continue
		}
		err = inTx(ctx, sqlDB, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Up); err != nil && !IsAlreadyExistsError(err) {
				return fmt.Errorf("exec: %w", err)
			}
			_, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
				m.Name, time.Now().UTC().UnixMilli(),
			)
			if err != nil {
				return fmt.Errorf("record: %w", err)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return nil
}

// Revert runs the Down section of an applied migration and forgets it.
// Reverting a migration that was never applied is a no-op.
func Revert(ctx context.Context, sqlDB *sql.DB, m Migration) error {
	if sqlDB == nil {
		return errors.New("sql db is required")
	}
	applied, err := isApplied(ctx, sqlDB, m.Name)
	if err != nil {
		return fmt.Errorf("check migration %s: %w", m.Name, err)
	}
	if !applied {
		return nil
	}
	return inTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if strings.TrimSpace(m.Down) != "" {
			if _, err := tx.ExecContext(ctx, m.Down); err != nil {
				return fmt.Errorf("revert %s: %w", m.Name, err)
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+migrationTable+" WHERE name = ?", m.Name); err != nil {
			return fmt.Errorf("forget %s: %w", m.Name, err)
		}
		return nil
	})
}

// Split returns the Up and Down sections of a migration file. The Up
// section is expected before the Down section.
func Split(content string) (up, down string) {
	up = content
	if idx := strings.Index(content, downMarker); idx >= 0 {
		up, down = content[:idx], content[idx+len(downMarker):]
	}
	if idx := strings.Index(up, upMarker); idx >= 0 {
		up = up[idx+len(upMarker):]
	}
	return up, down
}

// IsAlreadyExistsError reports whether this error indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

func isApplied(ctx context.Context, sqlDB *sql.DB, name string) (bool, error) {
	var found int
	err := sqlDB.QueryRowContext(ctx, "SELECT 1 FROM "+migrationTable+" WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func inTx(ctx context.Context, sqlDB *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
