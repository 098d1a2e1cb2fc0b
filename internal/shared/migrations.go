package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Schema migrations for the offline cache. Each version is a pair of
// embedded scripts, sql/NNNN_<name>_up.sql and sql/NNNN_<name>_down.sql,
// and applied versions are recorded in a schema_migrations table.

//go:embed sql/*.sql
var migrationFS embed.FS

type migration struct {
	version int
	up      string
	down    string
}

// RunMigrations brings the cache schema up to date, applying every embedded
// migration that schema_migrations does not list yet. Safe to call on every
// startup.
func RunMigrations(db *sql.DB) error {
	migrations, err := collectMigrations()
	if err != nil {
		return err
	}

	if err := ensureVersionTable(db); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := m.apply(db); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
	}

	return nil
}

// RollbackMigration reverts the highest applied migration.
func RollbackMigration(db *sql.DB) error {
	migrations, err := collectMigrations()
	if err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return fmt.Errorf("no applied migrations to roll back")
	}

	newest := -1
	for version := range applied {
		if version > newest {
			newest = version
		}
	}

	for _, m := range migrations {
		if m.version == newest {
			if err := m.revert(db); err != nil {
				return fmt.Errorf("rollback of migration %d failed: %w", m.version, err)
			}
			return nil
		}
	}

	return fmt.Errorf("no script embedded for applied migration %d", newest)
}

// collectMigrations pairs the embedded up and down scripts by version,
// sorted ascending. A version missing either half is an error.
func collectMigrations() ([]migration, error) {
	entries, err := migrationFS.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	byVersion := make(map[int]*migration)

	for _, entry := range entries {
		name := entry.Name()

		stem, isUp := strings.CutSuffix(name, "_up.sql")
		if !isUp {
			if stem, _ = strings.CutSuffix(name, "_down.sql"); stem == name {
				continue
			}
		}

		prefix, _, found := strings.Cut(stem, "_")
		if !found {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		script, err := migrationFS.ReadFile("sql/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		m := byVersion[version]
		if m == nil {
			m = &migration{version: version}
			byVersion[version] = m
		}
		if isUp {
			m.up = string(script)
		} else {
			m.down = string(script)
		}
	}

	migrations := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.up == "" || m.down == "" {
			return nil, fmt.Errorf("migration %d is missing its up or down script", m.version)
		}
		migrations = append(migrations, *m)
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })

	return migrations, nil
}

func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
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

// apply runs the up script and records the version, in one transaction.
func (m migration) apply(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := execScript(tx, m.up); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return err
	}

	return tx.Commit()
}

// revert runs the down script and deletes the version record, in one
// transaction.
func (m migration) revert(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := execScript(tx, m.down); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", m.version); err != nil {
		return err
	}

	return tx.Commit()
}

// execScript runs a multi-statement SQL script inside tx. Statements are
// separated by semicolons; sqlite's Exec only takes one at a time.
func execScript(tx *sql.Tx, script string) error {
	for _, stmt := range splitStatements(script) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%w in statement: %s", err, stmt)
		}
	}
	return nil
}

// splitStatements breaks a script on semicolons, dropping -- line comments
// and blank statements.
func splitStatements(script string) []string {
	var statements []string

	for _, raw := range strings.Split(script, ";") {
		var kept []string
		for _, line := range strings.Split(raw, "\n") {
			if idx := strings.Index(line, "--"); idx >= 0 {
				line = line[:idx]
			}
			if line = strings.TrimSpace(line); line != "" {
				kept = append(kept, line)
			}
		}
		if len(kept) > 0 {
			statements = append(statements, strings.Join(kept, "\n"))
		}
	}

	return statements
}
