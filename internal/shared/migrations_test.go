package shared

import (
	"strings"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("RunMigrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		for _, table := range []string{"journal_entries", "mood_entries", "journal_entries_sequence", "mood_entries_sequence"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			if err != nil {
				t.Errorf("expected table %s to exist: %v", table, err)
			}
		}

		var version int
		if err := db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
			t.Fatalf("failed to read schema_migrations: %v", err)
		}
		if version != 0 {
			t.Errorf("expected migration version 0, got %d", version)
		}
	})

	t.Run("RunMigrations Is Idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to count migrations: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 applied migration, got %d", count)
		}
	})

	t.Run("Script Splitting Drops Comments And Blanks", func(t *testing.T) {
		script := `
			-- cache tables
			CREATE TABLE a (id INTEGER); -- trailing note

			CREATE TABLE b (
				id INTEGER -- pk
			);
			;
		`
		statements := splitStatements(script)
		if len(statements) != 2 {
			t.Fatalf("expected 2 statements, got %d: %v", len(statements), statements)
		}
		for _, stmt := range statements {
			if strings.Contains(stmt, "--") {
				t.Errorf("expected comments stripped, got %q", stmt)
			}
		}
		if statements[0] != "CREATE TABLE a (id INTEGER)" {
			t.Errorf("unexpected first statement %q", statements[0])
		}
	})

	t.Run("RollbackMigration", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='journal_entries'").Scan(&name)
		if err == nil {
			t.Error("expected journal_entries table removed after rollback")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error rolling back with no applied migrations")
		}
	})
}
