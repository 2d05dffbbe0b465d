package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "storage.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "storage.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "storage.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
		{
			name: "fails when directory is a file",
			setup: func(t *testing.T) string {
				blocker := filepath.Join(t.TempDir(), "file")
				if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
					t.Fatalf("setup: %v", err)
				}
				return filepath.Join(blocker, "storage.db")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestMigrations(t *testing.T) {
	d := openTestDB(t)

	want := []string{"origin", "key", "value", "updated_at"}
	cols := tableColumns(t, d, "local_storage")
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d: %v", len(cols), len(want), cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, cols[i], want[i])
		}
	}
}

func TestPrimaryKey(t *testing.T) {
	d := openTestDB(t)

	insert := `INSERT INTO local_storage (origin, key, value) VALUES (?, ?, ?)`
	if _, err := d.Exec(insert, "http://a", "loggedIn", "true"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := d.Exec(insert, "http://b", "loggedIn", "true"); err != nil {
		t.Fatalf("same key on another origin: %v", err)
	}
	if _, err := d.Exec(insert, "http://a", "loggedIn", "false"); err == nil {
		t.Error("expected duplicate key error")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")

	// Open twice; migrations should not fail on second run
	d1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second open (idempotency): %v", err)
	}
	if err := d2.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "storage.db" {
		t.Errorf("expected filename storage.db, got %s", filepath.Base(p))
	}

	dir := filepath.Base(filepath.Dir(p))
	if dir != "delc" {
		t.Errorf("expected directory delc, got %s", dir)
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

// tableColumns returns column names for a table using PRAGMA table_info.
func tableColumns(t *testing.T, d *sql.DB, table string) []string {
	t.Helper()
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("pragma table_info(%s): %v", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}
