package sqlitemigrate

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyMigrationsRecordsApplied(t *testing.T) {
	db := openInMemoryDB(t)

	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}

	if err := ApplyMigrations(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected 1 migration row, got %d", rows)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected applied table to exist")
	}
}

func TestApplyMigrationsSkipsAlreadyApplied(t *testing.T) {
	db := openInMemoryDB(t)

	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);"),
		},
	}
	for i := 0; i < 2; i++ {
		if err := ApplyMigrations(context.Background(), db, migrations, ""); err != nil {
			t.Fatalf("apply migrations pass %d: %v", i, err)
		}
	}

	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected single migration row after replay, got %d", rows)
	}
}

func TestApplyMigrationsDoesNotRecordFailedMigration(t *testing.T) {
	db := openInMemoryDB(t)

	bad := []Migration{{Name: "001_bad.sql", Up: "CREAT table things(id INT);"}}
	if err := Apply(context.Background(), db, bad); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 0 {
		t.Fatalf("expected failed migration to stay unrecorded, got %d rows", rows)
	}

	good := []Migration{{Name: "001_bad.sql", Up: "CREATE TABLE things(id INTEGER PRIMARY KEY);"}}
	if err := Apply(context.Background(), db, good); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("expected fixed migration to be recorded, got %d rows", rows)
	}
}

func TestLoadRespectsMigrationRoot(t *testing.T) {
	migrations := fstest.MapFS{
		"cache/002_index.sql": &fstest.MapFile{Data: []byte("CREATE INDEX idx ON rows(id);")},
		"cache/001_rows.sql":  &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE rows(id TEXT PRIMARY KEY);")},
		"other/001_skip.sql":  &fstest.MapFile{Data: []byte("CREATE TABLE skip(id TEXT);")},
	}

	loaded, err := Load(migrations, "cache")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(loaded))
	}
	if loaded[0].Name != "cache/001_rows.sql" || loaded[1].Name != "cache/002_index.sql" {
		t.Fatalf("unexpected order: %s, %s", loaded[0].Name, loaded[1].Name)
	}

	db := openInMemoryDB(t)
	if err := Apply(context.Background(), db, loaded); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if key := queryString(t, db, "SELECT name FROM schema_migrations ORDER BY name LIMIT 1"); key != "cache/001_rows.sql" {
		t.Fatalf("expected migration key with root path, got %q", key)
	}
}

func TestRevert(t *testing.T) {
	db := openInMemoryDB(t)
	ctx := context.Background()

	up, down := Split("-- +migrate Up\nCREATE TABLE items(id TEXT);\n-- +migrate Down\nDROP TABLE items;\n")
	m := Migration{Name: "001_items.sql", Up: up, Down: down}

	if err := Revert(ctx, db, m); err == nil {
		t.Fatal("expected revert before the migration table exists to fail")
	}
	if err := Apply(ctx, db, []Migration{m}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := Revert(ctx, db, m); err != nil {
		t.Fatalf("revert: %v", err)
	}
	if tableExists(t, db, "items") {
		t.Fatal("expected table to be dropped")
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 0 {
		t.Fatalf("expected migration to be forgotten, got %d rows", rows)
	}
	if err := Revert(ctx, db, m); err != nil {
		t.Fatalf("second revert should be a no-op: %v", err)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantUp   string
		wantDown string
	}{
		{"no markers", "CREATE TABLE a(id);", "CREATE TABLE a(id);", ""},
		{"up only", "-- +migrate Up\nCREATE TABLE a(id);", "CREATE TABLE a(id);", ""},
		{"both", "-- +migrate Up\nCREATE TABLE a(id);\n-- +migrate Down\nDROP TABLE a;", "CREATE TABLE a(id);", "DROP TABLE a;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := Split(tt.content)
			if strings.TrimSpace(up) != tt.wantUp || strings.TrimSpace(down) != tt.wantDown {
				t.Fatalf("Split() = %q, %q", up, down)
			}
		})
	}
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query int value: %v", err)
	}
	return value
}

func queryString(t *testing.T, db *sql.DB, query string) string {
	t.Helper()
	var value string
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query string value: %v", err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
