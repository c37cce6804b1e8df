// Package testdb writes database files with a real SQLite engine so tests
// can check the reader against files it did not produce itself.
//
// The pure Go modernc.org/sqlite driver is used by default; build with the
// cgo_sqlite tag to use mattn/go-sqlite3 instead.
package testdb

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
)

// Options controls how the database file is created.
type Options struct {
	// PageSize sets PRAGMA page_size; 0 keeps the engine default.
	PageSize int
	// Encoding sets PRAGMA encoding, e.g. "UTF-16le"; empty keeps UTF-8.
	Encoding string
	// Name is the file name inside the test's temp directory.
	Name string
}

// DriverType returns "purego" or "cgo".
func DriverType() string {
	return driverType
}

// Create runs stmts against a new database file and returns its path.
func Create(t testing.TB, stmts ...string) string {
	t.Helper()
	return CreateWith(t, Options{}, stmts...)
}

// CreateWith is Create with explicit options.
func CreateWith(t testing.TB, opts Options, stmts ...string) string {
	t.Helper()

	name := opts.Name
	if name == "" {
		name = "test.db"
	}
	path := filepath.Join(t.TempDir(), name)

	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("failed to open %s database: %v", driverType, err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	var setup []string
	if opts.PageSize > 0 {
		setup = append(setup, fmt.Sprintf("PRAGMA page_size = %d", opts.PageSize))
	}
	if opts.Encoding != "" {
		setup = append(setup, fmt.Sprintf("PRAGMA encoding = '%s'", opts.Encoding))
	}

	for _, stmt := range append(setup, stmts...) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			t.Fatalf("failed to execute %q: %v", stmt, err)
		}
	}

	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}
	return path
}

// Rows returns n INSERT statements for table, each built by row(i) for i in [1, n].
func Rows(table string, n int, row func(i int) string) []string {
	stmts := make([]string, n)
	for i := range stmts {
		stmts[i] = fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, row(i+1))
	}
	return stmts
}

// Open opens the database at path with the fixture driver, so tests can
// check answers against a real SQLite engine.
func Open(t testing.TB, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("failed to open %s database: %v", driverType, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
