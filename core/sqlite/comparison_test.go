package sqlite

// These tests run the same SELECT through this package and through a real
// SQLite engine (modernc.org/sqlite, or mattn/go-sqlite3 with -tags
// cgo_sqlite) and compare the text of every value.

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"testing"

	"github.com/FocuswithJustin/litequery/core/sqlite/internal/testdb"
)

// engineRows runs query on the fixture driver and renders every value the
// way Query does for the column types used below.
func engineRows(t *testing.T, db *sql.DB, query string) [][]string {
	t.Helper()
	rows, err := db.Query(query)
	if err != nil {
		t.Fatalf("%s query failed: %v", testdb.DriverType(), err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		t.Fatalf("Columns() failed: %v", err)
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			t.Fatalf("Scan() failed: %v", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows.Err() = %v", err)
	}
	return out
}

func TestComparison(t *testing.T) {
	stmts := []string{
		"CREATE TABLE people (id integer primary key, name text, city text, age integer)",
		"CREATE TABLE notes (title text, body text)",
	}
	cities := []string{"Lisbon", "Oslo", "Quito", "Hanoi"}
	stmts = append(stmts, testdb.Rows("people", 300, func(i int) string {
		return fmt.Sprintf("%d, 'person %d', '%s', %d", i, i, cities[i%len(cities)], 18+i%60)
	})...)
	stmts = append(stmts,
		"INSERT INTO notes VALUES ('first', 'hello')",
		"INSERT INTO notes VALUES ('second', NULL)",
		"INSERT INTO notes VALUES (NULL, 'orphan')",
	)
	path := testdb.CreateWith(t, testdb.Options{PageSize: 1024}, stmts...)

	ref := testdb.Open(t, path)
	db := openDB(t, path)

	queries := []string{
		"SELECT id, name FROM people",
		"SELECT name, city FROM people WHERE city = 'Oslo'",
		"SELECT name FROM people WHERE city = 'Quito' AND age = 30",
		"SELECT id FROM people WHERE city = 'Lisbon' OR city = 'Hanoi'",
		"SELECT name FROM people WHERE name > 'person 9'",
		"SELECT city, age, name FROM people WHERE id = 150",
		"SELECT title, body FROM notes",
		"SELECT * FROM notes WHERE title = 'first'",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			res, err := db.Query(context.Background(), q)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			want := engineRows(t, ref, q)
			if !reflect.DeepEqual(res.Rows, want) {
				t.Errorf("rows differ from %s engine:\n  got:  %v\n  want: %v", testdb.DriverType(), res.Rows, want)
			}
		})
	}

	var n int
	if err := ref.QueryRow("SELECT COUNT(*) FROM people").Scan(&n); err != nil {
		t.Fatal(err)
	}
	res, err := db.Query(context.Background(), "SELECT COUNT(*) FROM people")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Rows[0][0] != fmt.Sprint(n) {
		t.Errorf("COUNT(*) = %s, want %d", res.Rows[0][0], n)
	}
}
