package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/btree"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/pager"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/testdb"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
)

var applesDB = []string{
	"CREATE TABLE apples (id integer primary key autoincrement, name text, color text)",
	"CREATE TABLE oranges (id integer primary key autoincrement, name text, description text)",
	"INSERT INTO apples (name, color) VALUES ('Granny Smith', 'Light Green')",
	"INSERT INTO apples (name, color) VALUES ('Fuji', 'Red')",
	"INSERT INTO apples (name, color) VALUES ('Honeycrisp', 'Blush Red')",
	"INSERT INTO apples (name, color) VALUES ('Golden Delicious', 'Yellow')",
	"INSERT INTO oranges (name, description) VALUES ('Mandarin', 'great for snacking')",
}

func openEngine(t *testing.T, path string) *Engine {
	t.Helper()
	p, err := pager.Open(path, pager.Options{CachePages: 16})
	if err != nil {
		t.Fatalf("pager.Open() error = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return New(p, utf.Encoding(p.Header().TextEncoding))
}

func execute(t *testing.T, e *Engine, query string) *Result {
	t.Helper()
	res, err := e.Execute(context.Background(), query)
	if err != nil {
		t.Fatalf("Execute(%q) error = %v", query, err)
	}
	return res
}

func TestExecute_Select(t *testing.T) {
	e := openEngine(t, testdb.Create(t, applesDB...))

	tests := []struct {
		name     string
		query    string
		wantCols []string
		wantRows [][]string
	}{
		{
			name:     "single column",
			query:    "SELECT name FROM apples",
			wantCols: []string{"name"},
			wantRows: [][]string{{"Granny Smith"}, {"Fuji"}, {"Honeycrisp"}, {"Golden Delicious"}},
		},
		{
			name:     "column order follows request",
			query:    "SELECT color, name FROM apples",
			wantCols: []string{"color", "name"},
			wantRows: [][]string{
				{"Light Green", "Granny Smith"},
				{"Red", "Fuji"},
				{"Blush Red", "Honeycrisp"},
				{"Yellow", "Golden Delicious"},
			},
		},
		{
			name:     "rowid alias",
			query:    "SELECT id, name FROM oranges",
			wantCols: []string{"id", "name"},
			wantRows: [][]string{{"1", "Mandarin"}},
		},
		{
			name:     "star",
			query:    "SELECT * FROM oranges",
			wantCols: []string{"id", "name", "description"},
			wantRows: [][]string{{"1", "Mandarin", "great for snacking"}},
		},
		{
			name:     "case-insensitive keywords and columns",
			query:    "select NAME from apples where COLOR = 'Yellow';",
			wantCols: []string{"name"},
			wantRows: [][]string{{"Golden Delicious"}},
		},
		{
			name:     "quoted column",
			query:    `SELECT "name" FROM oranges`,
			wantCols: []string{"name"},
			wantRows: [][]string{{"Mandarin"}},
		},
		{
			name:     "where equals",
			query:    "SELECT name, color FROM apples WHERE color = 'Red'",
			wantCols: []string{"name", "color"},
			wantRows: [][]string{{"Fuji", "Red"}},
		},
		{
			name:     "where or",
			query:    "SELECT name FROM apples WHERE color = 'Red' OR color = 'Yellow'",
			wantCols: []string{"name"},
			wantRows: [][]string{{"Fuji"}, {"Golden Delicious"}},
		},
		{
			name:     "where and",
			query:    "SELECT name FROM apples WHERE color = 'Red' AND name = 'Fuji'",
			wantCols: []string{"name"},
			wantRows: [][]string{{"Fuji"}},
		},
		{
			name:     "where on rowid alias",
			query:    "SELECT name FROM apples WHERE id = 3",
			wantCols: []string{"name"},
			wantRows: [][]string{{"Honeycrisp"}},
		},
		{
			name:     "where not equal",
			query:    "SELECT name FROM apples WHERE color != 'Red' AND color <> 'Yellow'",
			wantCols: []string{"name"},
			wantRows: [][]string{{"Granny Smith"}, {"Honeycrisp"}},
		},
		{
			name:     "no match",
			query:    "SELECT name FROM apples WHERE color = 'Purple'",
			wantCols: []string{"name"},
			wantRows: nil,
		},
		{
			name:     "trailing clauses are ignored",
			query:    "SELECT name FROM apples ORDER BY name DESC LIMIT 1 OFFSET 2",
			wantCols: []string{"name"},
			wantRows: [][]string{{"Granny Smith"}, {"Fuji"}, {"Honeycrisp"}, {"Golden Delicious"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, e, tt.query)
			if !reflect.DeepEqual(res.Columns, tt.wantCols) {
				t.Errorf("Columns = %v, want %v", res.Columns, tt.wantCols)
			}
			if !reflect.DeepEqual(res.Rows, tt.wantRows) {
				t.Errorf("Rows = %v, want %v", res.Rows, tt.wantRows)
			}
		})
	}
}

func TestExecute_Count(t *testing.T) {
	e := openEngine(t, testdb.Create(t, applesDB...))

	tests := []struct {
		query string
		want  string
	}{
		{"SELECT COUNT(*) FROM apples", "4"},
		{"select count( * ) from oranges", "1"},
		// WHERE is not applied to COUNT(*)
		{"SELECT COUNT(*) FROM apples WHERE color = 'Red'", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := execute(t, e, tt.query)
			if len(res.Rows) != 1 || len(res.Rows[0]) != 1 {
				t.Fatalf("Rows = %v, want one value", res.Rows)
			}
			if got := res.Rows[0][0]; got != tt.want {
				t.Errorf("COUNT(*) = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	e := openEngine(t, testdb.Create(t, append(applesDB,
		"CREATE TABLE kv (k text primary key, v text) WITHOUT ROWID",
		"CREATE TABLE empty (a text)",
	)...))

	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"unknown table", "SELECT name FROM pears", liteerrors.ErrTableNotFound},
		{"table name is case-sensitive", "SELECT name FROM Apples", liteerrors.ErrTableNotFound},
		{"unknown column", "SELECT flavor FROM apples", liteerrors.ErrColumnNotFound},
		{"unknown where column", "SELECT name FROM apples WHERE flavor = 'sweet'", liteerrors.ErrColumnNotFound},
		{"unknown where column on empty table", "SELECT a FROM empty WHERE b = 1", liteerrors.ErrColumnNotFound},
		{"bad where", "SELECT name FROM apples WHERE color", liteerrors.ErrInvalidQuery},
		{"not a select", "DELETE FROM apples", liteerrors.ErrUnsupportedCommand},
		{"missing from", "SELECT name", liteerrors.ErrInvalidQuery},
		{"without rowid", "SELECT k FROM kv", liteerrors.ErrUnsupportedFeature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Execute(context.Background(), tt.query)
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute(%q) error = %v, want %v", tt.query, err, tt.want)
			}
		})
	}
}

func TestExecute_Values(t *testing.T) {
	e := openEngine(t, testdb.Create(t,
		"CREATE TABLE v (i integer, r real, t text, b blob, n text)",
		"INSERT INTO v VALUES (-7, 3.5, 'x', X'414243', NULL)",
		"INSERT INTO v VALUES (1099511627776, -0.25, '', X'', 'y')",
	))

	res := execute(t, e, "SELECT i, r, t, b, n FROM v")
	want := [][]string{
		{"-7", "3.5", "x", "ABC", ""},
		{"1099511627776", "-0.25", "", "", "y"},
	}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %q, want %q", res.Rows, want)
	}
}

func TestExecute_AddedColumn(t *testing.T) {
	e := openEngine(t, testdb.Create(t,
		"CREATE TABLE t (a text)",
		"INSERT INTO t VALUES ('old')",
		"ALTER TABLE t ADD COLUMN b text",
		"INSERT INTO t VALUES ('new', 'b')",
	))

	res := execute(t, e, "SELECT a, b FROM t")
	want := [][]string{{"old", ""}, {"new", "b"}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %q, want %q", res.Rows, want)
	}
}

func TestExecute_MultiLevelTree(t *testing.T) {
	const n = 500
	stmts := []string{"CREATE TABLE items (id integer primary key, label text)"}
	stmts = append(stmts, testdb.Rows("items", n, func(i int) string {
		return fmt.Sprintf("%d, 'item-%04d'", i, i)
	})...)
	e := openEngine(t, testdb.CreateWith(t, testdb.Options{PageSize: 512}, stmts...))

	res := execute(t, e, "SELECT id, label FROM items")
	if len(res.Rows) != n {
		t.Fatalf("got %d rows, want %d", len(res.Rows), n)
	}
	for i, row := range res.Rows {
		if want := fmt.Sprint(i + 1); row[0] != want {
			t.Fatalf("row %d id = %s, want %s", i, row[0], want)
		}
	}

	count := execute(t, e, "SELECT COUNT(*) FROM items")
	if got := count.Rows[0][0]; got != fmt.Sprint(n) {
		t.Errorf("COUNT(*) = %s, want %d", got, n)
	}

	filtered := execute(t, e, "SELECT label FROM items WHERE label = 'item-0321'")
	if len(filtered.Rows) != 1 || filtered.Rows[0][0] != "item-0321" {
		t.Errorf("filtered Rows = %v", filtered.Rows)
	}
}

func TestExecute_Overflow(t *testing.T) {
	big := strings.Repeat("x", 5000)
	e := openEngine(t, testdb.Create(t,
		"CREATE TABLE docs (body text)",
		fmt.Sprintf("INSERT INTO docs VALUES ('%s')", big),
	))

	_, err := e.Execute(context.Background(), "SELECT body FROM docs")
	if !errors.Is(err, liteerrors.ErrUnsupportedFeature) {
		t.Errorf("Execute() error = %v, want ErrUnsupportedFeature", err)
	}

	// Counting reads page headers only.
	res := execute(t, e, "SELECT COUNT(*) FROM docs")
	if res.Rows[0][0] != "1" {
		t.Errorf("COUNT(*) = %s, want 1", res.Rows[0][0])
	}
}

func TestExecute_UTF16(t *testing.T) {
	for _, enc := range []string{"UTF-16le", "UTF-16be"} {
		t.Run(enc, func(t *testing.T) {
			e := openEngine(t, testdb.CreateWith(t, testdb.Options{Encoding: enc},
				"CREATE TABLE words (w text)",
				"INSERT INTO words VALUES ('héllo')",
				"INSERT INTO words VALUES ('日本')",
			))

			res := execute(t, e, "SELECT w FROM words WHERE w = '日本'")
			if len(res.Rows) != 1 || res.Rows[0][0] != "日本" {
				t.Errorf("Rows = %v, want [[日本]]", res.Rows)
			}
		})
	}
}

func TestExecute_Canceled(t *testing.T) {
	e := openEngine(t, testdb.Create(t, applesDB...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Execute(ctx, "SELECT name FROM apples")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestRows_Stop(t *testing.T) {
	e := openEngine(t, testdb.Create(t, applesDB...))
	table, err := e.Table("apples")
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	var seen []int64
	err = e.Rows(context.Background(), table, func(r *Row) error {
		seen = append(seen, r.RowID)
		if len(seen) == 2 {
			return btree.Stop
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if !reflect.DeepEqual(seen, []int64{1, 2}) {
		t.Errorf("visited rowids = %v, want [1 2]", seen)
	}
}

func TestTable(t *testing.T) {
	e := openEngine(t, testdb.Create(t, applesDB...))

	table, err := e.Table("apples")
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if table.Name() != "apples" || table.Entry.RootPage < 2 {
		t.Errorf("Table() entry = %+v", table.Entry)
	}
	if got := table.Columns.Names(); !reflect.DeepEqual(got, []string{"id", "name", "color"}) {
		t.Errorf("Columns = %v", got)
	}
	if !table.Columns.RowIDAlias || table.Columns.PrimaryKey != 0 {
		t.Errorf("rowid alias not detected: %+v", table.Columns)
	}
}

func TestExecute_TwoRowTable(t *testing.T) {
	e := openEngine(t, testdb.Create(t,
		"CREATE TABLE t (id integer primary key, name text)",
		"INSERT INTO t VALUES (1, 'a')",
		"INSERT INTO t VALUES (2, 'b')",
	))

	tests := []struct {
		query string
		want  [][]string
	}{
		{"SELECT name FROM t", [][]string{{"a"}, {"b"}}},
		{"SELECT COUNT(*) FROM t", [][]string{{"2"}}},
		{"SELECT id FROM t WHERE name = 'b'", [][]string{{"2"}}},
		{"SELECT id FROM t WHERE id > 1 AND name = 'b'", [][]string{{"2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := execute(t, e, tt.query)
			if !reflect.DeepEqual(res.Rows, tt.want) {
				t.Errorf("Rows = %v, want %v", res.Rows, tt.want)
			}
		})
	}

	_, err := e.Execute(context.Background(), "SELECT id FROM t WHERE missing = 'b'")
	if !errors.Is(err, liteerrors.ErrColumnNotFound) {
		t.Errorf("Execute() error = %v, want ErrColumnNotFound", err)
	}
}

func TestExecute_KeywordsInLiterals(t *testing.T) {
	e := openEngine(t, testdb.Create(t,
		"CREATE TABLE spices (id integer primary key, name text)",
		"INSERT INTO spices (name) VALUES ('salt and pepper')",
		"INSERT INTO spices (name) VALUES ('this or that')",
		"INSERT INTO spices (name) VALUES ('CUMIN AND CORIANDER')",
		"INSERT INTO spices (name) VALUES ('salt')",
	))

	tests := []struct {
		query string
		want  [][]string
	}{
		{"SELECT id FROM spices WHERE name = 'salt and pepper'", [][]string{{"1"}}},
		{"SELECT id FROM spices WHERE name = 'this or that'", [][]string{{"2"}}},
		{"SELECT id FROM spices WHERE name = 'CUMIN AND CORIANDER'", [][]string{{"3"}}},
		{"SELECT id FROM spices WHERE name = 'salt' OR name = 'salt and pepper'", [][]string{{"1"}, {"4"}}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := execute(t, e, tt.query)
			if !reflect.DeepEqual(res.Rows, tt.want) {
				t.Errorf("Rows = %v, want %v", res.Rows, tt.want)
			}
		})
	}
}
