// Package engine executes SELECT statements against the table b-trees of an
// open database. It ties together the schema catalog, the statement parser,
// the filter evaluator and the b-tree navigator.
package engine

import (
	"context"
	"strconv"
	"strings"
	"time"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/btree"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/expr"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/parser"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/schema"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
	"github.com/FocuswithJustin/litequery/internal/logging"
)

// Engine runs queries over one database. It holds no state between calls;
// every query re-reads the schema from page 1.
type Engine struct {
	tree    *btree.Tree
	catalog *schema.Catalog
	enc     utf.Encoding
}

// New creates an engine reading pages from src. enc is the database text
// encoding from the file header.
func New(src btree.PageSource, enc utf.Encoding) *Engine {
	tree := btree.New(src)
	return &Engine{
		tree:    tree,
		catalog: schema.NewCatalog(tree, enc),
		enc:     enc,
	}
}

// Catalog returns the schema catalog of the database.
func (e *Engine) Catalog() *schema.Catalog {
	return e.catalog
}

// Table is a resolved table: its schema entry and parsed column list.
type Table struct {
	Entry   schema.Entry
	Columns schema.TableColumns
}

// Name returns the table name as stored in the schema.
func (t *Table) Name() string {
	return t.Entry.TableName
}

// Table looks up a table by exact name and parses its DDL.
func (e *Engine) Table(name string) (*Table, error) {
	entry, ok, err := e.catalog.FindTable(name)
	if err != nil {
		return nil, liteerrors.Wrap(err, "failed to read schema")
	}
	if !ok {
		return nil, liteerrors.NewTableNotFound(name)
	}

	cols, err := schema.ParseTableColumns(entry.SQL)
	if err != nil {
		return nil, liteerrors.Wrapf(err, "table %s", name)
	}
	if cols.WithoutRowID {
		return nil, liteerrors.NewUnsupported("WITHOUT ROWID table", name)
	}
	return &Table{Entry: entry, Columns: cols}, nil
}

// Execute runs a SELECT statement and returns all result rows.
func (e *Engine) Execute(ctx context.Context, query string) (*Result, error) {
	start := time.Now()
	log := logging.LoggerFromContext(ctx)

	stmt, err := parser.ParseSelect(query)
	if err != nil {
		return nil, err
	}
	log.Debug("statement parsed",
		"table", stmt.Table,
		"columns", stmt.Columns,
		"where", stmt.Where,
		"count", stmt.IsCount(),
	)
	if stmt.OrderBy != "" || stmt.GroupBy != "" || stmt.Limit != "" || stmt.Offset != "" {
		log.Debug("ignoring ORDER BY, GROUP BY, LIMIT and OFFSET clauses")
	}

	table, err := e.Table(stmt.Table)
	if err != nil {
		return nil, err
	}

	var result *Result
	if stmt.IsCount() {
		result, err = e.count(ctx, table, stmt)
	} else {
		result, err = e.project(ctx, table, stmt)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("query executed",
		"table", table.Name(),
		"rows", result.RowCount(),
		"duration", time.Since(start),
	)
	return result, nil
}

// count answers COUNT(*) from the leaf cell counts. The WHERE clause is not
// applied.
func (e *Engine) count(ctx context.Context, table *Table, stmt *parser.SelectStmt) (*Result, error) {
	if stmt.Where != "" {
		logging.LoggerFromContext(ctx).Debug("WHERE clause not applied to COUNT(*)", "where", stmt.Where)
	}
	n, err := e.tree.CountRows(table.Entry.RootPage)
	if err != nil {
		return nil, liteerrors.Wrapf(err, "failed to count rows of %s", table.Name())
	}
	return &Result{
		Columns: []string{parser.CountStar},
		Rows:    [][]string{{strconv.Itoa(n)}},
	}, nil
}

func (e *Engine) project(ctx context.Context, table *Table, stmt *parser.SelectStmt) (*Result, error) {
	indices, names, err := resolveColumns(table.Columns, stmt.Columns)
	if err != nil {
		return nil, err
	}

	var filter *expr.Node
	if stmt.Where != "" {
		filter, err = expr.Parse(stmt.Where)
		if err != nil {
			return nil, err
		}
		for _, c := range filter.Columns() {
			if table.Columns.Index(c) < 0 {
				return nil, liteerrors.NewColumnNotFound(c)
			}
		}
		logging.LoggerFromContext(ctx).Debug("filter parsed", "filter", filter.String())
	}

	result := &Result{Columns: names}
	err = e.Rows(ctx, table, func(r *Row) error {
		if filter != nil {
			ok, err := filter.Eval(r)
			if err != nil || !ok {
				return err
			}
		}
		out := make([]string, len(indices))
		for i, idx := range indices {
			s, err := r.Text(idx)
			if err != nil {
				return err
			}
			out[i] = s
		}
		result.Rows = append(result.Rows, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveColumns maps requested column names to positions in the table,
// expanding "*". Names come back in the schema's spelling.
func resolveColumns(cols schema.TableColumns, requested []string) ([]int, []string, error) {
	var indices []int
	var names []string
	for _, req := range requested {
		if req == "*" {
			for i, c := range cols.Columns {
				indices = append(indices, i)
				names = append(names, c.Name)
			}
			continue
		}
		name := req
		if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
			name = strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
		}
		i := cols.Index(name)
		if i < 0 {
			return nil, nil, liteerrors.NewColumnNotFound(req)
		}
		indices = append(indices, i)
		names = append(names, cols.Columns[i].Name)
	}
	return indices, names, nil
}
