package engine

import (
	"context"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/btree"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/record"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
)

// Result represents the result of executing a SELECT statement.
type Result struct {
	// Columns contains the names of result columns
	Columns []string

	// Rows contains all result rows, each value rendered as text
	Rows [][]string
}

// RowCount returns the number of rows in the result.
func (r *Result) RowCount() int {
	return len(r.Rows)
}

// ColumnCount returns the number of columns in the result.
func (r *Result) ColumnCount() int {
	return len(r.Columns)
}

// Row is one materialized table row. Values line up with the table's
// columns; the rowid alias column holds the cell's rowid.
type Row struct {
	RowID  int64
	Values []record.Value

	table *Table
	enc   utf.Encoding
}

// Text renders column i as text.
func (r *Row) Text(i int) (string, error) {
	return r.Values[i].Text(r.enc)
}

// Lookup returns the text of the named column, matched case-insensitively.
func (r *Row) Lookup(column string) (string, error) {
	i := r.table.Columns.Index(column)
	if i < 0 {
		return "", liteerrors.NewColumnNotFound(column)
	}
	return r.Text(i)
}

// Rows calls fn for every row of table in rowid order. Returning
// btree.Stop from fn ends the scan without error.
func (e *Engine) Rows(ctx context.Context, table *Table, fn func(*Row) error) error {
	cols := table.Columns
	return e.tree.Visit(table.Entry.RootPage, func(c btree.Cell) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		values := make([]record.Value, len(cols.Columns))
		for i := range values {
			if cols.RowIDAlias && i == cols.PrimaryKey {
				values[i] = record.IntValue(c.RowID)
				continue
			}
			values[i] = c.Record.Column(i)
		}
		return fn(&Row{RowID: c.RowID, Values: values, table: table, enc: e.enc})
	})
}
