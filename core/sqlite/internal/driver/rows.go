package driver

import (
	"database/sql/driver"
	"io"
)

// Rows iterates over a buffered result. Every value is a string.
type Rows struct {
	columns []string
	rows    [][]string
	next    int
}

// Columns returns the column names.
func (r *Rows) Columns() []string {
	return r.columns
}

// Close releases the buffered rows.
func (r *Rows) Close() error {
	r.rows = nil
	return nil
}

// Next populates dest with the next row.
func (r *Rows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	for i, v := range r.rows[r.next] {
		dest[i] = v
	}
	r.next++
	return nil
}
