package driver

import (
	"context"
	"database/sql/driver"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// Stmt is a prepared SELECT. Placeholders are not supported.
type Stmt struct {
	conn  *Conn
	query string
}

// Close is a no-op; a Stmt holds no resources.
func (s *Stmt) Close() error {
	return nil
}

// NumInput returns -1 so that arguments reach QueryContext, which rejects
// them.
func (s *Stmt) NumInput() int {
	return -1
}

// Exec always fails: the database is read-only.
func (s *Stmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, liteerrors.NewUnsupported("writes", "the database is read-only")
}

// Query runs the statement.
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	named := make([]driver.NamedValue, len(args))
	for i, v := range args {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return s.QueryContext(context.Background(), named)
}

// QueryContext runs the statement and buffers its result.
func (s *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if s.conn.closed {
		return nil, driver.ErrBadConn
	}
	if len(args) > 0 {
		return nil, liteerrors.NewUnsupported("query parameters", "")
	}
	res, err := s.conn.engine.Execute(ctx, s.query)
	if err != nil {
		return nil, err
	}
	return &Rows{columns: res.Columns, rows: res.Rows}, nil
}
