package driver

import (
	"context"
	"database/sql/driver"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/engine"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/pager"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/parser"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
)

// Conn implements database/sql/driver.Conn over one open file. database/sql
// never uses a Conn from two goroutines at once.
type Conn struct {
	pager  *pager.Pager
	engine *engine.Engine
	closed bool
}

func openConn(path string, opts pager.Options) (*Conn, error) {
	p, err := pager.Open(path, opts)
	if err != nil {
		return nil, err
	}
	return &Conn{
		pager:  p,
		engine: engine.New(p, utf.Encoding(p.Header().TextEncoding)),
	}, nil
}

// Prepare prepares a SQL statement.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

// PrepareContext checks that query is a SELECT the engine can run.
func (c *Conn) PrepareContext(_ context.Context, query string) (driver.Stmt, error) {
	if c.closed {
		return nil, driver.ErrBadConn
	}
	if _, err := parser.ParseSelect(query); err != nil {
		return nil, err
	}
	return &Stmt{conn: c, query: query}, nil
}

// Close closes the database file.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.pager.Close()
}

// Begin always fails: the database is read-only.
func (c *Conn) Begin() (driver.Tx, error) {
	return nil, liteerrors.NewUnsupported("transactions", "the database is read-only")
}

// Ping reports whether the connection is still open.
func (c *Conn) Ping(context.Context) error {
	if c.closed {
		return driver.ErrBadConn
	}
	return nil
}
