// Package driver exposes the query engine as a read-only database/sql
// driver named "litequery". The data source name is a file path, optionally
// followed by "?cache_pages=N".
package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/pager"
)

// Name is the name the driver is registered under.
const Name = "litequery"

// Driver implements database/sql/driver.Driver.
type Driver struct{}

func init() {
	sql.Register(Name, &Driver{})
}

// Open opens a connection to the database file named by dsn.
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	c, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return c.Connect(context.Background())
}

// OpenConnector parses dsn once for all connections of a sql.DB.
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	path, opts, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}
	return &connector{driver: d, path: path, opts: opts}, nil
}

type connector struct {
	driver *Driver
	path   string
	opts   pager.Options
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	return openConn(c.path, c.opts)
}

func (c *connector) Driver() driver.Driver {
	return c.driver
}

func parseDSN(dsn string) (string, pager.Options, error) {
	opts := pager.Options{CachePages: pager.DefaultCachePages}
	path, rawQuery, _ := strings.Cut(dsn, "?")
	if path == "" || path == ":memory:" {
		return "", opts, liteerrors.NewUnsupported("data source", fmt.Sprintf("%q is not a database file", dsn))
	}

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", opts, liteerrors.NewInvalidQuery("data source name", dsn, err.Error())
	}
	for key, vals := range params {
		switch key {
		case "cache_pages":
			n, err := strconv.Atoi(vals[len(vals)-1])
			if err != nil || n < 0 {
				return "", opts, liteerrors.NewInvalidQuery("data source name", dsn, "cache_pages must be a non-negative integer")
			}
			opts.CachePages = n
		default:
			return "", opts, liteerrors.NewInvalidQuery("data source name", dsn, fmt.Sprintf("unknown parameter %q", key))
		}
	}
	return path, opts, nil
}
