// Package sqlite reads database files in the SQLite 3 format and answers
// introspection commands and simple SELECT queries against them. No SQLite
// engine is involved: pages are decoded directly from the file.
//
// A DB wraps one open file. Files compressed with xz or gzip are
// decompressed into memory when opened. The same queries are available
// through database/sql under DriverName.
package sqlite

import (
	"context"
	"encoding/hex"
	"io"
	"strings"

	"github.com/zeebo/blake3"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/driver"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/engine"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/format"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/pager"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/schema"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
	"github.com/FocuswithJustin/litequery/internal/logging"
)

// DriverName is the database/sql driver name for read-only access through
// sql.Open, e.g. sql.Open(DriverName, "sample.db?cache_pages=64").
const DriverName = driver.Name

// DefaultCachePages is the page cache size used by DefaultOptions.
const DefaultCachePages = pager.DefaultCachePages

// Options configures Open.
type Options struct {
	// CachePages is the number of pages kept in memory. Zero disables the cache.
	CachePages int
}

// DefaultOptions returns the options used by the command-line tool.
func DefaultOptions() Options {
	return Options{CachePages: DefaultCachePages}
}

// Result is the outcome of a query: column names and rows of text values.
type Result = engine.Result

// Entry is one row of the schema table.
type Entry = schema.Entry

// Info describes a database file.
type Info struct {
	PageSize   int
	TableCount int    // rows in the schema table, including indexes, views and triggers
	PageCount  uint32 // pages in the file image
	Encoding   string
	Compressed string // "none", "gzip" or "xz"

	Header format.Header
}

// DB is an open database file.
type DB struct {
	path   string
	pager  *pager.Pager
	engine *engine.Engine
}

// Open opens the database at path and validates its header.
func Open(path string, opts Options) (*DB, error) {
	p, err := pager.Open(path, pager.Options{CachePages: opts.CachePages})
	if err != nil {
		return nil, err
	}
	return &DB{
		path:   path,
		pager:  p,
		engine: engine.New(p, utf.Encoding(p.Header().TextEncoding)),
	}, nil
}

// Close closes the database file.
func (db *DB) Close() error {
	return db.pager.Close()
}

// Path returns the path the database was opened from.
func (db *DB) Path() string {
	return db.path
}

// Info reports the page size and the number of schema rows.
func (db *DB) Info(ctx context.Context) (*Info, error) {
	n, err := db.engine.Catalog().Count()
	if err != nil {
		return nil, liteerrors.Wrap(err, "failed to count schema entries")
	}
	h := db.pager.Header()
	info := &Info{
		PageSize:   db.pager.PageSize(),
		TableCount: n,
		PageCount:  db.pager.PageCount(),
		Encoding:   h.EncodingName(),
		Compressed: string(db.pager.Compression()),
		Header:     *h,
	}
	logging.LoggerFromContext(ctx).Debug("database info", "page_size", info.PageSize, "tables", info.TableCount)
	return info, nil
}

// Tables returns the names of the user tables in schema order.
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	names, err := db.engine.Catalog().Tables()
	if err != nil {
		return nil, liteerrors.Wrap(err, "failed to list tables")
	}
	logging.LoggerFromContext(ctx).Debug("tables listed", "count", len(names))
	return names, nil
}

// Schema returns every schema entry in file order.
func (db *DB) Schema(ctx context.Context) ([]Entry, error) {
	entries, err := db.engine.Catalog().All()
	if err != nil {
		return nil, liteerrors.Wrap(err, "failed to read schema")
	}
	logging.LoggerFromContext(ctx).Debug("schema read", "entries", len(entries))
	return entries, nil
}

// Digest returns the hex BLAKE3 digest of the database image. For a
// compressed file this is the digest of the decompressed bytes.
func (db *DB) Digest(ctx context.Context) (string, error) {
	h := blake3.New()
	n, err := io.Copy(h, db.pager.Reader())
	if err != nil {
		return "", liteerrors.NewIO("read", db.path, err)
	}
	logging.LoggerFromContext(ctx).Debug("digest computed", "bytes", n)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Query runs a SELECT statement.
func (db *DB) Query(ctx context.Context, query string) (*Result, error) {
	return db.engine.Execute(ctx, strings.TrimSpace(query))
}
