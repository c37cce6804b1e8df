package schema

import (
	"strings"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/btree"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/record"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
)

// RootPage is the page holding the root of the schema table.
const RootPage = 1

// Object types stored in the type column.
const (
	TypeTable   = "table"
	TypeIndex   = "index"
	TypeView    = "view"
	TypeTrigger = "trigger"
)

// Entry is one row of the schema table.
type Entry struct {
	Type      string
	Name      string
	TableName string
	RootPage  uint32
	SQL       string
}

// IsInternal reports whether the entry names an object reserved by the
// database engine itself.
func (e Entry) IsInternal() bool {
	return strings.HasPrefix(strings.ToLower(e.Name), "sqlite_")
}

// Catalog reads schema entries through a b-tree navigator.
type Catalog struct {
	tree *btree.Tree
	enc  utf.Encoding
}

// NewCatalog creates a Catalog. Text columns are decoded with enc.
func NewCatalog(tree *btree.Tree, enc utf.Encoding) *Catalog {
	return &Catalog{tree: tree, enc: enc}
}

// Entries calls fn for each schema row in file order. fn may return
// btree.Stop to end the walk early.
func (c *Catalog) Entries(fn func(Entry) error) error {
	return c.tree.Visit(RootPage, func(cell btree.Cell) error {
		e, err := decodeEntry(cell.Record, c.enc)
		if err != nil {
			return liteerrors.Wrapf(err, "schema row %d", cell.RowID)
		}
		return fn(e)
	})
}

// All returns every schema entry.
func (c *Catalog) All() ([]Entry, error) {
	var entries []Entry
	err := c.Entries(func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	return entries, err
}

// Count returns the number of schema rows without decoding them.
func (c *Catalog) Count() (int, error) {
	return c.tree.CountRows(RootPage)
}

// TableNames returns the tbl_name column of every schema row, including the
// rows of indexes, views and triggers.
func (c *Catalog) TableNames() ([]string, error) {
	var names []string
	err := c.Entries(func(e Entry) error {
		names = append(names, e.TableName)
		return nil
	})
	return names, err
}

// Tables returns the names of user tables in file order.
func (c *Catalog) Tables() ([]string, error) {
	var names []string
	err := c.Entries(func(e Entry) error {
		if e.Type == TypeTable && !e.IsInternal() {
			names = append(names, e.TableName)
		}
		return nil
	})
	return names, err
}

// FindTable returns the first table entry whose tbl_name equals name
// exactly. The walk stops at the first match.
func (c *Catalog) FindTable(name string) (Entry, bool, error) {
	var found Entry
	ok := false
	err := c.Entries(func(e Entry) error {
		if e.Type == TypeTable && e.TableName == name {
			found, ok = e, true
			return btree.Stop
		}
		return nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	return found, ok, nil
}

func decodeEntry(rec record.Record, enc utf.Encoding) (Entry, error) {
	var text [5]string
	for _, i := range []int{0, 1, 2, 4} {
		s, err := rec.Column(i).Text(enc)
		if err != nil {
			return Entry{}, err
		}
		text[i] = s
	}

	var root uint32
	if v := rec.Column(3); v.Kind() == record.KindInteger && v.Int() > 0 {
		root = uint32(v.Int())
	}

	return Entry{
		Type:      text[0],
		Name:      text[1],
		TableName: text[2],
		RootPage:  root,
		SQL:       text[4],
	}, nil
}
