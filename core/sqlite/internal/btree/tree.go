package btree

import (
	"errors"
	"fmt"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/record"
)

// PageSource supplies raw pages by 1-based page number.
type PageSource interface {
	Page(pgno uint32) ([]byte, error)
	UsableSize() int
}

// Stop can be returned by a Visit callback to end the walk early. Visit
// itself then returns nil.
var Stop = errors.New("stop walk")

// Cell is one table row as stored in a leaf cell: the rowid travels with
// its decoded record.
type Cell struct {
	RowID  int64
	Record record.Record
}

// Tree walks table b-trees read from a PageSource.
type Tree struct {
	src PageSource
}

// New creates a Tree over src.
func New(src PageSource) *Tree {
	return &Tree{src: src}
}

// pageFunc is called once per leaf page reached by walk.
type pageFunc func(pgno uint32, data []byte, h *PageHeader) error

// walk visits the leaf pages under root in key order: interior children in
// cell pointer order, then the right-most child. A page reached twice means
// the tree is corrupt.
func (t *Tree) walk(root uint32, fn pageFunc) error {
	return t.descend(root, make(map[uint32]struct{}), fn)
}

func (t *Tree) descend(pgno uint32, seen map[uint32]struct{}, fn pageFunc) error {
	if _, ok := seen[pgno]; ok {
		return liteerrors.NewCorrupt(fmt.Sprintf("b-tree page %d is reached twice", pgno))
	}
	seen[pgno] = struct{}{}

	data, err := t.src.Page(pgno)
	if err != nil {
		return err
	}
	h, err := ParsePageHeader(data, pgno)
	if err != nil {
		return err
	}
	if h.IsLeaf {
		return fn(pgno, data, h)
	}

	ptrs, err := h.CellPointers(data)
	if err != nil {
		return liteerrors.Wrapf(err, "page %d", pgno)
	}
	for _, ptr := range ptrs {
		cell, err := ParseInteriorCell(data, int(ptr))
		if err != nil {
			return liteerrors.Wrapf(err, "page %d", pgno)
		}
		if err := t.descend(cell.ChildPage, seen, fn); err != nil {
			return err
		}
	}
	return t.descend(h.RightChild, seen, fn)
}

// VisitCells calls fn for every leaf cell under root, in rowid order,
// without decoding the payloads.
func (t *Tree) VisitCells(root uint32, fn func(LeafCell) error) error {
	usable := t.src.UsableSize()
	err := t.walk(root, func(pgno uint32, data []byte, h *PageHeader) error {
		ptrs, err := h.CellPointers(data)
		if err != nil {
			return liteerrors.Wrapf(err, "page %d", pgno)
		}
		for _, ptr := range ptrs {
			cell, err := ParseLeafCell(data, int(ptr), usable)
			if err != nil {
				return liteerrors.Wrapf(err, "page %d", pgno)
			}
			if err := fn(cell); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, Stop) {
		return nil
	}
	return err
}

// Visit calls fn with the rowid and decoded record of every row under root,
// in rowid order.
func (t *Tree) Visit(root uint32, fn func(Cell) error) error {
	return t.VisitCells(root, func(lc LeafCell) error {
		rec, err := record.Decode(lc.Payload)
		if err != nil {
			return liteerrors.Wrapf(err, "row %d", lc.RowID)
		}
		return fn(Cell{RowID: lc.RowID, Record: rec})
	})
}

// CountRows returns the number of rows under root. Only page headers are
// read; cells are not decoded.
func (t *Tree) CountRows(root uint32) (int, error) {
	n := 0
	err := t.walk(root, func(_ uint32, _ []byte, h *PageHeader) error {
		n += int(h.NumCells)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
