package btree

import (
	"encoding/binary"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/record"
)

const testPageSize = 512

// memSource is an in-memory PageSource.
type memSource struct {
	pages map[uint32][]byte
}

func newMemSource() *memSource {
	return &memSource{pages: make(map[uint32][]byte)}
}

func (m *memSource) Page(pgno uint32) ([]byte, error) {
	data, ok := m.pages[pgno]
	if !ok {
		return nil, liteerrors.NewTruncated("page", int(pgno), testPageSize, 0)
	}
	return data, nil
}

func (m *memSource) UsableSize() int {
	return testPageSize
}

// buildPage lays out a b-tree page: header, cell pointer array, and cells
// packed at the end of the page.
func buildPage(pgno uint32, pageType byte, rightChild uint32, cells [][]byte) []byte {
	data := make([]byte, testPageSize)
	off := 0
	if pgno == 1 {
		off = FileHeaderSize
	}

	headerSize := PageHeaderSizeLeaf
	if pageType == PageTypeInteriorTable || pageType == PageTypeInteriorIndex {
		headerSize = PageHeaderSizeInterior
		binary.BigEndian.PutUint32(data[off+PageHeaderOffsetRightChild:], rightChild)
	}
	data[off+PageHeaderOffsetType] = pageType
	binary.BigEndian.PutUint16(data[off+PageHeaderOffsetNumCells:], uint16(len(cells)))

	content := testPageSize
	for i, cell := range cells {
		content -= len(cell)
		copy(data[content:], cell)
		binary.BigEndian.PutUint16(data[off+headerSize+2*i:], uint16(content))
	}
	binary.BigEndian.PutUint16(data[off+PageHeaderOffsetCellStart:], uint16(content))
	return data
}

// leafCells builds one leaf cell per rowid holding the record (rowid, name).
func leafCells(rowids ...int64) [][]byte {
	cells := make([][]byte, len(rowids))
	for i, id := range rowids {
		payload := record.Encode([]record.Value{record.IntValue(id), record.TextValue("row")})
		cells[i] = EncodeTableLeafCell(id, payload)
	}
	return cells
}
