package btree

import (
	"encoding/binary"
	"fmt"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// Page type constants (first byte of page header)
const (
	PageTypeInteriorIndex = 0x02 // Interior index b-tree page
	PageTypeInteriorTable = 0x05 // Interior table b-tree page
	PageTypeLeafIndex     = 0x0a // Leaf index b-tree page
	PageTypeLeafTable     = 0x0d // Leaf table b-tree page
)

// Page header offsets
const (
	PageHeaderOffsetType       = 0 // Page type (1 byte)
	PageHeaderOffsetFreeblock  = 1 // First freeblock offset (2 bytes)
	PageHeaderOffsetNumCells   = 3 // Number of cells (2 bytes)
	PageHeaderOffsetCellStart  = 5 // Start of cell content area (2 bytes)
	PageHeaderOffsetFragmented = 7 // Fragmented free bytes (1 byte)
	PageHeaderOffsetRightChild = 8 // Right-most child pointer (4 bytes, interior only)
)

// Header sizes
const (
	PageHeaderSizeLeaf     = 8   // Leaf pages: 8 bytes
	PageHeaderSizeInterior = 12  // Interior pages: 12 bytes (includes right child pointer)
	FileHeaderSize         = 100 // Database file header on page 1
)

// PageHeader represents the parsed header of a table b-tree page.
type PageHeader struct {
	PageType         byte   // PageTypeInteriorTable or PageTypeLeafTable
	FirstFreeblock   uint16 // Offset to first freeblock (0 if none)
	NumCells         uint16 // Number of cells on this page
	CellContentStart uint16 // Start of cell content area
	FragmentedBytes  byte   // Number of fragmented free bytes
	RightChild       uint32 // Right-most child page number (interior pages only)

	IsLeaf        bool
	HeaderOffset  int // 100 on page 1, otherwise 0
	HeaderSize    int // 8 or 12 bytes
	CellPtrOffset int // Offset where the cell pointer array starts
}

// ParsePageHeader parses the b-tree page header from raw page data. On page 1
// the header follows the 100-byte file header. Only table pages are accepted;
// index pages and unknown type bytes fail with an unsupported page type error.
func ParsePageHeader(data []byte, pageNum uint32) (*PageHeader, error) {
	offset := 0
	if pageNum == 1 {
		offset = FileHeaderSize
	}
	if len(data) < offset+PageHeaderSizeLeaf {
		return nil, liteerrors.NewTruncated("page header", offset, PageHeaderSizeLeaf, max(len(data)-offset, 0))
	}

	h := &PageHeader{
		PageType:         data[offset+PageHeaderOffsetType],
		FirstFreeblock:   binary.BigEndian.Uint16(data[offset+PageHeaderOffsetFreeblock:]),
		NumCells:         binary.BigEndian.Uint16(data[offset+PageHeaderOffsetNumCells:]),
		CellContentStart: binary.BigEndian.Uint16(data[offset+PageHeaderOffsetCellStart:]),
		FragmentedBytes:  data[offset+PageHeaderOffsetFragmented],
		HeaderOffset:     offset,
	}

	switch h.PageType {
	case PageTypeLeafTable:
		h.IsLeaf = true
		h.HeaderSize = PageHeaderSizeLeaf
	case PageTypeInteriorTable:
		if len(data) < offset+PageHeaderSizeInterior {
			return nil, liteerrors.NewTruncated("page header", offset, PageHeaderSizeInterior, len(data)-offset)
		}
		h.RightChild = binary.BigEndian.Uint32(data[offset+PageHeaderOffsetRightChild:])
		h.HeaderSize = PageHeaderSizeInterior
	default:
		return nil, liteerrors.NewUnsupportedPageType(pageNum, h.PageType)
	}

	h.CellPtrOffset = offset + h.HeaderSize
	return h, nil
}

// CellPointers returns the cell pointer array: NumCells offsets relative to
// the start of the page (byte 0, even on page 1).
func (h *PageHeader) CellPointers(data []byte) ([]uint16, error) {
	end := h.CellPtrOffset + 2*int(h.NumCells)
	if end > len(data) {
		return nil, liteerrors.NewTruncated("cell pointer array", h.CellPtrOffset, 2*int(h.NumCells), len(data)-h.CellPtrOffset)
	}

	pointers := make([]uint16, h.NumCells)
	for i := range pointers {
		ptr := binary.BigEndian.Uint16(data[h.CellPtrOffset+2*i:])
		if int(ptr) >= len(data) {
			return nil, liteerrors.NewTruncated("cell pointer", int(ptr), 1, 0)
		}
		pointers[i] = ptr
	}
	return pointers, nil
}

// String returns a string representation of the page header
func (h *PageHeader) String() string {
	pageTypeStr := "leaf table"
	if !h.IsLeaf {
		pageTypeStr = "interior table"
	}

	return fmt.Sprintf("PageHeader{type=%s, cells=%d, contentStart=%d, freeblock=%d, fragmented=%d}",
		pageTypeStr, h.NumCells, h.CellContentStart, h.FirstFreeblock, h.FragmentedBytes)
}
