package btree

import (
	"encoding/binary"
	"fmt"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
)

// LeafCell is a table leaf cell: payload size, rowid, and the local payload bytes.
type LeafCell struct {
	PayloadSize uint64
	RowID       int64
	Payload     []byte // aliases the page buffer
}

// InteriorCell is a table interior cell: a child page and the largest rowid
// stored under it.
type InteriorCell struct {
	ChildPage uint32
	Key       int64
}

// MaxLocal returns the largest payload a table leaf cell keeps on its page.
// Anything larger spills to overflow pages.
func MaxLocal(usableSize int) int {
	return usableSize - 35
}

// ParseLeafCell parses the table leaf cell starting at data[off]. Payloads
// that spill to overflow pages are reported as unsupported.
func ParseLeafCell(data []byte, off int, usableSize int) (LeafCell, error) {
	payloadSize, n, err := utf.ReadVarint(data, off)
	if err != nil {
		return LeafCell{}, liteerrors.Wrap(err, "cell payload size")
	}
	off += n

	rowid, n, err := utf.ReadVarint(data, off)
	if err != nil {
		return LeafCell{}, liteerrors.Wrap(err, "cell rowid")
	}
	off += n

	if payloadSize > uint64(MaxLocal(usableSize)) {
		return LeafCell{}, liteerrors.NewUnsupported("overflow pages",
			fmt.Sprintf("row %d has a %d byte payload, local limit is %d", int64(rowid), payloadSize, MaxLocal(usableSize)))
	}
	if uint64(len(data)-off) < payloadSize {
		return LeafCell{}, liteerrors.NewTruncated("cell payload", off, int(payloadSize), len(data)-off)
	}

	return LeafCell{
		PayloadSize: payloadSize,
		RowID:       int64(rowid),
		Payload:     data[off : off+int(payloadSize)],
	}, nil
}

// ParseInteriorCell parses the table interior cell starting at data[off].
func ParseInteriorCell(data []byte, off int) (InteriorCell, error) {
	if off < 0 || off+4 > len(data) {
		return InteriorCell{}, liteerrors.NewTruncated("child page number", off, 4, max(len(data)-off, 0))
	}
	child := binary.BigEndian.Uint32(data[off:])

	key, _, err := utf.ReadVarint(data, off+4)
	if err != nil {
		return InteriorCell{}, liteerrors.Wrap(err, "interior cell key")
	}

	return InteriorCell{ChildPage: child, Key: int64(key)}, nil
}

// EncodeTableLeafCell builds a table leaf cell.
func EncodeTableLeafCell(rowid int64, payload []byte) []byte {
	buf := make([]byte, 0, 2*utf.MaxVarintLen+len(payload))
	buf = utf.AppendVarint(buf, uint64(len(payload)))
	buf = utf.AppendVarint(buf, uint64(rowid))
	return append(buf, payload...)
}

// EncodeTableInteriorCell builds a table interior cell.
func EncodeTableInteriorCell(childPage uint32, rowid int64) []byte {
	buf := make([]byte, 4, 4+utf.MaxVarintLen)
	binary.BigEndian.PutUint32(buf, childPage)
	return utf.AppendVarint(buf, uint64(rowid))
}
