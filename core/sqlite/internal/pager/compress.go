package pager

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// MaxDecompressedSize bounds the in-memory image of a compressed database (1 GiB).
const MaxDecompressedSize = 1 << 30

// Compression identifies the container a database file is stored in.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

var xzMagic = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

// detectCompression inspects the leading bytes of r.
func detectCompression(r io.ReaderAt) (Compression, error) {
	magic := make([]byte, len(xzMagic))
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return "", err
	}
	magic = magic[:n]

	switch {
	case bytes.Equal(magic, xzMagic):
		return CompressionXZ, nil
	case n >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		return CompressionGzip, nil
	default:
		return CompressionNone, nil
	}
}

// decompress reads the whole compressed stream in src into memory.
func decompress(src io.Reader, c Compression, path string) ([]byte, error) {
	var r io.Reader
	switch c {
	case CompressionXZ:
		xr, err := xz.NewReader(src)
		if err != nil {
			return nil, liteerrors.NewIO("open xz stream", path, err)
		}
		r = xr
	case CompressionGzip:
		gr, err := gzip.NewReader(src)
		if err != nil {
			return nil, liteerrors.NewIO("open gzip stream", path, err)
		}
		defer gr.Close()
		r = gr
	default:
		return nil, liteerrors.NewUnsupported("compression", string(c))
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, liteerrors.NewIO("decompress", path, err)
	}
	if len(data) > MaxDecompressedSize {
		return nil, liteerrors.NewUnsupported("compressed database",
			fmt.Sprintf("decompressed size exceeds %d bytes", MaxDecompressedSize))
	}
	return data, nil
}
