package pager

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/dustin/go-humanize"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/format"
	"github.com/FocuswithJustin/litequery/internal/logging"
)

// DefaultCachePages is the page cache size used when Options is left empty.
const DefaultCachePages = 256

// Options configures a Pager.
type Options struct {
	// CachePages is the number of pages kept in memory. Zero disables the cache.
	CachePages int
}

// Pager serves the pages of one read-only database file.
type Pager struct {
	path        string
	file        *os.File // nil once a compressed file has been read into memory
	r           io.ReaderAt
	size        int64
	compression Compression
	header      *format.Header
	pageSize    int
	cache       *ristretto.Cache[uint64, []byte]
}

// Open opens the database file at path and validates its header.
func Open(path string, opts Options) (*Pager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, liteerrors.NewIO("open", path, err)
	}

	p, err := newPager(path, f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return p, nil
}

func newPager(path string, f *os.File, opts Options) (*Pager, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, liteerrors.NewIO("stat", path, err)
	}

	p := &Pager{path: path, file: f, r: f, size: info.Size()}

	p.compression, err = detectCompression(f)
	if err != nil {
		return nil, liteerrors.NewIO("read", path, err)
	}
	if p.compression != CompressionNone {
		data, err := decompress(io.NewSectionReader(f, 0, p.size), p.compression, path)
		if err != nil {
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, liteerrors.NewIO("close", path, err)
		}
		p.file = nil
		p.r = bytes.NewReader(data)
		p.size = int64(len(data))
	}

	buf := make([]byte, format.HeaderSize)
	n, err := p.r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, liteerrors.NewIO("read header", path, err)
	}
	p.header = &format.Header{}
	if err := p.header.Parse(buf[:n]); err != nil {
		return nil, liteerrors.Wrap(err, path)
	}
	p.pageSize = p.header.GetPageSize()

	if opts.CachePages > 0 {
		p.cache, err = ristretto.NewCache(&ristretto.Config[uint64, []byte]{
			NumCounters:        int64(opts.CachePages) * 10,
			MaxCost:            int64(opts.CachePages) * int64(p.pageSize),
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, liteerrors.Wrap(err, "create page cache")
		}
	}

	logging.Debug("database opened",
		"path", path,
		"size", humanize.Bytes(uint64(p.size)),
		"compression", string(p.compression),
		"page_size", p.pageSize,
		"encoding", p.header.EncodingName(),
		"cache_pages", opts.CachePages,
	)
	return p, nil
}

// Page returns the bytes of page pgno. The last page of a file that ends
// mid-page is returned short. The returned slice must not be modified.
func (p *Pager) Page(pgno uint32) ([]byte, error) {
	if pgno == 0 {
		return nil, liteerrors.NewTruncated("page 0", 0, p.pageSize, 0)
	}
	off := int64(pgno-1) * int64(p.pageSize)
	if off >= p.size {
		return nil, liteerrors.NewTruncated("page", int(off), p.pageSize, 0)
	}

	if p.cache != nil {
		if data, ok := p.cache.Get(uint64(pgno)); ok {
			return data, nil
		}
	}

	data := make([]byte, min(int64(p.pageSize), p.size-off))
	n, err := p.r.ReadAt(data, off)
	if n < len(data) || (err != nil && !errors.Is(err, io.EOF)) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, liteerrors.NewIO("read page", p.path, err)
	}

	if p.cache != nil {
		p.cache.Set(uint64(pgno), data, int64(len(data)))
	}
	return data, nil
}

// PageSize returns the page size in bytes.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// UsableSize returns the page size minus the reserved bytes at the end of each page.
func (p *Pager) UsableSize() int {
	return p.header.UsableSize()
}

// Header returns the parsed file header.
func (p *Pager) Header() *format.Header {
	return p.header
}

// Size returns the size in bytes of the (decompressed) database image.
func (p *Pager) Size() int64 {
	return p.size
}

// PageCount returns the number of pages in the database image, counting a
// trailing partial page.
func (p *Pager) PageCount() uint32 {
	return uint32((p.size + int64(p.pageSize) - 1) / int64(p.pageSize))
}

// Compression reports how the file was stored on disk.
func (p *Pager) Compression() Compression {
	return p.compression
}

// Reader returns a reader over the whole (decompressed) database image.
func (p *Pager) Reader() io.Reader {
	return io.NewSectionReader(p.r, 0, p.size)
}

// Close releases the cache and the file handle.
func (p *Pager) Close() error {
	if p.cache != nil {
		p.cache.Close()
		p.cache = nil
	}
	if p.file != nil {
		err := p.file.Close()
		p.file = nil
		if err != nil {
			return liteerrors.NewIO("close", p.path, err)
		}
	}
	return nil
}
