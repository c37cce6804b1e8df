/*
Package pager reads fixed-size pages from a database file.

A Pager owns one file handle for the lifetime of a command. Pages are read
with positioned reads (io.ReaderAt), so b-tree traversal never moves a shared
file offset and nested reads need no cursor save and restore.

# Pages

Pages are numbered from 1. Page n occupies bytes [(n-1)*pageSize, n*pageSize)
of the file. Page 1 begins with the 100-byte file header; its b-tree header
follows at byte 100.

# Compressed files

A file that starts with the xz or gzip magic bytes is decompressed into
memory on open and served from there. The decompressed image is capped at
MaxDecompressedSize.

# Cache

Pages read from disk are kept in a ristretto cache bounded by
Options.CachePages pages. The cache lives and dies with the Pager; nothing is
shared between Pagers.

	p, err := pager.Open("fruits.db", pager.Options{CachePages: 256})
	if err != nil {
	    return err
	}
	defer p.Close()

	page, err := p.Page(1)
*/
package pager
