// Package format defines the database file header and its validation rules.
//
// Every database file begins with a 100-byte header. The reader relies on
// three facts from it:
//
//   - the magic string ("SQLite format 3\x00") identifying the file
//   - the page size at offset 16 (big-endian uint16, 1 meaning 65536)
//   - the text encoding at offset 56 (UTF-8, UTF-16LE, UTF-16BE)
//
// The remaining fields are parsed for reporting only.
//
//	header := &format.Header{}
//	if err := header.Parse(data); err != nil {
//	    return err
//	}
//	fmt.Printf("Page size: %d\n", header.GetPageSize())
//
// # References
//
//   - SQLite File Format: https://www.sqlite.org/fileformat.html
package format
