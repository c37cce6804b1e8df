package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "table",
			err:      NewTableNotFound("apples"),
			wantMsg:  "table not found: apples",
			wantBase: ErrTableNotFound,
		},
		{
			name:     "column",
			err:      NewColumnNotFound("color"),
			wantMsg:  "column not found: color",
			wantBase: ErrColumnNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "table", Err: ErrTableNotFound},
			wantMsg:  "table not found",
			wantBase: ErrTableNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantBase)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	err := NewIO("open", "/tmp/x.db", io.ErrUnexpectedEOF)
	if got := err.Error(); got != "failed to open /tmp/x.db: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrIO) {
		t.Error("IOError should match ErrIO")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("IOError should match its cause")
	}

	noPath := &IOError{Operation: "read"}
	if !errors.Is(noPath, ErrIO) {
		t.Error("IOError without cause should still match ErrIO")
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "invalid query",
			err:      NewInvalidQuery("WHERE clause", "id", "no comparison operator"),
			wantMsg:  `failed to parse WHERE clause "id": no comparison operator`,
			wantBase: ErrInvalidQuery,
		},
		{
			name:     "malformed schema",
			err:      NewMalformedSchema("CREATE TABLE t", "no column list"),
			wantMsg:  `failed to parse CREATE TABLE "CREATE TABLE t": no column list`,
			wantBase: ErrMalformedSchema,
		},
		{
			name:     "default kind",
			err:      &ParseError{Format: "statement", Message: "empty"},
			wantMsg:  "failed to parse statement: empty",
			wantBase: ErrInvalidQuery,
		},
		{
			name:     "not a database",
			err:      NewNotDatabase("bad magic"),
			wantMsg:  "failed to parse database header: bad magic",
			wantBase: ErrNotDatabase,
		},
		{
			name:     "corrupt file",
			err:      NewCorrupt("b-tree page 2 is reached twice"),
			wantMsg:  "failed to parse database file: b-tree page 2 is reached twice",
			wantBase: ErrNotDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantBase)
			}
		})
	}
}

func TestUnsupportedError(t *testing.T) {
	pageErr := NewUnsupportedPageType(3, 0x0a)
	if got := pageErr.Error(); got != "unsupported page type: page 3 has type 0x0a" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(pageErr, ErrUnsupportedPageType) {
		t.Error("should match ErrUnsupportedPageType")
	}

	cmdErr := NewUnsupportedCommand("DELETE")
	if !errors.Is(cmdErr, ErrUnsupportedCommand) {
		t.Error("should match ErrUnsupportedCommand")
	}

	featErr := NewUnsupported("overflow pages", "")
	if got := featErr.Error(); got != "unsupported overflow pages" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(featErr, ErrUnsupportedFeature) {
		t.Error("should match ErrUnsupportedFeature")
	}
}

func TestTruncatedError(t *testing.T) {
	err := NewTruncated("varint", 7, 2, 1)
	if got := err.Error(); got != "truncated varint at offset 7: need 2 bytes, have 1" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrTruncatedInput) {
		t.Error("should match ErrTruncatedInput")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	base := NewTableNotFound("t")
	wrapped := Wrapf(base, "query %s", "q1")
	if got := wrapped.Error(); got != "query q1: table not found: t" {
		t.Errorf("Wrapf() = %q", got)
	}
	if !Is(wrapped, ErrTableNotFound) {
		t.Error("wrapped error should keep its kind")
	}

	var nf *NotFoundError
	if !As(Wrap(base, "outer"), &nf) {
		t.Fatal("As() should find NotFoundError")
	}
	if nf.ID != "t" {
		t.Errorf("ID = %q, want %q", nf.ID, "t")
	}

	if Is(fmt.Errorf("plain"), ErrIO) {
		t.Error("plain error should not match ErrIO")
	}
}
