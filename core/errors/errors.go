// Package errors provides the error kinds reported by the litequery engine.
//
// Every failure a command can produce unwraps to one of the sentinel kinds
// below, so callers classify errors with errors.Is regardless of how much
// context has been wrapped around them.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per error kind.
var (
	// ErrIO indicates the database file could not be opened, read, or closed.
	ErrIO = errors.New("i/o failure")
	// ErrNotDatabase indicates the file header is not a valid database header.
	ErrNotDatabase = errors.New("not a database")
	// ErrUnsupportedPageType indicates a page type other than the table b-tree variants.
	ErrUnsupportedPageType = errors.New("unsupported page type")
	// ErrUnsupportedFeature indicates a file feature the reader does not follow (overflow pages).
	ErrUnsupportedFeature = errors.New("unsupported feature")
	// ErrTruncatedInput indicates a varint or fixed-size field runs past the available bytes.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrInvalidQuery indicates a statement or WHERE clause that does not match the grammar.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnsupportedCommand indicates a statement that is not a SELECT.
	ErrUnsupportedCommand = errors.New("unsupported command")
	// ErrTableNotFound indicates the named table is not in the schema.
	ErrTableNotFound = errors.New("table not found")
	// ErrColumnNotFound indicates a column that is not part of the table.
	ErrColumnNotFound = errors.New("column not found")
	// ErrMalformedSchema indicates table DDL without a parenthesized column list.
	ErrMalformedSchema = errors.New("malformed schema")
)

// NotFoundError represents a missing table or column.
type NotFoundError struct {
	Resource string // "table" or "column"
	ID       string // Name that was looked up
	Err      error  // Kind; ErrTableNotFound or ErrColumnNotFound
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IOError represents an I/O operation error with context.
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *IOError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrIO}
	}
	return []error{ErrIO, e.Err}
}

// ParseError represents text that could not be parsed.
type ParseError struct {
	Format  string // What was being parsed (e.g., "SELECT statement", "CREATE TABLE")
	Input   string // Offending input, if short enough to be useful
	Message string // Error details
	Err     error  // Kind; defaults to ErrInvalidQuery
}

func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("failed to parse %s %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidQuery
}

// UnsupportedError represents an unsupported page type, feature, or command.
type UnsupportedError struct {
	Feature string // Feature that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Kind
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupportedFeature
}

// TruncatedError reports a read past the end of the available bytes.
type TruncatedError struct {
	What   string // Structure being read (e.g., "varint", "cell pointer")
	Offset int    // Offset within the buffer where the read started
	Need   int    // Bytes required
	Have   int    // Bytes available
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated %s at offset %d: need %d bytes, have %d", e.What, e.Offset, e.Need, e.Have)
}

func (e *TruncatedError) Unwrap() error {
	return ErrTruncatedInput
}

// Helper functions for creating common errors

// NewTableNotFound creates a NotFoundError for a table.
func NewTableNotFound(name string) *NotFoundError {
	return &NotFoundError{Resource: "table", ID: name, Err: ErrTableNotFound}
}

// NewColumnNotFound creates a NotFoundError for a column.
func NewColumnNotFound(name string) *NotFoundError {
	return &NotFoundError{Resource: "column", ID: name, Err: ErrColumnNotFound}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewInvalidQuery creates a ParseError of kind ErrInvalidQuery.
func NewInvalidQuery(format, input, message string) *ParseError {
	return &ParseError{Format: format, Input: input, Message: message, Err: ErrInvalidQuery}
}

// NewMalformedSchema creates a ParseError of kind ErrMalformedSchema.
func NewMalformedSchema(input, message string) *ParseError {
	return &ParseError{Format: "CREATE TABLE", Input: input, Message: message, Err: ErrMalformedSchema}
}

// NewNotDatabase creates a ParseError of kind ErrNotDatabase.
func NewNotDatabase(message string) *ParseError {
	return &ParseError{Format: "database header", Message: message, Err: ErrNotDatabase}
}

// NewCorrupt creates a ParseError of kind ErrNotDatabase for a file whose
// header is valid but whose page structure is not.
func NewCorrupt(message string) *ParseError {
	return &ParseError{Format: "database file", Message: message, Err: ErrNotDatabase}
}

// NewUnsupportedPageType creates an UnsupportedError for a page type byte.
func NewUnsupportedPageType(pageNum uint32, pageType byte) *UnsupportedError {
	return &UnsupportedError{
		Feature: "page type",
		Reason:  fmt.Sprintf("page %d has type 0x%02x", pageNum, pageType),
		Err:     ErrUnsupportedPageType,
	}
}

// NewUnsupportedCommand creates an UnsupportedError for a non-SELECT command.
func NewUnsupportedCommand(command string) *UnsupportedError {
	return &UnsupportedError{
		Feature: "command",
		Reason:  fmt.Sprintf("%q (only SELECT is supported)", command),
		Err:     ErrUnsupportedCommand,
	}
}

// NewUnsupported creates an UnsupportedError of kind ErrUnsupportedFeature.
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
		Err:     ErrUnsupportedFeature,
	}
}

// NewTruncated creates a TruncatedError.
func NewTruncated(what string, offset, need, have int) *TruncatedError {
	return &TruncatedError{What: what, Offset: offset, Need: need, Have: have}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
