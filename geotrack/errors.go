package geotrack

import "fmt"

// FormatError reports a document whose root structure lacks the container
// required by its format, e.g. a GPX file without tracks or routes.
type FormatError struct {
	Format string
	Source string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected %s file format in '%s': %s", e.Format, e.Source, e.Reason)
}

// ParseError reports malformed XML or binary input.
type ParseError struct {
	Format string
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s file '%s': %s", e.Format, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned for file extensions no decoder handles.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Extension)
}
