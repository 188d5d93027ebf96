package model

import (
	"errors"
	"strings"
)

// Sentinel errors for the bundler error kinds.
var (
	// ErrResolution indicates a specifier could not be mapped to a file.
	ErrResolution = errors.New("resolution failure")

	// ErrIO indicates an entry or dependency file could not be read or written.
	ErrIO = errors.New("io failure")

	// ErrTransform indicates a per-extension compiler failed.
	ErrTransform = errors.New("transform failure")

	// ErrIncomplete indicates statistics were requested before processing finished.
	ErrIncomplete = errors.New("statistics are not yet available")

	// ErrNotFound indicates the resolver found nothing for a specifier.
	ErrNotFound = errors.New("module not found")

	// ErrStreamClosed indicates a pull after end-of-output was already delivered.
	ErrStreamClosed = errors.New("stream already closed")
)

// BundleError carries the context of a fatal bundling failure.
type BundleError struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Path is the file being processed when the failure happened.
	Path Path
	// Specifier is the offending require() argument, if any.
	Specifier string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *BundleError) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Error())

	if e.Specifier != "" {
		b.WriteString(": cannot find module \"")
		b.WriteString(e.Specifier)
		b.WriteString("\"")
	}

	if e.Path != "" {
		if e.Specifier != "" {
			b.WriteString(" from ")
		} else {
			b.WriteString(": ")
		}

		b.WriteString(string(e.Path))
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *BundleError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}
