// Package errors provides the unified error type and exit codes for speedcfg.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which failure domain an Error belongs to.
type Kind int

const (
	// KindTransport covers network and HTTP failures (refused, DNS, timeout).
	KindTransport Kind = iota + 1
	// KindIO covers failures reading or decoding the response body.
	KindIO
	// KindXML covers malformed markup and missing elements.
	KindXML
)

// String returns the name of the kind as used in log output.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindIO:
		return "io"
	case KindXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the fetch-and-extract pipeline.
// Exactly one Kind is set per failure.
type Error struct {
	Kind Kind   // Failure domain
	Op   string // Operation being performed (e.g., "fetch config", "find element client")
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Transport wraps err as a transport failure.
func Transport(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// IO wraps err as a body read failure.
func IO(op string, err error) error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

// XML wraps err as an XML failure.
func XML(op string, err error) error {
	return &Error{Kind: KindXML, Op: op, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrElementNotFound = fmt.Errorf("element not found")
	ErrMalformedXML    = fmt.Errorf("malformed XML")
	ErrInvalidUTF8     = fmt.Errorf("response body is not valid UTF-8")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
)

// Exit codes - use these constants in CLI commands instead of hardcoding values.
const (
	ExitSuccess      = 0 // Success
	ExitGeneralError = 1 // General error (output write, unexpected failure)
	ExitConfigError  = 2 // Configuration error (invalid flags or config file)
	ExitXMLError     = 3 // XML error (malformed document, element missing)
	ExitNetworkError = 4 // Network error (failed to fetch the config document)
	ExitIOError      = 5 // I/O error (failed to read the response body)
)

// KindOf returns the Kind of the first *Error in err's chain, or 0 if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrInvalidConfig) {
		return ExitConfigError
	}
	switch KindOf(err) {
	case KindTransport:
		return ExitNetworkError
	case KindIO:
		return ExitIOError
	case KindXML:
		return ExitXMLError
	default:
		return ExitGeneralError
	}
}
