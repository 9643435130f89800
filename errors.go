package wot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrPayloadRejected indicates a value did not conform to the data schema
	// it was about to be serialized (or was decoded) against.
	ErrPayloadRejected = errors.New("payload rejected")

	// ErrInvalidSchema indicates a schema builder was misused and no schema was produced.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedContentType indicates a payload cannot be rendered in the requested media type.
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents a value that does not conform to its schema.
	KindValidation = "validation"

	// KindConstruction represents schema construction errors.
	KindConstruction = "construction"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindEncoding represents failures to serialize or deserialize a payload.
	KindEncoding = "encoding"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &wot.Error{
//		Op:   "Encoder.Encode",
//		Kind: wot.KindValidation,
//		Err:  wot.ErrPayloadRejected,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "ObjectBuilder.Build", "Encoder.Encode").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindConstruction).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("wot: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("wot: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("wot: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	// Match if Kind is the same and Op is either equal or empty in target
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
// The receiver is left untouched.
//
// Example:
//
//	err := wot.NewValidationError("Encoder.Encode", mismatch)
//	err = err.WithContext(map[string]any{
//		"content_type": "application/json",
//	})
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConstructionError creates a new Error with KindConstruction.
func NewConstructionError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConstruction,
		Err:  err,
	}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewEncodingError creates a new Error with KindEncoding.
func NewEncodingError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindEncoding,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer wot.CloseWithLog(file, logger, "config file")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
