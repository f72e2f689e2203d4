package shroud

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNilValue indicates the root value was a nil interface and no clone could be produced.
	ErrNilValue = errors.New("nil value")

	// ErrClone indicates a deep copy of the value graph could not be produced.
	ErrClone = errors.New("clone failed")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrMissingMasker indicates a mask type has no registered masker.
	ErrMissingMasker = errors.New("missing masker")

	// ErrPredicate indicates an effectiveness predicate could not be evaluated.
	ErrPredicate = errors.New("predicate failed")

	// ErrMask indicates masking of a value failed.
	ErrMask = errors.New("mask failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// ConfigError represents a masking configuration error.
// It wraps a sentinel error with additional context about the field and mask type.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrInvalidTag, ErrMissingMasker)
	Field     string // Field name that triggered the error
	Algorithm string // Mask type that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for mask type %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for mask type %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error while masking a single field.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrPredicate, ErrMask)
	Field     string // Field name that failed
	Operation string // Operation that failed (predicate, mask)
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CloneError represents a failure to deep copy a value of the given type.
type CloneError struct {
	Err   error  // Underlying sentinel error (ErrClone, ErrNilValue)
	Type  string // Type that could not be cloned
	Cause error  // Original error or recovered panic
}

func (e *CloneError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Err.Error(), e.Type, e.Cause)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Type)
	}
	return e.Err.Error()
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

// Unwrap exposes both the sentinel and the codec's own error.
func (e *CodecError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// newConfigError creates a ConfigError for invalid or missing mask types.
func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

// newTransformError creates a TransformError for field masking failures.
func newTransformError(sentinel error, operation, field string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

// newCloneError creates a CloneError for deep copy failures.
func newCloneError(sentinel error, typeName string, cause error) error {
	return &CloneError{
		Err:   sentinel,
		Type:  typeName,
		Cause: cause,
	}
}

// newCodecError creates a CodecError for marshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
