package common

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference is returned when a relation or resource names a document that does not exist.
	ErrInvalidReference = errors.New("invalid document reference")
	// ErrDuplicateRelation is returned by stores that refuse an existing (pair, type) relation.
	ErrDuplicateRelation = errors.New("relation already exists")
	// ErrSelfLink is returned when a document is linked to itself.
	ErrSelfLink = errors.New("a document cannot be linked to itself")
	// ErrNoFilesProvided is returned when an upload batch is empty.
	ErrNoFilesProvided = errors.New("no files uploaded")
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is enables errors.Is matching on ValidationError regardless of field.
func (e ValidationError) Is(target error) bool {
	switch target.(type) {
	case ValidationError, *ValidationError:
		return true
	}
	return false
}

// NotFoundError represents a missing document, relation or resource.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	switch target.(type) {
	case NotFoundError, *NotFoundError:
		return true
	}
	return false
}

// ErrNotFound is the sentinel error for missing records.
var ErrNotFound = NotFoundError{}

// InternalError wraps failures of the storage engine or blob storage so callers
// can tell an unhealthy system apart from bad input.
type InternalError struct {
	Op  string
	Err error
}

func (e InternalError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("internal error: %v", e.Err)
	}
	return fmt.Sprintf("internal error during %s: %v", e.Op, e.Err)
}

func (e InternalError) Unwrap() error {
	return e.Err
}

// Internal wraps err as an InternalError. Domain errors pass through unchanged.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	var ie InternalError
	if errors.As(err, &ie) {
		return err
	}
	return InternalError{Op: op, Err: err}
}

// IsDomainError reports whether err is caused by the caller's input rather than
// by the system.
func IsDomainError(err error) bool {
	return errors.Is(err, ValidationError{}) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidReference) ||
		errors.Is(err, ErrDuplicateRelation) ||
		errors.Is(err, ErrSelfLink) ||
		errors.Is(err, ErrNoFilesProvided)
}
