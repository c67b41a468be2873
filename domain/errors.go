package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeTooLarge ErrorCode = "TOO_LARGE"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// DatabaseError classifies a driver failure. Its text reads "database error: <cause>".
func DatabaseError(err error) *Error {
	return WrapError(ErrCodeInternal, "database error", err)
}

// StorageError classifies an object store failure.
func StorageError(err error) *Error {
	return WrapError(ErrCodeInternal, "storage error", err)
}

// Common domain errors.
var (
	ErrTaskNotFound        = NewError(ErrCodeNotFound, "task not found")
	ErrSomedayListNotFound = NewError(ErrCodeNotFound, "someday list not found")
	ErrTagNotFound         = NewError(ErrCodeNotFound, "task tag not found")
	ErrLinkNotFound        = NewError(ErrCodeNotFound, "task link not found")
	ErrAttachmentNotFound  = NewError(ErrCodeNotFound, "attachment not found")
	ErrTagPresetNotFound   = NewError(ErrCodeNotFound, "tag preset not found")
	ErrColorPresetNotFound = NewError(ErrCodeNotFound, "color preset not found")
	ErrTrashItemNotFound   = NewError(ErrCodeNotFound, "trash item not found")
	ErrObjectNotFound      = NewError(ErrCodeNotFound, "object not found")
	ErrTagPresetExists     = NewError(ErrCodeConflict, "tag preset already exists")
	ErrMixedPlacement      = NewError(ErrCodeInvalid, "task cannot have both a date and a list")
	ErrInvalidPayload      = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// IsNotFound reports whether err is classified NOT_FOUND.
func IsNotFound(err error) bool {
	return IsDomainError(err, ErrCodeNotFound)
}
