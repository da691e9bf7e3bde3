package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeValidation       ErrorType = "VALIDATION"
	ErrTypeNotFound         ErrorType = "NOT_FOUND"
	ErrTypeEdgeNotFound     ErrorType = "EDGE_NOT_FOUND"
	ErrTypeUnsupportedMedia ErrorType = "UNSUPPORTED_MEDIA"
	ErrTypeUpload           ErrorType = "UPLOAD_FAILED"
	ErrTypeUnavailable      ErrorType = "UNAVAILABLE"
	ErrTypeInternal         ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string) *DomainError {
	return New(ErrTypeValidation, message, nil)
}

// NotFound reports that an identifier of the given kind ("user", "post", ...)
// did not resolve to a row.
func NotFound(kind string, id uint) *DomainError {
	return New(ErrTypeNotFound, fmt.Sprintf("%s %d not found", kind, id), nil)
}

func EdgeNotFound(relation string, ownerID, targetID uint) *DomainError {
	return New(ErrTypeEdgeNotFound, fmt.Sprintf("%s edge %d -> %d not found", relation, ownerID, targetID), nil)
}

func UnsupportedMedia(message string, err error) *DomainError {
	return New(ErrTypeUnsupportedMedia, message, err)
}

func Upload(message string, err error) *DomainError {
	return New(ErrTypeUpload, message, err)
}

func Unavailable(message string, err error) *DomainError {
	return New(ErrTypeUnavailable, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

// TypeOf returns the type of the outermost DomainError in err's chain, or
// ErrTypeInternal when there is none.
func TypeOf(err error) ErrorType {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Type
	}
	return ErrTypeInternal
}

func Is(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// MessageOf returns the client-facing message of a DomainError without the
// wrapped cause.
func MessageOf(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
