package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Kind is the closed set of error categories surfaced by the API. The
// underlying error detail is logged server-side; callers only ever see the
// kind's safe message.
type Kind int

const (
	Validation Kind = iota
	NotFound
	Conflict
	Gateway
	Persistence
)

// Error wraps an internal error with a public kind and a safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with a safe, caller-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an internal cause that must not leak to the caller.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validationf builds a Validation error from a format string. Validation
// messages are shown verbatim to the caller, so they must stay safe.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// FromDB translates GORM errors into the taxonomy. Unknown errors become
// Persistence failures with a generic message.
func FromDB(err error, notFoundMessage string) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return New(NotFound, notFoundMessage)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Wrap(Conflict, "duplicate entry", err)
	}
	return Wrap(Persistence, "database operation failed", err)
}

// StatusCode maps a kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case Validation:
		return fiber.StatusBadRequest
	case NotFound:
		return fiber.StatusNotFound
	case Conflict:
		return fiber.StatusConflict
	case Gateway:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// KindOf extracts the kind from an error chain, defaulting to Persistence.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Persistence
}

// SafeMessage returns the caller-visible message for an error chain.
func SafeMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
