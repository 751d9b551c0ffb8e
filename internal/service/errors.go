package service

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindBadRequest is a request the service refused before touching the database.
	KindBadRequest Kind = iota + 1
	// KindInternal is a failure reported by the database.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindInternal:
		return "internal"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every TableService operation that fails.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrEmptyRow is the cause of a CreateRow failure with nothing to insert.
var ErrEmptyRow = errors.New("row payload has no columns")

const (
	MsgNoData         = "No data"
	MsgNoDataIncluded = "No data included"
	MsgInvalidData    = "Invalid data"
)

func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// KindOf reports the Kind of err, treating unknown errors as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
