package service

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Error carries a client-facing message while still matching one of the
// sentinel kinds through errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) error     { return &Error{Kind: ErrNotFound, Msg: msg} }
func invalid(msg string) error      { return &Error{Kind: ErrInvalidInput, Msg: msg} }
func unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Msg: msg} }
func forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Msg: msg} }
func conflict(msg string) error     { return &Error{Kind: ErrConflict, Msg: msg} }
