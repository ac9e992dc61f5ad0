// Package apperr defines the error taxonomy shared by every domain package.
//
// Domain packages declare their own sentinels with New, wrapping one of the
// kinds below, so callers can match either the precise error or its kind with
// errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated     = errors.New("não autenticado")
	ErrForbidden           = errors.New("acesso negado")
	ErrNotFound            = errors.New("registro não encontrado")
	ErrInvalidInput        = errors.New("dados inválidos")
	ErrInsufficientStock   = errors.New("estoque insuficiente")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrConflict            = errors.New("registro já existe")
)

// Error is a user-facing message bound to a kind from the taxonomy.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing text for err and whether err belongs to
// the taxonomy at all. Errors outside the taxonomy are internal failures.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}

	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind.Error(), true
		}
	}

	return "", false
}

var kinds = []error{
	ErrUnauthenticated,
	ErrForbidden,
	ErrNotFound,
	ErrInvalidInput,
	ErrInsufficientStock,
	ErrInsufficientBalance,
	ErrConflict,
}
