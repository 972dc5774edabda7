package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure surfaced to callers
type ErrorKind string

const (
	KindNotFound  ErrorKind = "not_found"
	KindConflict  ErrorKind = "conflict"
	KindForbidden ErrorKind = "forbidden"
	KindInvalid   ErrorKind = "invalid"
	KindInternal  ErrorKind = "internal"
)

// User-facing messages
const (
	MsgForbidden         = "No tienes permisos para realizar esta acción"
	MsgUserNotFound      = "Usuario no encontrado"
	MsgVolunteerNotFound = "Voluntario no encontrado"
	MsgGroupNotFound     = "No tienes un grupo asignado"
	MsgAttendanceExists  = "Ya existe una asistencia del dia de hoy."
	MsgAlreadySeeded     = "Ya existe asistencias desde esta fecha"
	MsgInternal          = "Ocurrió un error inesperado"
)

// Error is a failure that is safe to show to the caller verbatim
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, never shown to the caller
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

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: MsgForbidden}
}

func invalid(msg string) *Error {
	return &Error{Kind: KindInvalid, Message: msg}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}

// KindOf returns the kind of err, or KindInternal if err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message for err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return MsgInternal
}
