package dayforge

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can match on the kind instead of
// unwrapping provider- or transport-specific errors.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindAuthRequired means no account is present; interactive sign-in is
	// the only way forward.
	KindAuthRequired
	// KindAuthFailure covers failed token acquisition and backend 401/403.
	KindAuthFailure
	KindNetwork
	KindValidation
	// KindBackend is any other non-2xx response.
	KindBackend
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthRequired:
		return "auth_required"
	case KindAuthFailure:
		return "auth_failure"
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindBackend:
		return "backend"
	}
	return "unknown"
}

type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func NewError(kind ErrorKind, op string, underlying error) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  underlying,
	}
}

func Errorf(kind ErrorKind, op string, format string, args ...any) *Error {
	return NewError(kind, op, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindUnknown if err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
