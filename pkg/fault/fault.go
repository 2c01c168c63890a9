// Package fault classifies engine errors so the transport layer can map them
// to responses without string matching. Validation faults are recoverable by
// fixing the input; conflicts require the caller to re-fetch state; invariant
// faults indicate a bug and should page an operator, never the user.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInvariant
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }

func newf(k Kind, format string, args ...any) *Error {
	var wrapped error
	for _, a := range args {
		if err, ok := a.(error); ok {
			wrapped = err
		}
	}
	return &Error{kind: k, msg: fmt.Sprintf(format, args...), err: wrapped}
}

func Validationf(format string, args ...any) error { return newf(KindValidation, format, args...) }
func NotFoundf(format string, args ...any) error   { return newf(KindNotFound, format, args...) }
func Conflictf(format string, args ...any) error   { return newf(KindConflict, format, args...) }
func Invariantf(format string, args ...any) error  { return newf(KindInvariant, format, args...) }

// KindOf walks the chain and returns the first fault kind found.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsInvariant(err error) bool  { return KindOf(err) == KindInvariant }
