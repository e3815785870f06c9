package lifecycle

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind 错误类别，供表现层决定如何提示用户
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind  Kind
	Op    string
	Field string
	Err   error
}

var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrForbidden   = &Error{Kind: KindForbidden}
	ErrPersistence = &Error{Kind: KindPersistence}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s)", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按类别比较，errors.Is(err, ErrNotFound) 对任意 Op 的 NotFound 成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func validationError(op, field string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Err: err}
}

func notFound(op, field string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Field: field}
}

func forbidden(op string, err error) *Error {
	return &Error{Kind: KindForbidden, Op: op, Err: err}
}

// persistence 包装存储层错误并附带堆栈，已是 *Error 时原样返回
func persistence(op string, err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Kind: KindPersistence, Op: op, Err: pkgerrors.WithStack(err)}
}
