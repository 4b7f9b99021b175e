// Package errors implements coded errors that can be identified by their
// module and code, and decorated with additional context.
package errors

import (
	"errors"
	"fmt"
	"sync"
)

const (
	// UnknownModule is the module name used when the module is unknown.
	UnknownModule = "unknown"

	// CodeNoError is the reserved "no error" code.
	CodeNoError = 0
)

var errUnknownError = New(UnknownModule, 1, "unknown error")

// Re-exports so this package can be used as a replacement for errors.
var (
	As     = errors.As
	Is     = errors.Is
	Unwrap = errors.Unwrap
)

type errorKey struct {
	module string
	code   uint32
}

func (k errorKey) String() string {
	return fmt.Sprintf("%s-%d", k.module, k.code)
}

var (
	registryLock sync.Mutex
	registry     = make(map[errorKey]*codedError)
)

type codedError struct {
	key errorKey
	msg string
}

func (e *codedError) Error() string {
	return e.msg
}

type contextError struct {
	err     error
	context string
}

func (e *contextError) Error() string {
	return e.err.Error() + ": " + e.context
}

func (e *contextError) Unwrap() error {
	return e.err
}

// WithContext wraps err with a detail message. The wrapped error still
// matches err under Is and reports its code.
func WithContext(err error, context string) error {
	if context == "" {
		return err
	}
	return &contextError{err: err, context: context}
}

// Context returns the detail message attached by WithContext, if any.
func Context(err error) string {
	var ce *contextError
	if err != nil && As(err, &ce) {
		return ce.context
	}
	return ""
}

// New creates and registers a new error.
//
// Each module and code pair may only be registered once and the code must
// not be CodeNoError. Violations panic.
func New(module string, code uint32, msg string) error {
	if code == CodeNoError {
		panic(fmt.Errorf("errors: code %d is reserved", CodeNoError))
	}

	key := errorKey{module: module, code: code}

	registryLock.Lock()
	defer registryLock.Unlock()

	if prev, ok := registry[key]; ok {
		panic(fmt.Errorf("errors: %s already registered as '%s'", key, prev.msg))
	}
	e := &codedError{key: key, msg: msg}
	registry[key] = e

	return e
}

// Code returns the module and code of the given error. Errors that are not
// coded report the unknown error, and nil reports CodeNoError.
func Code(err error) (string, uint32) {
	if err == nil {
		return "", CodeNoError
	}

	ce := errUnknownError.(*codedError)
	_ = As(err, &ce)
	return ce.key.module, ce.key.code
}
