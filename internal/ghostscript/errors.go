// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"errors"
	"fmt"
	"strings"
)

// Library and session errors. All are returned wrapped; match them with
// errors.Is.
var (
	ErrLibraryNotFound      = errors.New("interpreter library not found")
	ErrLibraryLoad          = errors.New("interpreter library failed to load")
	ErrArchitectureMismatch = errors.New("interpreter library built for a different architecture")
	ErrSymbolMissing        = errors.New("interpreter library is missing an entry point")
	ErrInstanceCreation     = errors.New("interpreter instance creation failed")
	ErrSessionState         = errors.New("interpreter session used out of order")
	ErrInvalidArgument      = errors.New("argument contains a NUL byte")
)

// InterpreterError is returned when a run ends with a failing return code.
// Args is the argument vector the interpreter was started with.
type InterpreterError struct {
	Code ReturnCode
	Args []string
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("interpreter failed: %s (%d) args=[%s]",
		e.Code.Message(), e.Code.Value, strings.Join(e.Args, " "))
}

// CodeOf maps err to the return code recorded for it. nil yields CodeOK;
// unrecognized errors yield CodeUnknownError.
func CodeOf(err error) ReturnCode {
	if err == nil {
		return Classify(CodeOK)
	}
	var ie *InterpreterError
	switch {
	case errors.As(err, &ie):
		return ie.Code
	case errors.Is(err, ErrLibraryNotFound):
		return Classify(CodeLibraryNotFound)
	case errors.Is(err, ErrLibraryLoad), errors.Is(err, ErrArchitectureMismatch), errors.Is(err, ErrSymbolMissing):
		return Classify(CodeLibraryLoadFailed)
	default:
		return Classify(CodeUnknownError)
	}
}
