package cli

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the command engine can report.
type ErrorKind int

const (
	FormatError ErrorKind = iota
	TypeError
	ValueError
	NameInUseError
	LetterInUseError
	WordInUseError
	AmbiguousParameterError
	CommandExistsError
	CannotAddParametersError
	InsufficientPermissionsError
	CommandNotFoundError
	NotExecutableError
	UnexpectedArgumentError
	ExpectedArgumentsError
	UnexpectedWordError
	UnexpectedLetterError
	InvalidOptionError
)

var kindNames = map[ErrorKind]string{
	FormatError:                  "format error",
	TypeError:                    "type error",
	ValueError:                   "value error",
	NameInUseError:               "name in use",
	LetterInUseError:             "letter in use",
	WordInUseError:               "word in use",
	AmbiguousParameterError:      "ambiguous parameter",
	CommandExistsError:           "command exists",
	CannotAddParametersError:     "cannot add parameters",
	InsufficientPermissionsError: "insufficient permissions",
	CommandNotFoundError:         "command not found",
	NotExecutableError:           "command not executable",
	UnexpectedArgumentError:      "unexpected argument",
	ExpectedArgumentsError:       "expected arguments",
	UnexpectedWordError:          "unexpected word",
	UnexpectedLetterError:        "unexpected letter",
	InvalidOptionError:           "invalid option",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by every registration and dispatch step of the engine.
// Message is meant to be shown to the chat user as is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...)}
}

// prefixed keeps the kind of err and puts context in front of its message.
// Errors that did not come from the engine are returned untouched.
func prefixed(err error, format string, v ...interface{}) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	return &Error{Kind: e.Kind, Message: fmt.Sprintf(format, v...) + " " + e.Message}
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of an engine error and false for any other error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
