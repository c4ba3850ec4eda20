package pkg

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a chain of errors ordered from innermost to outermost.
//
// Sentinels declared with [MakeErrorf] are wrapped with context and tested
// with [errors.Is]:
//
//	err := pkg.ErrReadConfig.Wrap(io.ErrUnexpectedEOF)
//	errors.Is(err, pkg.ErrReadConfig) // true
type Error []error

// Sentinel errors of the config package and the CLI.
var (
	// ErrReadConfig is returned when a configuration file cannot be read.
	ErrReadConfig = MakeErrorf("failed to read config")
	// ErrParseConfig is returned when a configuration file is not valid YAML
	// or does not match the configuration schema.
	ErrParseConfig = MakeErrorf("invalid config")
	// ErrWriteConfig is returned when a configuration file cannot be written.
	ErrWriteConfig = MakeErrorf("failed to write config")
	// ErrConfigExists is returned when a configuration file would be
	// overwritten without being forced.
	ErrConfigExists = MakeErrorf("config file exists")
	// ErrWatchConfig is returned when a configuration file cannot be watched.
	ErrWatchConfig = MakeErrorf("failed to watch config")
	// ErrInvalidLevel is returned when a level name or number does not
	// resolve to a logging level.
	ErrInvalidLevel = MakeErrorf("invalid level")
	// ErrInvalidFormat is returned when an output format is not supported.
	ErrInvalidFormat = MakeErrorf("invalid format")
	// ErrReadSource is returned when a namespace source cannot be read.
	ErrReadSource = MakeErrorf("failed to read source")
	// ErrCompileFilter is returned when a filter expression does not compile.
	ErrCompileFilter = MakeErrorf("invalid filter expression")
	// ErrEvalFilter is returned when a filter expression fails at run time.
	ErrEvalFilter = MakeErrorf("filter evaluation failed")
	// ErrMarshal is returned when output cannot be encoded.
	ErrMarshal = MakeErrorf("marshal error")
)

// MakeError constructs an Error from errs, flattening any chains they carry.
// The first argument is the innermost error. Nil errors are skipped.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		e = append(e, UnwrapErrors(err)...)
	}

	return e
}

// MakeErrorf constructs an Error from a formatted message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the messages of the chain, innermost first, with ": ".
func (e Error) Error() string {
	msgs := make([]string, 0, len(e))

	for _, err := range e {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, ": ")
}

// Wrap returns a copy of e with errs appended as outer errors.
func (e Error) Wrap(errs ...error) Error {
	return append(e[:len(e):len(e)], MakeError(errs...)...)
}

// Wrapf returns a copy of e with a formatted error appended.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the errors of the chain.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target is an Error whose chain appears contiguously
// in e, so a wrapped sentinel still matches the sentinel itself.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) || len(t) == 0 {
		return false
	}

	for start := 0; start+len(t) <= len(e); start++ {
		if e[start:start+len(t)].hasPrefix(t) {
			return true
		}
	}

	return false
}

func (e Error) hasPrefix(t Error) bool {
	for i := range t {
		if !errors.Is(e[i], t[i]) {
			return false
		}
	}

	return true
}

// UnwrapErrors flattens the chain of err, innermost first, ending with err
// itself. An Error is replaced by its flattened elements.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	var chain Error

	switch e := err.(type) {
	case Error:
		for _, wrapped := range e {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}

		return chain

	case interface{ Unwrap() []error }:
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}

	case interface{ Unwrap() error }:
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
