package config

import "fmt"

// Error reports invalid configuration. Source names where the bad value came
// from: a flag, an environment variable or a config file.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(source string, format string, args ...any) *Error {
	return &Error{Source: source, Err: fmt.Errorf(format, args...)}
}
