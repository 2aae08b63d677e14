package collate

import "errors"

var (
	// ErrInvalidInput marks malformed or empty per-batch input.
	ErrInvalidInput = errors.New("collate: invalid input")
	// ErrConfiguration marks an invalid collator configuration.
	ErrConfiguration = errors.New("collate: invalid configuration")
)

type invalidInputError struct {
	msg string
}

func (e invalidInputError) Error() string {
	return e.msg
}

func (e invalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func newInvalidInput(msg string) error {
	return invalidInputError{msg: msg}
}

type configurationError struct {
	msg string
}

func (e configurationError) Error() string {
	return e.msg
}

func (e configurationError) Unwrap() error {
	return ErrConfiguration
}

func newConfigurationError(msg string) error {
	return configurationError{msg: msg}
}
