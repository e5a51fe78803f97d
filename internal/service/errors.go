package service

import "fmt"

// NotFoundError signals that a resolvable identifier or a named filter had
// no match. The message names what was searched for.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

// NewNotFound creates a NotFoundError with a formatted message
func NewNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidInputError signals a malformed identifier or parameter
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string {
	return e.Msg
}

// NewInvalidInput creates an InvalidInputError with a formatted message
func NewInvalidInput(format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}
