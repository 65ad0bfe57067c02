package use

import (
	"fmt"
)

func Err(message string) *Error {
	return &Error{message: message}
}

// InputErr reports a problem with an example document; index is the document position in the source, -1 if unknown.
func InputErr(message string, source string, index int) *Error {
	return &Error{message: message, source: source, index: index}
}

type Error struct {
	message string

	source string
	index  int
}

func (e *Error) Error() string {
	m := e.message
	if len(e.source) > 0 {
		m += fmt.Sprintf(" source: %s", e.source)
	}
	if e.index >= 0 && len(e.source) > 0 {
		m += fmt.Sprintf(" document: %d", e.index)
	}
	return m
}
