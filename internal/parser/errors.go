package parser

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFeatureTitle = errors.New("missing feature title")
	ErrUnknownDialect      = errors.New("unknown dialect")
	ErrEmptyScenarioName   = errors.New("empty scenario name")
	ErrNoSteps             = errors.New("scenario has no steps")
)

// normalizeError keeps a readable message while matching one of the
// sentinel errors above with errors.Is.
type normalizeError struct {
	kind error
	msg  string
}

func (e *normalizeError) Error() string { return e.msg }
func (e *normalizeError) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) error {
	return &normalizeError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// SyntaxError is a grammar failure reduced to the parser's single
// diagnostic line, e.g. "docs/login.md (3:5): expected: ...".
type SyntaxError struct {
	File    string
	Message string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return e.File + " " + e.Message
	}
	return e.Message
}
