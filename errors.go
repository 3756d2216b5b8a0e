package stencil

import (
	"errors"
	"fmt"
)

// ErrorKind is a machine-readable classification of a template failure.
// Callers match on kinds rather than message text.
type ErrorKind string

const (
	// KindEmptySegment indicates a literal or label token with no content.
	KindEmptySegment ErrorKind = "empty_segment"

	// KindInvalidLabelName indicates a label whose name falls outside
	// [A-Za-z0-9_]+.
	KindInvalidLabelName ErrorKind = "invalid_label_name"

	// KindIllegalLiteralCharacter indicates a literal containing `{` or `}`.
	// Unclosed and stray braces surface through this kind.
	KindIllegalLiteralCharacter ErrorKind = "illegal_literal_character"

	// KindDuplicateLabel indicates two labels sharing a case-insensitive name.
	KindDuplicateLabel ErrorKind = "duplicate_label"

	// KindGreedyLabelNotLast indicates a greedy label followed by another label.
	KindGreedyLabelNotLast ErrorKind = "greedy_label_not_last"

	// KindMultipleGreedyLabels indicates more than one greedy label.
	KindMultipleGreedyLabels ErrorKind = "multiple_greedy_labels"

	// KindGreedyLabelNotAllowed indicates a greedy label in a dialect that
	// forbids the form entirely.
	KindGreedyLabelNotAllowed ErrorKind = "greedy_label_not_allowed"

	// KindAdjacentLabels indicates two host-prefix labels with no literal
	// characters between them.
	KindAdjacentLabels ErrorKind = "adjacent_labels"

	// KindIllegalWildcard indicates an MQTT wildcard where the topic
	// direction forbids it, or a multi-level wildcard before the final level.
	KindIllegalWildcard ErrorKind = "illegal_wildcard"
)

// InvalidPatternError describes why a template failed to parse or validate.
// Construction of a Pattern or Topic is atomic: on failure the only result
// is this error, carrying the offending content and the full source text.
type InvalidPatternError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Offending is the segment, label name, or topic level that triggered
	// the failure. May equal Pattern for whole-template failures.
	Offending string

	// Pattern is the full source text of the template being parsed.
	Pattern string

	// Message is the human-readable diagnosis, surfaced verbatim to users.
	Message string
}

func (e *InvalidPatternError) Error() string {
	return e.Message
}

// Is reports whether target is an *InvalidPatternError with the same kind,
// so tests can use errors.Is with a kind-only sentinel.
func (e *InvalidPatternError) Is(target error) bool {
	var other *InvalidPatternError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// ErrKind returns the ErrorKind of err if it is (or wraps) an
// *InvalidPatternError, and "" otherwise.
func ErrKind(err error) ErrorKind {
	var pe *InvalidPatternError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func patternErr(kind ErrorKind, offending, pattern, format string, args ...any) *InvalidPatternError {
	return &InvalidPatternError{
		Kind:      kind,
		Offending: offending,
		Pattern:   pattern,
		Message:   fmt.Sprintf(format, args...),
	}
}
