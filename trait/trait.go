// Package trait holds the template-bearing traits a model loader
// attaches to services and operations: endpoint host prefixes, HTTP
// bindings, and MQTT publish/subscribe topics.
//
// Each trait keeps its canonical string value from the model document
// and a parsed, validated view of it. Construction is atomic: an invalid
// template yields a *ModelError carrying the trait identity and the
// document location, and no trait object.
package trait

import (
	"fmt"
)

// SourceLocation points into the model document a trait value came from.
// The zero value means the location is unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// String renders the location as file:line:column, or "<unknown>".
func (l SourceLocation) String() string {
	if l.File == "" && l.Line == 0 {
		return "<unknown>"
	}
	file := l.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// ModelError is a template failure promoted to a model-loading error:
// the underlying parse failure plus the trait that owns the template and
// where in the document it was declared.
type ModelError struct {
	TraitID  string
	Location SourceLocation
	Err      error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("trait %s at %s: %v", e.TraitID, e.Location, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// StringTrait is the common shape of traits whose document value is a
// single string.
type StringTrait struct {
	// ID identifies the trait, e.g. "endpoint" or "mqttPublish".
	ID string

	// Value is the canonical string value from the model document.
	Value string

	// Location is where the value was declared.
	Location SourceLocation
}

func modelErr(id string, loc SourceLocation, err error) *ModelError {
	return &ModelError{TraitID: id, Location: loc, Err: err}
}
