// Package topic parses and validates MQTT topic templates for service
// API models.
//
// A topic template is a series of '/'-delimited levels. A level may be a
// literal, a "{name}" label, the single-level wildcard "+", or the
// multi-level wildcard "#". Which wildcards are legal depends on the
// direction the topic is used in: publish topics allow none, subscribe
// filters allow both, with "#" restricted to the final level. Label
// naming and uniqueness rules are shared with the stencil pattern
// grammar; topics have no greedy label form.
package topic

import (
	"strings"

	"github.com/stencilkit/stencil"
)

// LevelKind classifies one level of a topic template.
type LevelKind int

const (
	// LevelLiteral is verbatim text containing no braces.
	LevelLiteral LevelKind = iota

	// LevelLabel is a named placeholder for a single level.
	LevelLabel

	// LevelSingleWildcard is the MQTT "+" wildcard matching exactly one
	// level.
	LevelSingleWildcard

	// LevelMultiWildcard is the MQTT "#" wildcard matching all remaining
	// levels.
	LevelMultiWildcard
)

// String returns the kind name.
func (k LevelKind) String() string {
	switch k {
	case LevelLabel:
		return "label"
	case LevelSingleWildcard:
		return "single-level wildcard"
	case LevelMultiWildcard:
		return "multi-level wildcard"
	default:
		return "literal"
	}
}

// Level is one '/'-delimited unit of a topic template. Levels are
// immutable comparable values, equal when their rendered forms are equal.
type Level struct {
	content string
	kind    LevelKind
}

// Content returns the literal text for literals and the bare label name
// for labels. Wildcard levels return their wildcard character.
func (l Level) Content() string {
	return l.content
}

// Kind returns the level kind.
func (l Level) Kind() LevelKind {
	return l.kind
}

// IsLabel reports whether the level is a label.
func (l Level) IsLabel() bool {
	return l.kind == LevelLabel
}

// IsWildcard reports whether the level is a wildcard of either kind.
func (l Level) IsWildcard() bool {
	return l.kind == LevelSingleWildcard || l.kind == LevelMultiWildcard
}

// String renders the level as it appears in a topic template.
func (l Level) String() string {
	if l.kind == LevelLabel {
		return "{" + l.content + "}"
	}
	return l.content
}

// Direction distinguishes publish topics from subscribe filters.
type Direction int

const (
	// Publish topics name a single concrete destination; wildcards are
	// forbidden.
	Publish Direction = iota

	// Subscribe filters may use "+" at any level and "#" as the final
	// level.
	Subscribe
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Subscribe {
		return "subscribe"
	}
	return "publish"
}

// Topic is a validated MQTT topic template: the original source string
// plus its classified levels. Topics are immutable and safe for
// concurrent use.
type Topic struct {
	source    string
	direction Direction
	levels    []Level
}

// Parse splits a topic template into levels, classifies each one, and
// enforces the direction's wildcard rules. Label uniqueness is
// case-insensitive, exactly as for patterns. Failures are reported as
// *stencil.InvalidPatternError with kind
// stencil.KindIllegalWildcard for direction violations.
func Parse(s string, d Direction) (*Topic, error) {
	if s == "" {
		return nil, &stencil.InvalidPatternError{
			Kind:      stencil.KindEmptySegment,
			Offending: s,
			Pattern:   s,
			Message:   "Topics must not be empty",
		}
	}

	parts := strings.Split(s, "/")
	levels := make([]Level, 0, len(parts))
	seen := make(map[string]bool)
	for i, part := range parts {
		switch part {
		case "+":
			if d == Publish {
				return nil, wildcardErr(part, s, "Wildcard levels are not allowed in publish topics: "+s)
			}
			levels = append(levels, Level{content: part, kind: LevelSingleWildcard})
		case "#":
			if d == Publish {
				return nil, wildcardErr(part, s, "Wildcard levels are not allowed in publish topics: "+s)
			}
			if i != len(parts)-1 {
				return nil, wildcardErr(part, s, "A multi-level wildcard must be the last level of its topic: "+s)
			}
			levels = append(levels, Level{content: part, kind: LevelMultiWildcard})
		default:
			lvl, err := parseLevel(part, s)
			if err != nil {
				return nil, err
			}
			if lvl.IsLabel() {
				key := strings.ToLower(lvl.content)
				if seen[key] {
					return nil, &stencil.InvalidPatternError{
						Kind:      stencil.KindDuplicateLabel,
						Offending: lvl.content,
						Pattern:   s,
						Message:   "Label `" + lvl.content + "` is defined more than once in topic: " + s,
					}
				}
				seen[key] = true
			}
			levels = append(levels, lvl)
		}
	}

	return &Topic{source: s, direction: d, levels: levels}, nil
}

// parseLevel classifies a non-wildcard level as a label or literal,
// reusing the pattern grammar's content validation. Topics have no
// greedy form, so "{name+}" fails label-name validation here rather than
// being recognized.
func parseLevel(part, source string) (Level, error) {
	if len(part) >= 2 && part[0] == '{' && part[len(part)-1] == '}' {
		name := part[1 : len(part)-1]
		if _, err := stencil.NewSegment(name, stencil.SegmentLabel); err != nil {
			return Level{}, rescope(err, source)
		}
		return Level{content: name, kind: LevelLabel}, nil
	}
	if _, err := stencil.NewSegment(part, stencil.SegmentLiteral); err != nil {
		return Level{}, rescope(err, source)
	}
	return Level{content: part, kind: LevelLiteral}, nil
}

func wildcardErr(offending, pattern, message string) *stencil.InvalidPatternError {
	return &stencil.InvalidPatternError{
		Kind:      stencil.KindIllegalWildcard,
		Offending: offending,
		Pattern:   pattern,
		Message:   message,
	}
}

// rescope rewrites a level error to carry the whole topic as its pattern
// text.
func rescope(err error, source string) error {
	if pe, ok := err.(*stencil.InvalidPatternError); ok {
		clone := *pe
		clone.Pattern = source
		return &clone
	}
	return err
}

// String returns the original source text of the topic.
func (t *Topic) String() string {
	return t.source
}

// Direction returns the direction the topic was parsed for.
func (t *Topic) Direction() Direction {
	return t.direction
}

// Levels returns all levels, in order. The returned slice is a copy.
func (t *Topic) Levels() []Level {
	return append([]Level(nil), t.levels...)
}

// Labels returns the label levels, in order.
func (t *Topic) Labels() []Level {
	var labels []Level
	for _, l := range t.levels {
		if l.IsLabel() {
			labels = append(labels, l)
		}
	}
	return labels
}

// Label looks up a label level by case-insensitive name.
func (t *Topic) Label(name string) (Level, bool) {
	key := strings.ToLower(name)
	for _, l := range t.levels {
		if l.IsLabel() && strings.ToLower(l.content) == key {
			return l, true
		}
	}
	return Level{}, false
}

// Equal reports whether two topics were parsed from the same source text
// in the same direction.
func (t *Topic) Equal(other *Topic) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.source == other.source && t.direction == other.direction
}

// Conflicts reports whether two topic templates could resolve to the
// same concrete topic. Labels and "+" act as single-level matchers and
// "#" as a match-all suffix, so "sensor/{id}/state" conflicts with
// "sensor/+/state" and with "sensor/#" but not with "sensor/{id}/event".
func (t *Topic) Conflicts(other *Topic) bool {
	a, b := t.levels, other.levels
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].kind == LevelMultiWildcard || b[i].kind == LevelMultiWildcard {
			return true
		}
		if a[i].kind == LevelLiteral && b[i].kind == LevelLiteral && a[i].content != b[i].content {
			return false
		}
	}
	return len(a) == len(b)
}
