// Package stencil parses and validates segmented template patterns: the
// brace-delimited micro-language used by service API models for HTTP URI
// paths, endpoint host prefixes, and (via the topic subpackage) MQTT
// topics.
//
// A pattern is a series of segments, some of which may be labels. Labels
// appear in the form "{label}". Labels must not repeat, and label names
// must contain only letters, digits, and underscores. Greedy labels, a
// specialized form written "{label+}", may match multiple trailing path
// levels; at most one greedy label may exist and it must be the last
// label in the pattern. Dialects may disable greedy labels.
//
// Every type in this package is an immutable value: once constructed, a
// Pattern may be read concurrently without synchronization, and
// construction either yields a validated object or an
// *InvalidPatternError — never a partially valid pattern.
package stencil

// SegmentKind distinguishes literal text from label placeholders.
type SegmentKind int

const (
	// SegmentLiteral is verbatim text containing no braces.
	SegmentLiteral SegmentKind = iota

	// SegmentLabel is a named placeholder matching a single level.
	SegmentLabel

	// SegmentGreedyLabel is a named placeholder matching one or more
	// trailing levels.
	SegmentGreedyLabel
)

// String returns the kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLabel:
		return "label"
	case SegmentGreedyLabel:
		return "greedy label"
	default:
		return "literal"
	}
}

// Segment is one literal or placeholder unit of a pattern.
//
// Segments are immutable values. Two segments are equal when their
// rendered forms (see String) are equal; the struct is comparable, so ==
// implements exactly that.
type Segment struct {
	content string
	kind    SegmentKind
}

// NewSegment constructs a segment, validating its content.
//
// Literal content must be non-empty and contain neither `{` nor `}`.
// Label content is the bare name (no braces) and must be a non-empty run
// of letters, digits, and underscores. Validation always runs here, so an
// ill-formed name fails even when the caller classified the token itself.
func NewSegment(content string, kind SegmentKind) (Segment, error) {
	if kind == SegmentLiteral {
		if content == "" {
			return Segment{}, patternErr(KindEmptySegment, content, content,
				"Segments must not be empty")
		}
		for i := 0; i < len(content); i++ {
			if content[i] == '{' || content[i] == '}' {
				return Segment{}, patternErr(KindIllegalLiteralCharacter, content, content,
					"Literal segments must not contain `{` or `}` characters. Found segment `%s`", content)
			}
		}
		return Segment{content: content, kind: kind}, nil
	}

	if content == "" {
		return Segment{}, patternErr(KindEmptySegment, content, content,
			"Empty label declaration in pattern")
	}
	if !validLabelName(content) {
		return Segment{}, patternErr(KindInvalidLabelName, content, content,
			"Invalid label name in pattern: '%s'. Label names must contain only letters, digits, and underscores", content)
	}
	return Segment{content: content, kind: kind}, nil
}

// ParseSegment classifies one token of a pattern and validates it.
//
// A token is a label iff it is at least two characters long, starts with
// `{`, and ends with `}`; a `+` immediately before the closing brace
// marks a greedy label. Everything else is a literal, so an unclosed
// token like "{foo" is rejected as a literal containing `{`.
func ParseSegment(token string) (Segment, error) {
	if len(token) >= 2 && token[0] == '{' && token[len(token)-1] == '}' {
		if token[len(token)-2] == '+' {
			return NewSegment(token[1:len(token)-2], SegmentGreedyLabel)
		}
		return NewSegment(token[1:len(token)-1], SegmentLabel)
	}
	return NewSegment(token, SegmentLiteral)
}

// Content returns the literal text for literals, and the bare label name
// for labels and greedy labels. For "{label+}" the content is "label".
func (s Segment) Content() string {
	return s.content
}

// Kind returns the segment kind.
func (s Segment) Kind() SegmentKind {
	return s.kind
}

// IsLabel reports whether the segment is a label of either form.
func (s Segment) IsLabel() bool {
	return s.kind != SegmentLiteral
}

// IsGreedyLabel reports whether the segment is a greedy label.
func (s Segment) IsGreedyLabel() bool {
	return s.kind == SegmentGreedyLabel
}

// String renders the segment as it appears in a pattern: braces restored
// for labels, `+` restored for greedy labels, literals verbatim.
func (s Segment) String() string {
	switch s.kind {
	case SegmentGreedyLabel:
		return "{" + s.content + "+}"
	case SegmentLabel:
		return "{" + s.content + "}"
	default:
		return s.content
	}
}

// validLabelName reports whether name is a non-empty run of ASCII
// letters, digits, and underscores. A direct byte scan keeps the check
// locale-independent.
func validLabelName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

// foldLabel lowercases ASCII letters only. Label names are validated to
// the ASCII alphabet, so this is a total case-fold for comparison keys.
func foldLabel(name string) string {
	b := []byte(name)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return name
	}
	return string(b)
}
