package stencil

import "strings"

// QueryLiteral is one literal key or key=value parameter from the query
// string of a URI pattern.
type QueryLiteral struct {
	Key   string
	Value string
}

// URIPattern is a pattern for HTTP request URIs: a slash-separated path
// of segments, optionally followed by literal query string parameters.
// Greedy labels are permitted in the path; labels are forbidden in the
// query string.
type URIPattern struct {
	Pattern
	query []QueryLiteral
}

// ParseURIPattern parses a URI template such as
// "/users/{id}/files/{path+}?archived=true".
//
// The path must begin with "/", must not contain empty segments, and
// must not contain a "#" fragment. Query parameters after "?" are
// literal "key" or "key=value" pairs; labels must not appear there and
// keys must not repeat.
func ParseURIPattern(s string) (*URIPattern, error) {
	if s == "" {
		return nil, patternErr(KindEmptySegment, s, s,
			"URI pattern must not be empty")
	}
	if strings.Contains(s, "#") {
		return nil, patternErr(KindIllegalLiteralCharacter, "#", s,
			"URI pattern must not contain a fragment: %s", s)
	}

	path, rawQuery, hasQuery := strings.Cut(s, "?")
	if !strings.HasPrefix(path, "/") {
		return nil, patternErr(KindIllegalLiteralCharacter, path, s,
			"URI pattern must start with '/': %s", s)
	}

	var segments []Segment
	if path != "/" {
		for _, tok := range strings.Split(path[1:], "/") {
			seg, err := ParseSegment(tok)
			if err != nil {
				return nil, reclassify(err, s)
			}
			segments = append(segments, seg)
		}
	}

	query, err := parseQueryLiterals(rawQuery, hasQuery, s)
	if err != nil {
		return nil, err
	}

	p, err := Build(s, segments, Options{AllowsGreedyLabels: true})
	if err != nil {
		return nil, err
	}
	return &URIPattern{Pattern: *p, query: query}, nil
}

func parseQueryLiterals(rawQuery string, hasQuery bool, source string) ([]QueryLiteral, error) {
	if !hasQuery {
		return nil, nil
	}

	var query []QueryLiteral
	seen := make(map[string]bool)
	for _, param := range strings.Split(rawQuery, "&") {
		if param == "" {
			return nil, patternErr(KindEmptySegment, param, source,
				"Literal query parameters must not be empty: %s", source)
		}
		if strings.ContainsAny(param, "{}") {
			return nil, patternErr(KindIllegalLiteralCharacter, param, source,
				"Labels must not appear in the query string: %s", source)
		}
		key, value, _ := strings.Cut(param, "=")
		if key == "" {
			return nil, patternErr(KindEmptySegment, param, source,
				"Literal query parameters must not be empty: %s", source)
		}
		if seen[key] {
			return nil, patternErr(KindDuplicateLabel, key, source,
				"Literal query parameters must not be repeated: %s", source)
		}
		seen[key] = true
		query = append(query, QueryLiteral{Key: key, Value: value})
	}
	return query, nil
}

// QueryLiterals returns the literal query parameters, in order. The
// returned slice is a copy.
func (p *URIPattern) QueryLiterals() []QueryLiteral {
	return append([]QueryLiteral(nil), p.query...)
}

// Conflicts reports whether two URI patterns could match the same
// concrete request path. Labels and greedy labels are treated as
// matching anything at their position; query literals are ignored since
// they do not narrow the path.
func (p *URIPattern) Conflicts(other *URIPattern) bool {
	a, b := p.segments, other.segments
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].IsGreedyLabel() || b[i].IsGreedyLabel() {
			return true
		}
		if !a[i].IsLabel() && !b[i].IsLabel() && a[i].Content() != b[i].Content() {
			return false
		}
	}
	return len(a) == len(b)
}
