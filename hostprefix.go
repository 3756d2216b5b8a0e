package stencil

import "strings"

// ParseHostPrefix parses an endpoint host-prefix template such as
// "{stage}-data." into a validated Pattern.
//
// Host prefixes are stricter than the generic grammar: greedy labels are
// never permitted, and two labels must be separated by at least one
// literal character ("{foo}{bar}" is rejected). Unlike URI patterns,
// host prefixes have no separator, so the token stream is produced by a
// character scan over the raw text.
func ParseHostPrefix(s string) (*Pattern, error) {
	if s == "" {
		return nil, patternErr(KindEmptySegment, s, s,
			"Host prefix must not be empty")
	}

	tokens, err := splitHostPrefix(s)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(tokens))
	for _, tok := range tokens {
		seg, err := ParseSegment(tok)
		if err != nil {
			return nil, reclassify(err, s)
		}
		segments = append(segments, seg)
	}

	p, err := Build(s, segments, Options{AllowsGreedyLabels: false})
	if err != nil {
		return nil, err
	}

	// Adjacency is a property of the raw token split: two label tokens
	// with zero literal characters between them in the source text.
	for i := 1; i < len(tokens); i++ {
		if isLabelToken(tokens[i-1]) && isLabelToken(tokens[i]) {
			return nil, patternErr(KindAdjacentLabels, tokens[i], s,
				"Host labels must not be adjacent in pattern: %s", s)
		}
	}

	return p, nil
}

// splitHostPrefix splits a host prefix into alternating literal and
// label tokens, diagnosing brace misuse with host-specific messages.
func splitHostPrefix(s string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(s); {
		if s[i] == '{' {
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, patternErr(KindIllegalLiteralCharacter, s[i:], s,
					"Unclosed label found in pattern: %s", s)
			}
			tokens = append(tokens, s[i:i+end+1])
			i += end + 1
			continue
		}

		start := i
		for i < len(s) && s[i] != '{' {
			if s[i] == '}' {
				return nil, patternErr(KindIllegalLiteralCharacter, "}", s,
					"Literal segments must not contain `}` characters. Found in pattern: %s", s)
			}
			i++
		}
		tokens = append(tokens, s[start:i])
	}
	return tokens, nil
}

// isLabelToken reports whether a token produced by splitHostPrefix is a
// label span. The splitter guarantees every `{` token is brace-complete.
func isLabelToken(tok string) bool {
	return strings.HasPrefix(tok, "{")
}

// reclassify rewrites a segment-level error so it carries the full host
// prefix as the pattern text rather than the lone token.
func reclassify(err error, pattern string) error {
	if pe, ok := err.(*InvalidPatternError); ok {
		clone := *pe
		clone.Pattern = pattern
		return &clone
	}
	return err
}
