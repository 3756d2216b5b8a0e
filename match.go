package stencil

import "strings"

// Values holds label values captured while matching a concrete path
// against a URI pattern. The map shape matches url.Values so captured
// values can be merged with query parameters and decoded together.
type Values map[string][]string

// Get returns the first value captured for the named label, or "".
func (v Values) Get(name string) string {
	if vs := v[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Match tests a concrete request path (no query string) against the
// pattern and captures label values.
//
// Literal segments match byte-for-byte, a label captures exactly one
// non-empty path level, and a greedy label captures one or more
// remaining levels joined by "/". Match never fails with an error; a
// path that does not fit reports ok=false.
func (p *URIPattern) Match(path string) (Values, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}

	var levels []string
	if path != "/" {
		levels = strings.Split(path[1:], "/")
	}

	segs := p.segments
	greedyAt := -1
	for i, s := range segs {
		if s.IsGreedyLabel() {
			greedyAt = i
			break
		}
	}

	if greedyAt < 0 {
		if len(levels) != len(segs) {
			return nil, false
		}
		return matchRun(segs, levels)
	}

	// Prefix before the greedy label, suffix after it, greedy takes the
	// middle. The greedy label must capture at least one level.
	suffix := segs[greedyAt+1:]
	if len(levels) < len(segs) {
		return nil, false
	}

	values, ok := matchRun(segs[:greedyAt], levels[:greedyAt])
	if !ok {
		return nil, false
	}
	tailStart := len(levels) - len(suffix)
	tail, ok := matchRun(suffix, levels[tailStart:])
	if !ok {
		return nil, false
	}

	middle := levels[greedyAt:tailStart]
	for _, lvl := range middle {
		if lvl == "" {
			return nil, false
		}
	}
	values[segs[greedyAt].Content()] = []string{strings.Join(middle, "/")}
	for k, v := range tail {
		values[k] = v
	}
	return values, true
}

// matchRun matches equal-length runs of segments and levels.
func matchRun(segs []Segment, levels []string) (Values, bool) {
	values := make(Values, len(segs))
	for i, s := range segs {
		switch {
		case s.IsLabel():
			if levels[i] == "" {
				return nil, false
			}
			values[s.Content()] = []string{levels[i]}
		default:
			if s.Content() != levels[i] {
				return nil, false
			}
		}
	}
	return values, true
}
