package stencil

// Options control dialect-specific constraints applied when building a
// pattern.
type Options struct {
	// AllowsGreedyLabels permits the "{name+}" form. When false, any
	// greedy label anywhere in the pattern is rejected.
	AllowsGreedyLabels bool
}

// Pattern is a validated, ordered sequence of segments plus the original
// source text it was parsed from.
//
// A Pattern is immutable: all structural rules are checked once during
// Build and the query methods are pure projections that cannot fail.
type Pattern struct {
	source   string
	segments []Segment
}

// Build validates segments against the cross-segment rules and returns an
// immutable Pattern.
//
// The rules, in order: no two labels may share a case-insensitive name;
// when greedy labels are allowed, at most one may exist and it must be
// the last label (literals may follow it); when greedy labels are
// disallowed, any greedy segment is an immediate failure.
func Build(source string, segments []Segment, opts Options) (*Pattern, error) {
	if err := checkDuplicateLabels(source, segments); err != nil {
		return nil, err
	}
	if opts.AllowsGreedyLabels {
		if err := checkGreedyPlacement(source, segments); err != nil {
			return nil, err
		}
	} else {
		for _, s := range segments {
			if s.IsGreedyLabel() {
				return nil, patternErr(KindGreedyLabelNotAllowed, s.Content(), source,
					"Pattern must not contain a greedy label. Found %s", source)
			}
		}
	}
	return &Pattern{
		source:   source,
		segments: append([]Segment(nil), segments...),
	}, nil
}

func checkDuplicateLabels(source string, segments []Segment) error {
	seen := make(map[string]bool)
	for _, s := range segments {
		if !s.IsLabel() {
			continue
		}
		key := foldLabel(s.Content())
		if seen[key] {
			return patternErr(KindDuplicateLabel, s.Content(), source,
				"Label `%s` is defined more than once in pattern: %s", s.Content(), source)
		}
		seen[key] = true
	}
	return nil
}

func checkGreedyPlacement(source string, segments []Segment) error {
	for i, s := range segments {
		if !s.IsGreedyLabel() {
			continue
		}
		for _, later := range segments[i+1:] {
			if later.IsGreedyLabel() {
				return patternErr(KindMultipleGreedyLabels, later.Content(), source,
					"At most one greedy label segment may exist in a pattern: %s", source)
			}
			if later.IsLabel() {
				return patternErr(KindGreedyLabelNotLast, s.Content(), source,
					"A greedy label must be the last label in its pattern: %s", source)
			}
		}
	}
	return nil
}

// String returns the original source text of the pattern.
func (p *Pattern) String() string {
	return p.source
}

// Segments returns all segments, in order. The returned slice is a copy.
func (p *Pattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Labels returns the label segments (including any greedy label), in order.
func (p *Pattern) Labels() []Segment {
	var labels []Segment
	for _, s := range p.segments {
		if s.IsLabel() {
			labels = append(labels, s)
		}
	}
	return labels
}

// Label looks up a label segment by case-insensitive name.
func (p *Pattern) Label(name string) (Segment, bool) {
	key := foldLabel(name)
	for _, s := range p.segments {
		if s.IsLabel() && foldLabel(s.Content()) == key {
			return s, true
		}
	}
	return Segment{}, false
}

// GreedyLabel returns the greedy label segment, if present.
func (p *Pattern) GreedyLabel() (Segment, bool) {
	for _, s := range p.segments {
		if s.IsGreedyLabel() {
			return s, true
		}
	}
	return Segment{}, false
}

// Equal reports whether two patterns were parsed from the same canonical
// source text. Segment structure is fully determined by the source, so
// text equality is structural equality.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.source == other.source
}
