package stencil

import (
	"testing"
)

func TestParseURIPattern(t *testing.T) {
	tests := []struct {
		name        string
		uri         string
		wantErrKind ErrorKind
	}{
		{name: "root", uri: "/"},
		{name: "literals", uri: "/users/all"},
		{name: "label", uri: "/users/{id}"},
		{name: "greedy label", uri: "/files/{path+}"},
		{name: "literal after greedy", uri: "/files/{path+}/manifest"},
		{name: "query literal", uri: "/users?archived=true"},
		{name: "bare query key", uri: "/users?list"},
		{name: "multiple query literals", uri: "/users?archived=true&limit=10"},
		{
			name:        "empty",
			uri:         "",
			wantErrKind: KindEmptySegment,
		},
		{
			name:        "missing leading slash",
			uri:         "users/{id}",
			wantErrKind: KindIllegalLiteralCharacter,
		},
		{
			name:        "empty segment",
			uri:         "/users//files",
			wantErrKind: KindEmptySegment,
		},
		{
			name:        "trailing slash",
			uri:         "/users/",
			wantErrKind: KindEmptySegment,
		},
		{
			name:        "fragment",
			uri:         "/users#top",
			wantErrKind: KindIllegalLiteralCharacter,
		},
		{
			name:        "unclosed label",
			uri:         "/users/{id",
			wantErrKind: KindIllegalLiteralCharacter,
		},
		{
			name:        "label in query string",
			uri:         "/users?id={id}",
			wantErrKind: KindIllegalLiteralCharacter,
		},
		{
			name:        "repeated query key",
			uri:         "/users?a=1&a=2",
			wantErrKind: KindDuplicateLabel,
		},
		{
			name:        "empty query parameter",
			uri:         "/users?",
			wantErrKind: KindEmptySegment,
		},
		{
			name:        "duplicate path labels",
			uri:         "/a/{x}/b/{X}",
			wantErrKind: KindDuplicateLabel,
		},
		{
			name:        "label after greedy label",
			uri:         "/{path+}/{id}",
			wantErrKind: KindGreedyLabelNotLast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseURIPattern(tt.uri)
			if tt.wantErrKind != "" {
				if err == nil {
					t.Fatalf("ParseURIPattern(%q) = %v, want error kind %s", tt.uri, p, tt.wantErrKind)
				}
				if got := ErrKind(err); got != tt.wantErrKind {
					t.Fatalf("ParseURIPattern(%q) error kind = %s, want %s (err: %v)", tt.uri, got, tt.wantErrKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURIPattern(%q): %v", tt.uri, err)
			}
			if p.String() != tt.uri {
				t.Errorf("String() = %q, want %q", p.String(), tt.uri)
			}
		})
	}
}

func TestURIPatternQueryLiterals(t *testing.T) {
	p, err := ParseURIPattern("/users/{id}?archived=true&list")
	if err != nil {
		t.Fatal(err)
	}
	got := p.QueryLiterals()
	want := []QueryLiteral{{Key: "archived", Value: "true"}, {Key: "list"}}
	if len(got) != len(want) {
		t.Fatalf("QueryLiterals() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("query[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, ok := p.Label("id"); !ok {
		t.Error("Label(id) not found on URI pattern")
	}
}

func TestURIPatternConflicts(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"/users/{id}", "/users/all", true},
		{"/users/{id}", "/posts/{id}", false},
		{"/users/{id}", "/users/{name}", true},
		{"/users", "/users/{id}", false},
		{"/files/{path+}", "/files/a/b/c", true},
		{"/files/{path+}", "/users", false},
		{"/a/b", "/a/b", true},
		{"/", "/", true},
		{"/", "/a", false},
	}

	for _, tt := range tests {
		a, err := ParseURIPattern(tt.a)
		if err != nil {
			t.Fatalf("ParseURIPattern(%q): %v", tt.a, err)
		}
		b, err := ParseURIPattern(tt.b)
		if err != nil {
			t.Fatalf("ParseURIPattern(%q): %v", tt.b, err)
		}
		if got := a.Conflicts(b); got != tt.want {
			t.Errorf("Conflicts(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := b.Conflicts(a); got != tt.want {
			t.Errorf("Conflicts(%q, %q) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestURIPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    map[string]string // nil means no match
	}{
		{"/users/{id}", "/users/42", map[string]string{"id": "42"}},
		{"/users/{id}", "/users", nil},
		{"/users/{id}", "/users/42/extra", nil},
		{"/users/{id}", "/posts/42", nil},
		{"/users/all", "/users/all", map[string]string{}},
		{"/users/all", "/users/ALL", nil},
		{"/", "/", map[string]string{}},
		{"/files/{path+}", "/files/a/b/c", map[string]string{"path": "a/b/c"}},
		{"/files/{path+}", "/files/a", map[string]string{"path": "a"}},
		{"/files/{path+}", "/files", nil},
		{"/files/{path+}/manifest", "/files/a/b/manifest", map[string]string{"path": "a/b"}},
		{"/files/{path+}/manifest", "/files/manifest", nil},
		{"/{v}/files/{path+}", "/v2/files/x/y", map[string]string{"v": "v2", "path": "x/y"}},
		{"/users/{id}", "/users/", nil},
	}

	for _, tt := range tests {
		p, err := ParseURIPattern(tt.pattern)
		if err != nil {
			t.Fatalf("ParseURIPattern(%q): %v", tt.pattern, err)
		}
		values, ok := p.Match(tt.path)
		if tt.want == nil {
			if ok {
				t.Errorf("Match(%q, %q) = %v, want no match", tt.pattern, tt.path, values)
			}
			continue
		}
		if !ok {
			t.Errorf("Match(%q, %q) failed, want %v", tt.pattern, tt.path, tt.want)
			continue
		}
		if len(values) != len(tt.want) {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.path, values, tt.want)
			continue
		}
		for k, v := range tt.want {
			if values.Get(k) != v {
				t.Errorf("Match(%q, %q)[%s] = %q, want %q", tt.pattern, tt.path, k, values.Get(k), v)
			}
		}
	}
}
