package directive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if _, ok := files["go.mod"]; !ok {
		files["go.mod"] = "module example.test\n\ngo 1.21\n"
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParse(t *testing.T) {
	// Disable go.work so temp directories work as standalone modules
	t.Setenv("GOWORK", "off")
	tests := []struct {
		name    string
		files   map[string]string
		want    []Directive
		wantErr string // expected error substring, empty if none
	}{
		{
			name: "uri const",
			files: map[string]string{
				"main.go": `package main

//stencil:uri
const getUserPath = "/users/{id}"
`,
			},
			want: []Directive{
				{Dialect: DialectURI, Name: "getUserPath", Template: "/users/{id}"},
			},
		},
		{
			name: "host prefix var",
			files: map[string]string{
				"main.go": `package main

//stencil:hostprefix
var dataHost = "{stage}-data."
`,
			},
			want: []Directive{
				{Dialect: DialectHostPrefix, Name: "dataHost", Template: "{stage}-data."},
			},
		},
		{
			name: "topic directions",
			files: map[string]string{
				"main.go": `package main

//stencil:topic publish
const readingTopic = "sensor/{id}/reading"

//stencil:topic subscribe
const readingFilter = "sensor/+/reading"
`,
			},
			want: []Directive{
				{Dialect: DialectTopicPublish, Name: "readingTopic", Template: "sensor/{id}/reading"},
				{Dialect: DialectTopicSubscribe, Name: "readingFilter", Template: "sensor/+/reading"},
			},
		},
		{
			name: "directive inside const block",
			files: map[string]string{
				"main.go": `package main

const (
	//stencil:uri
	listPath = "/users"

	other = 42
)
`,
			},
			want: []Directive{
				{Dialect: DialectURI, Name: "listPath", Template: "/users"},
			},
		},
		{
			name: "unknown directive",
			files: map[string]string{
				"main.go": `package main

//stencil:route
const p = "/users"
`,
			},
			wantErr: "unknown directive",
		},
		{
			name: "topic without direction",
			files: map[string]string{
				"main.go": `package main

//stencil:topic
const p = "a/b"
`,
			},
			wantErr: "requires a direction",
		},
		{
			name: "directive on non-string declaration",
			files: map[string]string{
				"main.go": `package main

//stencil:uri
const port = 8080
`,
			},
			wantErr: "string literal",
		},
		{
			name: "directive with no declaration",
			files: map[string]string{
				"main.go": `package main

//stencil:uri

func main() {}
`,
			},
			wantErr: "must be attached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writePackage(t, tt.files)
			result, err := ParseDir(".", dir)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseDir succeeded with %d directives, want error containing %q", len(result.Directives), tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDir: %v", err)
			}
			if len(result.Directives) != len(tt.want) {
				t.Fatalf("got %d directives, want %d: %+v", len(result.Directives), len(tt.want), result.Directives)
			}
			for i, want := range tt.want {
				got := result.Directives[i]
				if got.Dialect != want.Dialect || got.Name != want.Name || got.Template != want.Template {
					t.Errorf("directive[%d] = %+v, want %+v", i, got, want)
				}
			}
		})
	}
}

func TestDirectiveCheck(t *testing.T) {
	tests := []struct {
		dialect  Dialect
		template string
		wantErr  bool
	}{
		{DialectURI, "/users/{id}", false},
		{DialectURI, "/users/{id", true},
		{DialectHostPrefix, "{stage}-data.", false},
		{DialectHostPrefix, "{a}{b}", true},
		{DialectTopicPublish, "sensor/{id}", false},
		{DialectTopicPublish, "sensor/+", true},
		{DialectTopicSubscribe, "sensor/+", false},
		{DialectTopicSubscribe, "sensor/#/x", true},
	}

	for _, tt := range tests {
		d := Directive{Dialect: tt.dialect, Template: tt.template}
		err := d.Check()
		if (err != nil) != tt.wantErr {
			t.Errorf("Check(%s, %q) error = %v, wantErr %v", tt.dialect, tt.template, err, tt.wantErr)
		}
	}
}
