// Package directive parses stencil directives from Go source files.
//
// Directives are line comments in the form:
//
//	//stencil:uri
//	//stencil:hostprefix
//	//stencil:topic publish
//	//stencil:topic subscribe
//
// placed on a const or var declaration whose value is a string literal.
// The annotated template is validated with the matching dialect parser,
// so ill-formed templates are caught by `stencil check` instead of at
// runtime.
package directive

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/stencilkit/stencil"
	"github.com/stencilkit/stencil/topic"
)

// Dialect selects which parser validates an annotated template.
type Dialect string

const (
	DialectURI            Dialect = "uri"
	DialectHostPrefix     Dialect = "hostprefix"
	DialectTopicPublish   Dialect = "topic publish"
	DialectTopicSubscribe Dialect = "topic subscribe"
)

// Directive represents a parsed stencil directive bound to a string
// declaration.
type Directive struct {
	Dialect  Dialect
	Name     string         // name of the annotated const or var
	Template string         // the annotated string literal, unquoted
	Pos      token.Position // source location of the directive comment
}

// Check validates the directive's template with its dialect parser.
func (d Directive) Check() error {
	switch d.Dialect {
	case DialectURI:
		_, err := stencil.ParseURIPattern(d.Template)
		return err
	case DialectHostPrefix:
		_, err := stencil.ParseHostPrefix(d.Template)
		return err
	case DialectTopicPublish:
		_, err := topic.Parse(d.Template, topic.Publish)
		return err
	case DialectTopicSubscribe:
		_, err := topic.Parse(d.Template, topic.Subscribe)
		return err
	default:
		return fmt.Errorf("unknown dialect %q", d.Dialect)
	}
}

// Result contains all directives found in a package.
type Result struct {
	// Directives in source order per file.
	Directives []Directive

	// PackagePath is the import path of the parsed package.
	PackagePath string

	// Dir is the directory containing the package.
	Dir string
}

// Parse scans a Go package for stencil directives.
//
// The pattern follows go command semantics: "." for the current
// directory, an import path, or a directory path.
func Parse(pattern string) (*Result, error) {
	return ParseDir(pattern, "")
}

// ParseDir is like Parse but allows specifying a working directory.
// If dir is empty, the current directory is used.
func ParseDir(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{PackagePath: pkg.PkgPath}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	fset := token.NewFileSet()
	for _, filename := range pkg.GoFiles {
		f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}

		directives, err := parseFile(fset, f)
		if err != nil {
			return nil, err
		}
		result.Directives = append(result.Directives, directives...)
	}

	return result, nil
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	// Map comment group end positions to pending directives so they can
	// be matched to the following declarations.
	type pending struct {
		dialect Dialect
		pos     token.Position
	}
	commentToDirective := make(map[token.Pos]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, "//stencil:") {
				continue
			}

			text := strings.TrimPrefix(c.Text, "//stencil:")
			parts := strings.Fields(text)
			if len(parts) == 0 {
				continue
			}

			pos := fset.Position(c.Pos())
			switch parts[0] {
			case "uri":
				commentToDirective[cg.End()] = pending{dialect: DialectURI, pos: pos}
			case "hostprefix":
				commentToDirective[cg.End()] = pending{dialect: DialectHostPrefix, pos: pos}
			case "topic":
				if len(parts) < 2 || (parts[1] != "publish" && parts[1] != "subscribe") {
					return nil, fmt.Errorf("%s: //stencil:topic requires a direction, publish or subscribe", pos)
				}
				d := DialectTopicPublish
				if parts[1] == "subscribe" {
					d = DialectTopicSubscribe
				}
				commentToDirective[cg.End()] = pending{dialect: d, pos: pos}
			default:
				return nil, fmt.Errorf("%s: unknown directive //stencil:%s", pos, parts[0])
			}
		}
	}

	var directives []Directive
	bind := func(doc *ast.CommentGroup, spec *ast.ValueSpec) error {
		if doc == nil {
			return nil
		}
		p, ok := commentToDirective[doc.End()]
		if !ok {
			return nil
		}
		name, template, err := stringValue(spec)
		if err != nil {
			return fmt.Errorf("%s: %w", p.pos, err)
		}
		directives = append(directives, Directive{
			Dialect:  p.dialect,
			Name:     name,
			Template: template,
			Pos:      p.pos,
		})
		delete(commentToDirective, doc.End())
		return nil
	}

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || (gd.Tok != token.CONST && gd.Tok != token.VAR) {
			continue
		}

		// A directive may sit on the declaration group or on an
		// individual spec inside it.
		if gd.Doc != nil && len(gd.Specs) > 0 {
			if spec, ok := gd.Specs[0].(*ast.ValueSpec); ok {
				if err := bind(gd.Doc, spec); err != nil {
					return nil, err
				}
			}
		}
		for _, s := range gd.Specs {
			spec, ok := s.(*ast.ValueSpec)
			if !ok {
				continue
			}
			if err := bind(spec.Doc, spec); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range commentToDirective {
		return nil, fmt.Errorf("%s: //stencil:%s directive must be attached to a string const or var declaration", p.pos, p.dialect)
	}

	return directives, nil
}

// stringValue extracts the single name and string literal value of a
// value spec.
func stringValue(spec *ast.ValueSpec) (name, value string, err error) {
	if len(spec.Names) != 1 || len(spec.Values) != 1 {
		return "", "", fmt.Errorf("stencil directives require a single declaration with a string value")
	}
	lit, ok := spec.Values[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", "", fmt.Errorf("stencil directives require a string literal value")
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", "", fmt.Errorf("unquote %s: %w", lit.Value, err)
	}
	return spec.Names[0].Name, unquoted, nil
}
