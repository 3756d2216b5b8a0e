// Package manifest loads service/operation declarations and their
// template traits from a YAML document.
//
// Template values are decoded as yaml.Node so every validation failure
// can point at the exact file, line, and column of the offending
// template. Building a model collects every trait error in the document
// rather than stopping at the first.
package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stencilkit/stencil/trait"
)

var validate = validator.New()

// Document is the raw YAML shape of a manifest.
type Document struct {
	Version  string        `yaml:"version" validate:"required"`
	Services []ServiceDecl `yaml:"services" validate:"dive"`
}

// ServiceDecl declares one service and its operations.
type ServiceDecl struct {
	Name       string          `yaml:"name" validate:"required"`
	HostPrefix yaml.Node       `yaml:"hostPrefix" validate:"-"`
	Operations []OperationDecl `yaml:"operations" validate:"dive"`
}

// OperationDecl declares one operation and its protocol bindings.
type OperationDecl struct {
	Name      string    `yaml:"name" validate:"required"`
	HTTP      *HTTPDecl `yaml:"http"`
	Publish   yaml.Node `yaml:"mqttPublish" validate:"-"`
	Subscribe yaml.Node `yaml:"mqttSubscribe" validate:"-"`
}

// HTTPDecl is the raw http binding.
type HTTPDecl struct {
	Method string    `yaml:"method"`
	URI    yaml.Node `yaml:"uri" validate:"-"`
	Code   int       `yaml:"code"`
}

// Model is a fully validated manifest: every template parsed and every
// trait constructed.
type Model struct {
	Version  string
	Services []Service
}

// Service is a validated service declaration.
type Service struct {
	Name       string
	Endpoint   *trait.Endpoint
	Operations []Operation
}

// Operation is a validated operation declaration.
type Operation struct {
	Name      string
	HTTP      *trait.HTTP
	Publish   *trait.Publish
	Subscribe *trait.Subscribe
}

// Load reads, decodes, and builds a manifest file. All trait failures in
// the document are returned together.
func Load(path string) (*Model, []error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, []error{err}
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, []error{err}
	}
	return doc.Build(path)
}

// Decode reads a Document from YAML, rejecting unknown fields and
// checking the structural requirements (version, names).
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &doc, nil
}

// Build constructs every trait in the document, collecting all errors.
// On any failure the model is nil: partially valid models are never
// returned.
func (d *Document) Build(file string) (*Model, []error) {
	var errs []error

	model := &Model{Version: d.Version}
	for _, sd := range d.Services {
		svc := Service{Name: sd.Name}

		if value, ok := scalar(&sd.HostPrefix); ok {
			ep, err := trait.NewEndpoint(value, locOf(file, &sd.HostPrefix))
			if err != nil {
				errs = append(errs, err)
			} else {
				svc.Endpoint = ep
			}
		}

		for _, od := range sd.Operations {
			op, opErrs := buildOperation(file, od)
			errs = append(errs, opErrs...)
			svc.Operations = append(svc.Operations, op)
		}
		model.Services = append(model.Services, svc)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return model, nil
}

func buildOperation(file string, od OperationDecl) (Operation, []error) {
	var errs []error
	op := Operation{Name: od.Name}

	if od.HTTP != nil {
		uri, _ := scalar(&od.HTTP.URI)
		cfg := trait.HTTPConfig{Method: od.HTTP.Method, URI: uri, Code: od.HTTP.Code}
		h, err := trait.NewHTTP(cfg, locOf(file, &od.HTTP.URI))
		if err != nil {
			errs = append(errs, err)
		} else {
			op.HTTP = h
		}
	}

	if value, ok := scalar(&od.Publish); ok {
		pub, err := trait.NewPublish(value, locOf(file, &od.Publish))
		if err != nil {
			errs = append(errs, err)
		} else {
			op.Publish = pub
		}
	}

	if value, ok := scalar(&od.Subscribe); ok {
		sub, err := trait.NewSubscribe(value, locOf(file, &od.Subscribe))
		if err != nil {
			errs = append(errs, err)
		} else {
			op.Subscribe = sub
		}
	}

	return op, errs
}

// scalar returns the string value of a present scalar node.
func scalar(n *yaml.Node) (string, bool) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

func locOf(file string, n *yaml.Node) trait.SourceLocation {
	return trait.SourceLocation{File: file, Line: n.Line, Column: n.Column}
}
