package trait

import (
	"github.com/go-playground/validator/v10"

	"github.com/stencilkit/stencil"
)

// HTTPID identifies the http binding trait.
const HTTPID = "http"

var validate = validator.New()

// HTTPConfig holds the raw values of an http binding trait as they
// appear in the model document.
type HTTPConfig struct {
	// Method is the HTTP request method.
	Method string `yaml:"method" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`

	// URI is the request URI template, e.g. "/users/{id}".
	URI string `yaml:"uri" validate:"required"`

	// Code is the successful response status code. Zero means 200.
	Code int `yaml:"code,omitempty" validate:"omitempty,gte=100,lt=600"`
}

// HTTP binds an operation to an HTTP method, URI pattern, and response
// code.
type HTTP struct {
	Config   HTTPConfig
	Location SourceLocation

	uri *stencil.URIPattern
}

// NewHTTP validates the trait configuration and parses its URI template.
func NewHTTP(cfg HTTPConfig, loc SourceLocation) (*HTTP, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, modelErr(HTTPID, loc, err)
	}
	u, err := stencil.ParseURIPattern(cfg.URI)
	if err != nil {
		return nil, modelErr(HTTPID, loc, err)
	}
	if cfg.Code == 0 {
		cfg.Code = 200
	}
	return &HTTP{Config: cfg, Location: loc, uri: u}, nil
}

// URI returns the parsed URI pattern.
func (t *HTTP) URI() *stencil.URIPattern {
	return t.uri
}
