package trait

import (
	"github.com/stencilkit/stencil"
)

// EndpointID identifies the endpoint trait.
const EndpointID = "endpoint"

// Endpoint modifies the host a client resolves for an operation by
// prepending a host-prefix template, e.g. "{stage}-data.".
type Endpoint struct {
	StringTrait
	prefix *stencil.Pattern
}

// NewEndpoint parses and validates the host-prefix template. The parsed
// pattern is cached alongside the canonical string value.
func NewEndpoint(hostPrefix string, loc SourceLocation) (*Endpoint, error) {
	p, err := stencil.ParseHostPrefix(hostPrefix)
	if err != nil {
		return nil, modelErr(EndpointID, loc, err)
	}
	return &Endpoint{
		StringTrait: StringTrait{ID: EndpointID, Value: hostPrefix, Location: loc},
		prefix:      p,
	}, nil
}

// HostPrefix returns the parsed host-prefix pattern.
func (t *Endpoint) HostPrefix() *stencil.Pattern {
	return t.prefix
}
