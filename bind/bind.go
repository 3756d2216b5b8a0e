// Package bind decodes values captured by URI pattern matching into Go
// structs.
//
// Captured label values share the url.Values shape, so path captures and
// query string parameters decode through the same machinery. Struct
// fields are selected by the "schema" tag:
//
//	type GetFileRequest struct {
//		ID   int    `schema:"id"`
//		Path string `schema:"path"`
//	}
package bind

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/stencilkit/stencil"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	// Structs often carry fields beyond the pattern's labels.
	d.IgnoreUnknownKeys(true)
	return d
}

// Decode populates dst from values captured by URIPattern.Match.
func Decode(values stencil.Values, dst any) error {
	return decoder.Decode(dst, values)
}

// Request matches a request path against the pattern and decodes the
// captured labels together with the query parameters into dst. Captured
// labels win over query parameters of the same name.
func Request(p *stencil.URIPattern, path string, query url.Values, dst any) error {
	captured, ok := p.Match(path)
	if !ok {
		return fmt.Errorf("path %q does not match pattern %s", path, p)
	}

	merged := make(map[string][]string, len(captured)+len(query))
	for k, v := range query {
		merged[k] = v
	}
	for k, v := range captured {
		merged[k] = v
	}
	return decoder.Decode(dst, merged)
}
