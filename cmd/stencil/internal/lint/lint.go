// Package lint implements `stencil lint`: load a manifest file and
// report every invalid template in it.
package lint

import (
	"fmt"
	"os"

	"github.com/stencilkit/stencil/manifest"
)

type Cmd struct {
	Manifest string `arg:"" help:"Manifest file to validate." type:"existingfile"`
}

func (c *Cmd) Run() error {
	model, errs := manifest.Load(c.Manifest)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("%s: %d invalid templates", c.Manifest, len(errs))
	}

	var services, operations int
	for _, svc := range model.Services {
		services++
		operations += len(svc.Operations)
	}
	fmt.Printf("%s: %d services, %d operations, all templates valid\n", c.Manifest, services, operations)
	return nil
}
