// Package check implements `stencil check`: scan Go packages for
// //stencil: directives and validate the annotated templates.
package check

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/stencilkit/stencil/internal/directive"
)

type Cmd struct {
	Packages []string `arg:"" optional:"" help:"Packages to scan (default: current directory)."`
	Verbose  bool     `help:"Log every template checked." short:"v"`
}

func (c *Cmd) Run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	patterns := c.Packages
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var checked, failed int
	for _, pattern := range patterns {
		result, err := directive.Parse(pattern)
		if err != nil {
			return fmt.Errorf("scan %s: %w", pattern, err)
		}

		for _, d := range result.Directives {
			checked++
			if err := d.Check(); err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %s %s: %v\n", d.Pos, d.Name, d.Dialect, err)
				continue
			}
			if c.Verbose {
				logger.Info("template ok",
					slog.String("name", d.Name),
					slog.String("dialect", string(d.Dialect)),
					slog.String("template", d.Template))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d templates invalid", failed, checked)
	}
	fmt.Printf("checked %d templates\n", checked)
	return nil
}
