// Package parse implements `stencil parse`: parse one template and
// print its segments or levels.
package parse

import (
	"fmt"

	"github.com/stencilkit/stencil"
	"github.com/stencilkit/stencil/topic"
)

type Cmd struct {
	Dialect  string `help:"Template dialect." enum:"uri,host,topic-pub,topic-sub" default:"uri"`
	Template string `arg:"" help:"Template to parse."`
}

func (c *Cmd) Run() error {
	switch c.Dialect {
	case "host":
		p, err := stencil.ParseHostPrefix(c.Template)
		if err != nil {
			return err
		}
		for _, seg := range p.Segments() {
			fmt.Printf("%-22s %s\n", seg.Kind(), seg.Content())
		}
		return nil
	case "topic-pub", "topic-sub":
		d := topic.Publish
		if c.Dialect == "topic-sub" {
			d = topic.Subscribe
		}
		t, err := topic.Parse(c.Template, d)
		if err != nil {
			return err
		}
		for _, lvl := range t.Levels() {
			fmt.Printf("%-22s %s\n", lvl.Kind(), lvl.Content())
		}
		return nil
	default:
		p, err := stencil.ParseURIPattern(c.Template)
		if err != nil {
			return err
		}
		for _, seg := range p.Segments() {
			fmt.Printf("%-22s %s\n", seg.Kind(), seg.Content())
		}
		for _, q := range p.QueryLiterals() {
			fmt.Printf("%-22s %s=%s\n", "query literal", q.Key, q.Value)
		}
		return nil
	}
}
