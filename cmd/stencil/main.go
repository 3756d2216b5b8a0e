package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/stencilkit/stencil/cmd/stencil/internal/check"
	"github.com/stencilkit/stencil/cmd/stencil/internal/lint"
	"github.com/stencilkit/stencil/cmd/stencil/internal/parse"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Check   check.Cmd  `cmd:"" help:"Validate //stencil: annotated templates in Go packages."`
	Lint    lint.Cmd   `cmd:"" help:"Validate every template in a manifest file."`
	Parse   parse.Cmd  `cmd:"" help:"Parse a single template and print its structure."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stencil"),
		kong.Description("Stencil CLI for validating service API template patterns."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
