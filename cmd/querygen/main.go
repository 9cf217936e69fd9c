package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	qgen "github.com/querygen-dev/querygen/gen"

	"github.com/querygen-dev/querygen/cmd/querygen/internal/check"
	"github.com/querygen-dev/querygen/cmd/querygen/internal/gen"
	"github.com/querygen-dev/querygen/cmd/querygen/internal/inspect"
)

type CLI struct {
	Version VersionCmd  `cmd:"" help:"Print version information."`
	Gen     gen.Cmd     `cmd:"" help:"Generate query metamodels."`
	Check   check.Cmd   `cmd:"" help:"Validate the entity model without writing files."`
	Inspect inspect.Cmd `cmd:"" help:"Serve the entity model over HTTP for inspection."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	qgen.Version = Version()

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("querygen"),
		kong.Description("Generate typed query metamodels from annotated Go structs."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
