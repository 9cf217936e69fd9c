package gen

import (
	"context"
	"fmt"

	"github.com/querygen-dev/querygen/cmd/querygen/internal/conf"
	qgen "github.com/querygen-dev/querygen/gen"
)

type Cmd struct {
	Out        string   `arg:"" help:"Output directory for generated files."`
	Packages   []string `arg:"" optional:"" help:"Package patterns to scan (default: from config, else \".\")."`
	Config     string   `help:"Configuration file (default: querygen.yaml if present)." short:"c"`
	Package    string   `help:"Generated package name (default: base name of the output directory)." short:"p"`
	All        bool     `help:"Take every exported struct, not only annotated ones."`
	NoFormat   bool     `help:"Skip gofmt on generated files."`
	NoManifest bool     `help:"Skip writing manifest.json."`
}

func (c *Cmd) Run() error {
	cfg, err := conf.Load(c.Config)
	if err != nil {
		return err
	}
	conf.ApplyPackages(cfg, c.Packages)

	cfg.OutDir = c.Out
	if c.Package != "" {
		cfg.OutPackage = c.Package
	}
	if c.All {
		cfg.Discovery = "all"
	}
	if c.NoFormat {
		f := false
		cfg.Format = &f
	}
	if c.NoManifest {
		m := false
		cfg.Manifest = &m
	}

	result, err := qgen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %d entities, %d files written to %s\n",
		result.Entities, len(result.Files), c.Out)
	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s: %s\n", w.Code, w.Message)
	}
	return nil
}
