package check

import (
	"context"
	"fmt"

	"github.com/querygen-dev/querygen/cmd/querygen/internal/conf"
	qgen "github.com/querygen-dev/querygen/gen"
)

type Cmd struct {
	Packages []string `arg:"" optional:"" help:"Package patterns to scan (default: from config, else \".\")."`
	Config   string   `help:"Configuration file (default: querygen.yaml if present)." short:"c"`
	All      bool     `help:"Take every exported struct, not only annotated ones."`
}

func (c *Cmd) Run() error {
	cfg, err := conf.Load(c.Config)
	if err != nil {
		return err
	}
	conf.ApplyPackages(cfg, c.Packages)
	if c.All {
		cfg.Discovery = "all"
	}

	result, err := qgen.Check(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %d entities, %d members\n", result.Entities, result.Members)
	fmt.Println("✓ All types resolvable")
	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s: %s\n", w.Code, w.Message)
	}
	return nil
}
