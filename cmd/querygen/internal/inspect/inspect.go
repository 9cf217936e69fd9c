package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/querygen-dev/querygen/cmd/querygen/internal/conf"
	"github.com/querygen-dev/querygen/devtools"
	qgen "github.com/querygen-dev/querygen/gen"
	"github.com/querygen-dev/querygen/gen/provider"
	"github.com/querygen-dev/querygen/middleware"
)

type Cmd struct {
	Packages []string `arg:"" optional:"" help:"Package patterns to scan (default: from config, else \".\")."`
	Config   string   `help:"Configuration file (default: querygen.yaml if present)." short:"c"`
	Port     int      `help:"Port to listen on." default:"9000" short:"p"`
	All      bool     `help:"Take every exported struct, not only annotated ones."`
}

func (c *Cmd) Run() error {
	cfg, err := conf.Load(c.Config)
	if err != nil {
		return err
	}
	conf.ApplyPackages(cfg, c.Packages)

	logger := slog.Default()
	p := &provider.SourceProvider{Logger: logger}
	schema, err := p.Build(context.Background(), provider.Options{
		Packages:    cfg.Packages,
		AllExported: c.All || cfg.Discovery == "all",
	})
	if err != nil {
		return fmt.Errorf("build entity model: %w", err)
	}

	srv := devtools.NewServer(schema, qgen.Version, logger)
	handler := middleware.Logging(logger)(middleware.CORS(nil)(srv))

	addr := fmt.Sprintf("localhost:%d", c.Port)
	fmt.Printf("querygen inspect listening on http://%s/devtools/entities\n", addr)
	return http.ListenAndServe(addr, handler)
}
