package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/querygen-dev/querygen/gen/golang"
	"github.com/querygen-dev/querygen/gen/model"
	"github.com/querygen-dev/querygen/gen/provider"
	"github.com/querygen-dev/querygen/gen/sink"
)

// Version is stamped into manifests and logs. The CLI overrides it with
// the build version.
var Version = "devel"

// Result summarizes a generation run.
type Result struct {
	// RunID uniquely identifies this run in logs and the manifest.
	RunID string

	// Files are the relative paths written, sorted.
	Files []string

	// Entities is the number of entities generated.
	Entities int

	// Warnings are the non-fatal issues encountered while building the
	// model.
	Warnings []model.Warning
}

// Generate runs a full generation pass: build the entity model from
// source, validate it, and write one metamodel file per entity plus the
// manifest into cfg.OutDir.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	if cfg.OutDir == "" {
		return nil, fmt.Errorf("OutDir is required")
	}
	return generate(ctx, cfg, sink.NewFilesystemSink(cfg.OutDir), slog.Default())
}

// GenerateTo runs a generation pass into an arbitrary sink, for tests
// and dry runs.
func GenerateTo(ctx context.Context, cfg *Config, out sink.OutputSink, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return generate(ctx, cfg, out, logger)
}

func generate(ctx context.Context, cfg *Config, out sink.OutputSink, logger *slog.Logger) (*Result, error) {
	cfg = applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	logger = logger.With(slog.String("run_id", runID))

	logger.Info("generation started",
		slog.Any("packages", cfg.Packages),
		slog.String("package", cfg.OutPackage))

	schema, err := buildSchema(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	emitter := golang.NewEmitter(golang.Config{
		Package:      cfg.OutPackage,
		TypeMappings: cfg.TypeMappings,
		Format:       *cfg.Format,
	})

	var (
		mu    sync.Mutex
		files []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range schema.Entities {
		g.Go(func() error {
			name, content, err := emitter.EntityFile(e)
			if err != nil {
				return err
			}
			if err := out.WriteFile(gctx, name, content); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			mu.Lock()
			files = append(files, name)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if *cfg.Manifest {
		pkgPath, err := golang.PackagePath(cfg.OutDir)
		if err != nil {
			// Outside a module the import path is unknowable; the
			// manifest falls back to the bare package name.
			logger.Debug("import path not derivable", slog.Any("error", err))
			pkgPath = cfg.OutPackage
		}
		manifest, err := golang.BuildManifest(schema, pkgPath, Version, runID)
		if err != nil {
			return nil, err
		}
		if err := out.WriteFile(ctx, golang.ManifestName, manifest); err != nil {
			return nil, fmt.Errorf("write %s: %w", golang.ManifestName, err)
		}
		files = append(files, golang.ManifestName)
	}

	sort.Strings(files)

	logger.Info("generation completed",
		slog.Int("entities", len(schema.Entities)),
		slog.Int("files", len(files)),
		slog.Duration("duration", time.Since(start)))

	return &Result{
		RunID:    runID,
		Files:    files,
		Entities: len(schema.Entities),
		Warnings: schema.Warnings,
	}, nil
}

// CheckResult summarizes a validation-only pass.
type CheckResult struct {
	// Entities is the number of entities found.
	Entities int

	// Members is the total member count across entities.
	Members int

	// Warnings are the non-fatal issues encountered.
	Warnings []model.Warning
}

// Check builds and validates the entity model, then dry-runs member
// mapping so "all types resolvable" can be reported without writing any
// files.
func Check(ctx context.Context, cfg *Config) (*CheckResult, error) {
	return CheckWith(ctx, cfg, slog.Default())
}

// CheckWith is Check with an explicit logger.
func CheckWith(ctx context.Context, cfg *Config, logger *slog.Logger) (*CheckResult, error) {
	cfg = applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := buildSchema(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	emitter := golang.NewEmitter(golang.Config{
		Package:      cfg.OutPackage,
		TypeMappings: cfg.TypeMappings,
		Format:       *cfg.Format,
	})

	members := 0
	for _, e := range schema.Entities {
		if _, _, err := emitter.EntityFile(e); err != nil {
			return nil, err
		}
		members += len(e.Properties)
	}

	return &CheckResult{
		Entities: len(schema.Entities),
		Members:  members,
		Warnings: schema.Warnings,
	}, nil
}

// buildSchema runs the provider and schema validation shared by Generate
// and Check.
func buildSchema(ctx context.Context, cfg *Config, logger *slog.Logger) (*model.Schema, error) {
	p := &provider.SourceProvider{Logger: logger}
	schema, err := p.Build(ctx, provider.Options{
		Packages:    cfg.Packages,
		AllExported: cfg.Discovery == "all",
	})
	if err != nil {
		return nil, fmt.Errorf("build entity model: %w", err)
	}

	if errs := schema.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid entity model: %w", errors.Join(errs...))
	}

	for _, w := range schema.Warnings {
		logger.Warn("model warning",
			slog.String("code", w.Code),
			slog.String("message", w.Message),
			slog.String("type", w.TypeName))
	}

	return schema, nil
}
