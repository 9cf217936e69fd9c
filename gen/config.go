// Package gen orchestrates a generation run: scan packages for entities,
// validate the model, and emit metamodel files through a sink.
package gen

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/querygen-dev/querygen/gen/golang"
)

// Config holds the configuration for a generation run. It can be built
// in code, loaded from a YAML file, or assembled from CLI flags; flags
// override file values.
type Config struct {
	// Packages are the Go package patterns to scan for entities.
	Packages []string `yaml:"packages" validate:"required,min=1,dive,required"`

	// OutDir is the directory generated files are written to.
	// Required for Generate; Check runs without it.
	OutDir string `yaml:"out_dir"`

	// OutPackage is the generated package name.
	// Defaults to the base name of OutDir.
	OutPackage string `yaml:"out_package"`

	// Discovery selects how entities are found: "directive" (default)
	// requires //querygen:entity on the type declaration, "all" takes
	// every exported struct in the scanned packages.
	Discovery string `yaml:"discovery" validate:"omitempty,oneof=directive all"`

	// TypeMappings overrides the descriptor kind for a fully qualified
	// Go type name, e.g. {"example.com/x.UUID": "String"}.
	TypeMappings map[string]string `yaml:"type_mappings" validate:"omitempty,dive,oneof=String Boolean Number Time Comparable Simple Ref Array Map"`

	// Format controls gofmt of generated files. Defaults to true.
	Format *bool `yaml:"format"`

	// Manifest controls writing manifest.json. Defaults to true.
	Manifest *bool `yaml:"manifest"`
}

var validate = validator.New()

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults returns a copy of cfg with defaults applied.
// The input is not mutated.
func applyDefaults(cfg *Config) *Config {
	result := *cfg

	if result.OutPackage == "" && result.OutDir != "" {
		result.OutPackage = golang.PackageName(result.OutDir)
	}
	if result.OutPackage == "" {
		result.OutPackage = "querymodel"
	}
	if result.Discovery == "" {
		result.Discovery = "directive"
	}
	if result.Format == nil {
		result.Format = boolPtr(true)
	}
	if result.Manifest == nil {
		result.Manifest = boolPtr(true)
	}

	return &result
}

func boolPtr(b bool) *bool { return &b }
