// Package conf loads CLI configuration: an optional querygen.yaml plus
// flag overrides.
package conf

import (
	"os"

	"github.com/querygen-dev/querygen/gen"
)

// DefaultFile is the configuration file picked up from the working
// directory when --config is not given.
const DefaultFile = "querygen.yaml"

// Load reads the configuration file at path. An empty path falls back to
// DefaultFile if present, otherwise an empty configuration.
func Load(path string) (*gen.Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return &gen.Config{}, nil
		}
		path = DefaultFile
	}
	return gen.LoadConfig(path)
}

// ApplyPackages overrides the configured package patterns with the ones
// given on the command line. With neither, the current directory is
// scanned.
func ApplyPackages(cfg *gen.Config, packages []string) {
	if len(packages) > 0 {
		cfg.Packages = packages
	}
	if len(cfg.Packages) == 0 {
		cfg.Packages = []string{"."}
	}
}
