package golang

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// PackagePath derives the import path of dir from the nearest enclosing
// go.mod: the module path plus dir's path relative to the module root.
// The manifest records it so tooling knows what the generated package is
// importable as.
func PackagePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	root := abs
	for {
		candidate := filepath.Join(root, "go.mod")
		if _, err := os.Stat(candidate); err == nil {
			data, err := os.ReadFile(candidate)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", candidate, err)
			}
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", fmt.Errorf("no module path in %s", candidate)
			}
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", fmt.Errorf("relativize %s: %w", abs, err)
			}
			if rel == "." {
				return modPath, nil
			}
			return modPath + "/" + filepath.ToSlash(rel), nil
		}

		parent := filepath.Dir(root)
		if parent == root {
			return "", fmt.Errorf("no go.mod found above %s", abs)
		}
		root = parent
	}
}

// PackageName derives a Go package name from an import path or directory.
func PackageName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	return sanitizeIdent(strings.ToLower(base))
}
