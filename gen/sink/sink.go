// Package sink provides output destinations for generated files.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// OutputSink receives generated file content.
// Implementations MUST be safe for concurrent calls; generation writes
// entity files in parallel.
type OutputSink interface {
	// WriteFile writes content to the specified path.
	// The path is relative; the sink determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes to a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, returns an error when a file exists.
	Overwrite bool
}

// NewFilesystemSink creates a FilesystemSink writing under root.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

// WriteFile writes content to path within the root directory.
// Parent directories are created as needed; the write is atomic via a
// temp file plus rename, so concurrent writers and interrupted runs never
// leave a half-written file at the target path.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	// Re-check for traversal after joining with the root.
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return fmt.Errorf("resolve root directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return fmt.Errorf("path escapes root directory: %q", path)
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tmp, err := os.CreateTemp(dir, ".querygen-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	// Leftover temp files carry a predictable prefix for manual cleanup;
	// removal errors on the failure paths below are not actionable.
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, fullPath); err != nil {
			cleanup()
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	}

	// os.Link fails atomically when the target exists, avoiding the
	// TOCTOU race of stat-then-rename.
	if err := os.Link(tmpPath, fullPath); err != nil {
		cleanup()
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file already exists: %q", path)
		}
		return fmt.Errorf("create file: %w", err)
	}
	_ = os.Remove(tmpPath)
	return nil
}

// MemorySink stores generated files in memory, for tests and dry runs.
// All operations are thread-safe.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile writes content to the in-memory store.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cp := make([]byte, len(content))
	copy(cp, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = cp
	return nil
}

// Files returns a copy of all written files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		cp := make([]byte, len(content))
		copy(cp, content)
		out[path] = cp
	}
	return out
}

// Get returns the content of a single file, or nil if not found.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}

// ValidatePath checks if a path is valid for output.
// Paths MUST be relative, use / as separator, contain no .. components,
// and be clean.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive-letter paths are absolute even when this runs on Unix.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	cleaned := filepath.Clean(filepath.ToSlash(path))
	if cleaned != filepath.ToSlash(path) {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
