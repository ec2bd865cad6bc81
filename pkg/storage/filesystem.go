package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a stored path escapes the upload root.
var ErrOutsideRoot = errors.New("path resolves outside upload root")

// UploadStore persists course material on disk under a fixed upload root.
type UploadStore struct {
	baseDir string
}

// NewUploadStore ensures the upload root exists and returns a handle.
func NewUploadStore(baseDir string) (*UploadStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &UploadStore{baseDir: abs}, nil
}

// SaveStream copies from reader into a new file under the upload root and
// returns the stored root-relative locator.
func (s *UploadStore) SaveStream(name string, r io.Reader) (string, error) {
	abs, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	file, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	return filepath.ToSlash(name), nil
}

// Resolve canonicalises a stored locator against the upload root. Locators
// written by older tooling may carry backslash separators; those are
// normalised first. The canonical path must fall strictly within the root.
func (s *UploadStore) Resolve(stored string) (string, error) {
	normalized := strings.ReplaceAll(stored, "\\", "/")
	joined := normalized
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(s.baseDir, filepath.FromSlash(normalized))
	}
	abs, err := filepath.Abs(filepath.Clean(joined))
	if err != nil {
		return "", fmt.Errorf("canonicalise path: %w", err)
	}
	if !strings.HasPrefix(abs, s.baseDir+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return abs, nil
}

// Exists reports whether the canonical path is present on disk.
func (s *UploadStore) Exists(absPath string) bool {
	info, err := os.Stat(absPath)
	return err == nil && !info.IsDir()
}

// Open returns a read-only handle for the canonical path.
func (s *UploadStore) Open(absPath string) (*os.File, error) {
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

// BaseDir exposes the absolute upload root (useful for debugging).
func (s *UploadStore) BaseDir() string {
	return s.baseDir
}
