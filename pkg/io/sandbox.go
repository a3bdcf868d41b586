package io

import (
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kgviz/pkg/errors"
)

// DefaultFilename replaces a file name that sanitizes to nothing.
const DefaultFilename = "output.json"

var (
	separatorRegex  = regexp.MustCompile(`[\\/]`)
	unsafeCharRegex = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// SanitizeFilename strips path separators and replaces every character
// outside [A-Za-z0-9_.-] with an underscore. An empty result becomes
// [DefaultFilename].
func SanitizeFilename(name string) string {
	name = separatorRegex.ReplaceAllString(name, "")
	name = unsafeCharRegex.ReplaceAllString(name, "_")
	if name == "" {
		return DefaultFilename
	}
	return name
}

// Sandbox confines document reads and writes to a root directory.
type Sandbox struct {
	root   string
	logger *log.Logger
}

// NewSandbox creates a sandbox rooted at root. The root is made absolute and,
// when it exists, resolved through symlinks.
func NewSandbox(root string, logger *log.Logger) (*Sandbox, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve root %s", root)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Sandbox{root: abs, logger: logger}, nil
}

// Root returns the absolute root directory.
func (s *Sandbox) Root() string { return s.root }

// Resolve returns the absolute, cleaned form of path. Relative paths are
// resolved against the root. Paths outside the root fail with INVALID_PATH.
func (s *Sandbox) Resolve(path string) (string, error) {
	if strings.ContainsRune(path, '\x00') {
		return "", errors.New(errors.ErrCodeInvalidPath, "path contains a null byte")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	path = filepath.Clean(path)
	if !s.contains(path) {
		return "", errors.New(errors.ErrCodeInvalidPath,
			"access to file outside allowed directory is not permitted: %s", path)
	}

	// The path, or for a file not yet written its directory, must also stay
	// inside the root once symlinks are followed.
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		if dir, derr := filepath.EvalSymlinks(filepath.Dir(path)); derr == nil {
			real = filepath.Join(dir, filepath.Base(path))
		} else {
			real = path
		}
	}
	if !s.contains(real) {
		return "", errors.New(errors.ErrCodeInvalidPath, "path traversal detected: %s", path)
	}
	return path, nil
}

func (s *Sandbox) contains(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
