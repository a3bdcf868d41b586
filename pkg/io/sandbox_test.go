package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/kgviz/pkg/errors"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"d3_graph.json", "d3_graph.json"},
		{"my graph.json", "my_graph.json"},
		{"../../etc/passwd", "....etcpasswd"},
		{`..\..\win.ini`, "....win.ini"},
		{"graph?<>|.json", "graph____.json"},
		{"köln.json", "k_ln.json"},
		{"", DefaultFilename},
		{"///", DefaultFilename},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	sb, err := NewSandbox(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewSandbox() error: %v", err)
	}
	return sb
}

func TestSandboxResolve(t *testing.T) {
	sb := newTestSandbox(t)
	root := sb.Root()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"relative", "graph.json", filepath.Join(root, "graph.json"), false},
		{"nested", "data/graph.json", filepath.Join(root, "data", "graph.json"), false},
		{"dot segments inside", "data/../graph.json", filepath.Join(root, "graph.json"), false},
		{"absolute inside", filepath.Join(root, "graph.json"), filepath.Join(root, "graph.json"), false},
		{"root itself", ".", root, false},

		{"parent", "../graph.json", "", true},
		{"deep parent", "data/../../graph.json", "", true},
		{"absolute outside", "/etc/passwd", "", true},
		{"null byte", "graph\x00.json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sb.Resolve(tt.path)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidPath) {
					t.Fatalf("Resolve(%q) error = %v, want INVALID_PATH", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSandboxResolveSiblingPrefix(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "data")
	sibling := filepath.Join(parent, "database")
	for _, d := range []string{root, sibling} {
		if err := os.Mkdir(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	sb, err := NewSandbox(root, nil)
	if err != nil {
		t.Fatalf("NewSandbox() error: %v", err)
	}
	if _, err := sb.Resolve(filepath.Join(sibling, "graph.json")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Resolve(sibling) error = %v, want INVALID_PATH", err)
	}
}

func TestSandboxResolveSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.json")
	if err := os.WriteFile(secret, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	sb := newTestSandbox(t)
	if err := os.Symlink(secret, filepath.Join(sb.Root(), "link.json")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if _, err := sb.Resolve("link.json"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Resolve(link) error = %v, want INVALID_PATH", err)
	}
	if _, err := sb.LoadDocument("link.json"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("LoadDocument(link) error = %v, want INVALID_PATH", err)
	}
}

func TestNewSandboxDefaultsToWorkingDir(t *testing.T) {
	sb, err := NewSandbox("", nil)
	if err != nil {
		t.Fatalf("NewSandbox() error: %v", err)
	}
	wd, _ := os.Getwd()
	if real, err := filepath.EvalSymlinks(wd); err == nil {
		wd = real
	}
	if sb.Root() != wd {
		t.Errorf("Root() = %q, want %q", sb.Root(), wd)
	}
}

func TestSandboxResolveSymlinkedDirEscape(t *testing.T) {
	outside := t.TempDir()

	sb := newTestSandbox(t)
	if err := os.Symlink(outside, filepath.Join(sb.Root(), "out")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if _, err := sb.Resolve("out/new.json"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Resolve(out/new.json) error = %v, want INVALID_PATH", err)
	}
}
