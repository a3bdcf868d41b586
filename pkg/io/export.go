package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/kgviz/pkg/d3"
	"github.com/matzehuels/kgviz/pkg/errors"
)

// WriteGraph encodes g as indented JSON and writes it to w.
// Non-ASCII and HTML characters are not escaped.
func WriteGraph(g *d3.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph returns the bytes [WriteGraph] would write.
func MarshalGraph(g *d3.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StoreDocument writes g to path inside the sandbox and returns the final
// absolute path. The file name is sanitized with [SanitizeFilename]; the
// directory must already exist. An existing file is overwritten.
func (s *Sandbox) StoreDocument(path string, g *d3.Graph) (string, error) {
	dir, name := filepath.Split(path)
	target, err := s.Resolve(filepath.Join(dir, SanitizeFilename(name)))
	if err != nil {
		return "", err
	}

	data, err := MarshalGraph(g)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", target)
	}
	s.logger.Debug("stored document", "path", target, "bytes", len(data))
	return target, nil
}
