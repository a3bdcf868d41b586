package io

import (
	"os"

	"github.com/matzehuels/kgviz/pkg/errors"
)

// ReadFile returns the raw bytes of the file at path.
//
// ReadFile returns an error if:
//   - path resolves outside the sandbox root (INVALID_PATH)
//   - the file does not exist (FILE_NOT_FOUND)
func (s *Sandbox) ReadFile(path string) ([]byte, error) {
	resolved, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "knowledge graph file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// Document is a loaded input document.
type Document struct {
	Text     []byte // UTF-8 JSON
	Encoding string // candidate that decoded the file
	Size     int    // bytes read from disk
}

// LoadDocument reads the document at path and decodes it to UTF-8 JSON.
// In addition to the errors of [Sandbox.ReadFile] it fails with DECODE_ERROR
// when no supported encoding yields valid JSON.
func (s *Sandbox) LoadDocument(path string) (*Document, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, enc, err := DecodeText(data, s.logger)
	if err != nil {
		return nil, errors.New(errors.ErrCodeDecode, "unable to decode file %s with any supported encoding", path)
	}
	s.logger.Debug("loaded document", "path", path, "encoding", enc, "bytes", len(data))
	return &Document{Text: text, Encoding: enc, Size: len(data)}, nil
}
