package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/unicode"

	"github.com/matzehuels/kgviz/pkg/errors"
)

const sampleJSON = `{"name":"Café Zoë"}`

func utf16Bytes(t *testing.T, endian unicode.Endianness, s string) []byte {
	t.Helper()
	b, err := unicode.UTF16(endian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode utf-16: %v", err)
	}
	return b
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		input    func(t *testing.T) []byte
		wantEnc  string
		wantText string
	}{
		{
			name:     "UTF8",
			input:    func(*testing.T) []byte { return []byte(sampleJSON) },
			wantEnc:  "utf-8-sig",
			wantText: sampleJSON,
		},
		{
			name:     "UTF8WithBOM",
			input:    func(*testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, sampleJSON...) },
			wantEnc:  "utf-8-sig",
			wantText: sampleJSON,
		},
		{
			name:     "UTF16LE",
			input:    func(t *testing.T) []byte { return utf16Bytes(t, unicode.LittleEndian, sampleJSON) },
			wantEnc:  "utf-16",
			wantText: sampleJSON,
		},
		{
			name:     "UTF16BE",
			input:    func(t *testing.T) []byte { return utf16Bytes(t, unicode.BigEndian, sampleJSON) },
			wantEnc:  "utf-16",
			wantText: sampleJSON,
		},
		{
			name:     "CP1252",
			input:    func(*testing.T) []byte { return []byte("{\"name\":\"Caf\xe9 Zo\xeb\"}") },
			wantEnc:  "cp1252",
			wantText: sampleJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, enc, err := DecodeText(tt.input(t), nil)
			if err != nil {
				t.Fatalf("DecodeText() error: %v", err)
			}
			if enc != tt.wantEnc {
				t.Errorf("encoding = %q, want %q", enc, tt.wantEnc)
			}
			if string(out) != tt.wantText {
				t.Errorf("text = %q, want %q", out, tt.wantText)
			}
		})
	}
}

func TestDecodeTextAllCandidatesFail(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	_, _, err := DecodeText([]byte("this is not json"), logger)
	if !errors.Is(err, errors.ErrCodeDecode) {
		t.Fatalf("DecodeText() error = %v, want DECODE_ERROR", err)
	}

	out := buf.String()
	for _, enc := range []string{"utf-8-sig", "utf-8", "utf-16", "cp1252"} {
		if !strings.Contains(out, "encoding="+enc) {
			t.Errorf("no log line for %s:\n%s", enc, out)
		}
	}
}
