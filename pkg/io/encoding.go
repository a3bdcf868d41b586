package io

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/matzehuels/kgviz/pkg/errors"
)

type candidate struct {
	name   string
	decode func([]byte) ([]byte, error)
}

var candidates = []candidate{
	{"utf-8-sig", decodeUTF8BOM},
	{"utf-8", decodeUTF8},
	{"utf-16", decodeUTF16},
	{"cp1252", decodeWith(charmap.Windows1252)},
}

// DecodeText converts raw document bytes to UTF-8 JSON. It returns the
// decoded bytes and the name of the encoding that worked.
func DecodeText(data []byte, logger *log.Logger) ([]byte, string, error) {
	for _, c := range candidates {
		out, err := c.decode(data)
		if err == nil {
			err = checkJSON(out)
		}
		if err != nil {
			if logger != nil {
				logger.Debug("decode attempt failed", "encoding", c.name, "err", err)
			}
			continue
		}
		return out, c.name, nil
	}
	return nil, "", errors.New(errors.ErrCodeDecode, "unable to decode input with any supported encoding (%d tried)", len(candidates))
}

func checkJSON(data []byte) error {
	var v json.RawMessage
	return json.Unmarshal(data, &v)
}

func decodeUTF8(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("invalid utf-8 sequence")
	}
	return data, nil
}

// decodeUTF8BOM accepts UTF-8 with or without a leading byte order mark.
func decodeUTF8BOM(data []byte) ([]byte, error) {
	if _, err := decodeUTF8(data); err != nil {
		return nil, err
	}
	return unicode.UTF8BOM.NewDecoder().Bytes(data)
}

// decodeUTF16 honors a byte order mark and assumes little-endian without one.
func decodeUTF16(data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("truncated utf-16 data (%d bytes)", len(data))
	}
	return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))(data)
}

func decodeWith(enc encoding.Encoding) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		return enc.NewDecoder().Bytes(data)
	}
}
