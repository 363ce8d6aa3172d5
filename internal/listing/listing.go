// SPDX-License-Identifier: MPL-2.0

package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spit-cli/spit/internal/store"

	"github.com/pelletier/go-toml/v2"
)

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrInvalidFormat is returned for an unknown output format.
var ErrInvalidFormat = errors.New("invalid list format")

type (
	// Format selects the list output encoding.
	Format string

	// Options configures Render.
	Options struct {
		Format Format
		// KeyRender decorates names in text output. Nil prints names as-is.
		KeyRender func(string) string
	}
)

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Validate returns an error wrapping ErrInvalidFormat for unknown formats.
// The zero value is treated as text.
func (f Format) Validate() error {
	switch f {
	case "", FormatText, FormatJSON, FormatTOML:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: text, json, toml)", ErrInvalidFormat, string(f))
	}
}

// Render writes every entry of m to w in the requested format.
func Render(w io.Writer, m store.Mapping, opts Options) error {
	if err := opts.Format.Validate(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatJSON:
		data, err = renderJSON(m)
	case FormatTOML:
		data, err = toml.Marshal(map[string]string(m.Clone()))
	default:
		data = renderText(m, opts.KeyRender)
	}
	if err != nil {
		return fmt.Errorf("render %s list: %w", opts.Format, err)
	}

	_, err = w.Write(data)
	return err
}

func renderText(m store.Mapping, keyRender func(string) string) []byte {
	var sb strings.Builder
	for _, name := range m.Names() {
		text, _ := m.Lookup(name)
		if keyRender != nil {
			name = keyRender(name)
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func renderJSON(m store.Mapping) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]string(m.Clone())); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
