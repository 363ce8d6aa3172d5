// SPDX-License-Identifier: MPL-2.0

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// filePerm is the mode used for newly created store files.
const filePerm = 0o644

// Handle is an open store file ready to be rewritten by Persist.
type Handle struct {
	path string
	file *os.File
}

// Path returns the file path behind the handle.
func (h *Handle) Path() string { return h.path }

// Close releases the file without writing.
func (h *Handle) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// Persist serializes m and replaces the file contents with it, then closes
// the handle. A failure part way through may leave the file truncated.
func (h *Handle) Persist(m Mapping) (err error) {
	if h.file == nil {
		return &Error{Op: OpWrite, Path: h.path, Kind: ErrIO, Err: os.ErrClosed}
	}
	defer func() {
		if closeErr := h.Close(); closeErr != nil && err == nil {
			err = newError(OpWrite, h.path, closeErr)
		}
	}()

	data, err := encode(m)
	if err != nil {
		return &Error{Op: OpWrite, Path: h.path, Kind: ErrIO, Err: err}
	}

	if err := h.file.Truncate(0); err != nil {
		return newError(OpWrite, h.path, err)
	}
	if _, err := h.file.Seek(0, io.SeekStart); err != nil {
		return newError(OpWrite, h.path, err)
	}
	if _, err := h.file.Write(data); err != nil {
		return newError(OpWrite, h.path, err)
	}
	if err := h.file.Sync(); err != nil {
		return newError(OpWrite, h.path, err)
	}
	return nil
}

// Create makes a new store file holding an empty mapping and returns it open
// for rewriting. It fails with ErrAlreadyExists if path is already present.
func Create(path string) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return nil, createError(path, err)
	}
	h := &Handle{path: path, file: f}

	data, err := encode(NewMapping())
	if err != nil {
		_ = h.Close()
		return nil, &Error{Op: OpCreate, Path: path, Kind: ErrIO, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		_ = h.Close()
		return nil, newError(OpCreate, path, err)
	}
	return h, nil
}

// Load reads and decodes the store at path.
// The returned Mapping is never nil when err is nil.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(OpOpen, path, err)
	}
	m, err := decode(data)
	if err != nil {
		return nil, &Error{Op: OpParse, Path: path, Kind: ErrCorruptData, Err: err}
	}
	return m, nil
}

// OpenForWrite opens an existing store for rewriting. The file is not
// truncated until Persist runs.
func OpenForWrite(path string) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, newError(OpOpen, path, err)
	}
	return &Handle{path: path, file: f}, nil
}

// CopyRaw duplicates the bytes of the store at src into a new file at dst.
// The contents are not validated. dst must not exist; a partially written
// dst is removed.
func CopyRaw(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return newError(OpOpen, src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return createError(dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = newError(OpCopy, dst, closeErr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return newError(OpCopy, dst, err)
	}
	return nil
}

// LoadFallback loads the store consulted when a lookup misses in primary.
// Only a local primary has a fallback (the global store). The returned
// Mapping is always usable; reason explains why it is empty, if it is.
func LoadFallback(loc Locator, primary Scope) (m Mapping, reason error) {
	if primary == ScopeGlobal {
		return NewMapping(), nil
	}
	path, err := loc.Path(ScopeGlobal)
	if err != nil {
		return NewMapping(), err
	}
	m, err = Load(path)
	if err != nil {
		return NewMapping(), err
	}
	return m, nil
}

// createError reports exclusive-create failures. Only an existing file is
// ErrAlreadyExists; a missing parent directory is an I/O failure.
func createError(path string, err error) *Error {
	e := newError(OpCreate, path, err)
	if e.Kind != ErrAlreadyExists {
		e.Kind = ErrIO
	}
	return e
}

func encode(m Mapping) ([]byte, error) {
	if m == nil {
		m = NewMapping()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var errNotObject = errors.New("expected a JSON object of strings")

// decode accepts only an object whose values are all strings. A null value
// is rejected rather than read as "".
func decode(data []byte) (Mapping, error) {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errNotObject
	}
	m := make(Mapping, len(raw))
	for name, text := range raw {
		if text == nil {
			return nil, fmt.Errorf("%w: %q is null", errNotObject, name)
		}
		m[name] = *text
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errNotObject, err)
	}
	return m, nil
}
