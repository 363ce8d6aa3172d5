// SPDX-License-Identifier: MPL-2.0

package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/exp/maps"
)

func TestCreateThenLoadIsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	h, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Errorf("Load() = %v, want empty mapping", m)
	}
}

func TestCreateExistingFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	original := []byte(`{"keep":"me"}`)
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Create(path)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Create() error = %v, want ErrAlreadyExists", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("existing file modified: %q", got)
	}
}

func TestCreateMissingParentIsIOError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", FileName)
	_, err := Create(path)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Create() error = %v, want ErrIO", err)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mapping Mapping
	}{
		{name: "empty", mapping: Mapping{}},
		{name: "single", mapping: Mapping{"hi": "hello there"}},
		{name: "empty text", mapping: Mapping{"blank": ""}},
		{name: "special characters", mapping: Mapping{
			"html":    "<a href=\"x\">&</a>",
			"unicode": "héllo wörld ✓",
			"newline": "line one\nline two",
			"spaced ": " padded ",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), FileName)
			h, err := Create(path)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if err := h.Persist(tt.mapping); err != nil {
				t.Fatalf("Persist() error = %v", err)
			}

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !maps.Equal(got, tt.mapping) {
				t.Errorf("Load() = %v, want %v", got, tt.mapping)
			}
		})
	}
}

func TestPersistReplacesLongerContents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	long := `{"a":"` + string(bytes.Repeat([]byte("x"), 512)) + `"}`
	if err := os.WriteFile(path, []byte(long), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenForWrite(path)
	if err != nil {
		t.Fatalf("OpenForWrite() error = %v", err)
	}
	if err := h.Persist(Mapping{"b": "short"}); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !maps.Equal(got, Mapping{"b": "short"}) {
		t.Errorf("Load() = %v, want only the new entry", got)
	}
}

func TestOpenForWriteDoesNotTruncate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"a":"b"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenForWrite(path)
	if err != nil {
		t.Fatalf("OpenForWrite() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":"b"}` {
		t.Errorf("file contents = %q, want untouched", got)
	}
}

func TestOpenForWriteMissingFile(t *testing.T) {
	t.Parallel()

	_, err := OpenForWrite(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("OpenForWrite() error = %v, want ErrNotFound", err)
	}
}

func TestPersistAfterCloseFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	h, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.Persist(Mapping{"a": "b"}); !errors.Is(err, ErrIO) {
		t.Errorf("Persist() after Close error = %v, want ErrIO", err)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents *string
		wantKind error
	}{
		{name: "missing file", contents: nil, wantKind: ErrNotFound},
		{name: "empty file", contents: ptr(""), wantKind: ErrCorruptData},
		{name: "not json", contents: ptr("hi: hello"), wantKind: ErrCorruptData},
		{name: "array", contents: ptr(`["hi"]`), wantKind: ErrCorruptData},
		{name: "null", contents: ptr("null"), wantKind: ErrCorruptData},
		{name: "number value", contents: ptr(`{"hi": 1}`), wantKind: ErrCorruptData},
		{name: "null value", contents: ptr(`{"hi": null}`), wantKind: ErrCorruptData},
		{name: "null value among strings", contents: ptr(`{"a": "x", "b": null}`), wantKind: ErrCorruptData},
		{name: "nested object", contents: ptr(`{"hi": {"a": "b"}}`), wantKind: ErrCorruptData},
		{name: "empty name", contents: ptr(`{"": "text"}`), wantKind: ErrCorruptData},
		{name: "trailing garbage", contents: ptr(`{"hi": "x"} extra`), wantKind: ErrCorruptData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), FileName)
			if tt.contents != nil {
				if err := os.WriteFile(path, []byte(*tt.contents), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			_, err := Load(path)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Load() error = %v, want kind %v", err, tt.wantKind)
			}
			if !IsKind(err, tt.wantKind) {
				t.Errorf("IsKind(%v, %v) = false", err, tt.wantKind)
			}
		})
	}
}

func TestLoadPermissionDenied(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for this user")
	}

	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{}`), 0o000); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Load() error = %v, want ErrIO", err)
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := &Error{Op: OpCreate, Path: ".spitconfig", Kind: ErrAlreadyExists, Err: os.ErrExist}
	want := "could not create '.spitconfig': file already exists"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &Error{Op: OpOpen, Path: "x", Kind: ErrNotFound}
	if got := bare.Error(); got != "could not open 'x': not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCopyRaw(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	src := InFolder(srcDir)
	// Copy does not validate, so deliberately odd bytes must survive.
	original := []byte("{\n  \"hi\":   \"hello\"\n}\n\n")
	if err := os.WriteFile(src, original, 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), FileName)
	if err := CopyRaw(src, dst); err != nil {
		t.Fatalf("CopyRaw() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("copied bytes = %q, want %q", got, original)
	}
}

func TestCopyRawInvalidSourceIsCopiedVerbatim(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(src, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(t.TempDir(), FileName)
	if err := CopyRaw(src, dst); err != nil {
		t.Fatalf("CopyRaw() error = %v", err)
	}
	if _, err := Load(dst); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Load(copy) error = %v, want ErrCorruptData", err)
	}
}

func TestCopyRawErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dst := filepath.Join(t.TempDir(), FileName)
		err := CopyRaw(filepath.Join(t.TempDir(), FileName), dst)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("CopyRaw() error = %v, want ErrNotFound", err)
		}
		if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
			t.Errorf("destination created despite missing source")
		}
	})

	t.Run("existing destination", func(t *testing.T) {
		t.Parallel()

		src := filepath.Join(t.TempDir(), FileName)
		dst := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(src, []byte(`{"a":"new"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte(`{"a":"old"}`), 0o644); err != nil {
			t.Fatal(err)
		}

		err := CopyRaw(src, dst)
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("CopyRaw() error = %v, want ErrAlreadyExists", err)
		}
		got, _ := os.ReadFile(dst)
		if string(got) != `{"a":"old"}` {
			t.Errorf("destination overwritten: %q", got)
		}
	})
}

func TestLoadFallback(t *testing.T) {
	t.Parallel()

	t.Run("global primary has no fallback", func(t *testing.T) {
		t.Parallel()

		home := t.TempDir()
		writeStore(t, home, `{"hi":"global"}`)
		loc := Locator{HomeDir: func() (string, error) { return home, nil }}

		m, reason := LoadFallback(loc, ScopeGlobal)
		if reason != nil || len(m) != 0 {
			t.Errorf("LoadFallback(global) = %v, %v; want empty, nil", m, reason)
		}
	})

	t.Run("local primary loads global", func(t *testing.T) {
		t.Parallel()

		home := t.TempDir()
		writeStore(t, home, `{"hi":"global"}`)
		loc := Locator{HomeDir: func() (string, error) { return home, nil }}

		m, reason := LoadFallback(loc, ScopeLocal)
		if reason != nil {
			t.Fatalf("LoadFallback() reason = %v", reason)
		}
		if text, _ := m.Lookup("hi"); text != "global" {
			t.Errorf("fallback[hi] = %q, want %q", text, "global")
		}
	})

	absorbed := []struct {
		name string
		loc  func(t *testing.T) Locator
		kind error
	}{
		{
			name: "no home directory",
			loc: func(t *testing.T) Locator {
				return Locator{HomeDir: func() (string, error) { return "", errors.New("$HOME is not defined") }}
			},
			kind: ErrNotFound,
		},
		{
			name: "missing global store",
			loc: func(t *testing.T) Locator {
				home := t.TempDir()
				return Locator{HomeDir: func() (string, error) { return home, nil }}
			},
			kind: ErrNotFound,
		},
		{
			name: "corrupt global store",
			loc: func(t *testing.T) Locator {
				home := t.TempDir()
				writeStore(t, home, `{"hi":`)
				return Locator{HomeDir: func() (string, error) { return home, nil }}
			},
			kind: ErrCorruptData,
		},
	}

	for _, tt := range absorbed {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, reason := LoadFallback(tt.loc(t), ScopeLocal)
			if m == nil || len(m) != 0 {
				t.Errorf("LoadFallback() mapping = %v, want empty", m)
			}
			if !errors.Is(reason, tt.kind) {
				t.Errorf("LoadFallback() reason = %v, want kind %v", reason, tt.kind)
			}
		})
	}
}

func writeStore(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(InFolder(dir), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func ptr(s string) *string { return &s }
