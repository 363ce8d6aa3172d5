// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"slices"
	"testing"

	"github.com/spit-cli/spit/pkg/types"
)

func TestMappingNamesSorted(t *testing.T) {
	t.Parallel()

	m := NewMapping()
	for _, name := range []string{"zeta", "Alpha", "beta", "alpha", "_x", "10", "9"} {
		m.Set(name, "v")
	}

	got := m.Names()
	want := []string{"10", "9", "Alpha", "_x", "alpha", "beta", "zeta"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestMappingSetOverwrites(t *testing.T) {
	t.Parallel()

	m := NewMapping()
	m.Set("hi", "first")
	m.Set("hi", "second")

	if text, ok := m.Lookup("hi"); !ok || text != "second" {
		t.Errorf("Lookup(hi) = %q, %v; want %q, true", text, ok, "second")
	}
	if len(m) != 1 {
		t.Errorf("len = %d, want 1", len(m))
	}
}

func TestMappingCloneIsIndependent(t *testing.T) {
	t.Parallel()

	m := Mapping{"a": "1"}
	c := m.Clone()
	c.Set("b", "2")

	if _, ok := m.Lookup("b"); ok {
		t.Error("mutating the clone changed the original")
	}
	if got := Mapping(nil).Clone(); got == nil {
		t.Error("Clone() of nil mapping returned nil")
	}
}

func TestMappingValidate(t *testing.T) {
	t.Parallel()

	if err := (Mapping{"ok": ""}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	err := (Mapping{"": "text"}).Validate()
	if !errors.Is(err, types.ErrInvalidName) {
		t.Errorf("Validate() = %v, want ErrInvalidName", err)
	}
}
