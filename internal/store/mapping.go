// SPDX-License-Identifier: MPL-2.0

package store

import (
	"fmt"

	"github.com/spit-cli/spit/pkg/types"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Mapping associates names with the text they expand to.
// Iteration order is undefined; use Names for a stable order.
type Mapping map[string]string

// NewMapping returns an empty, writable Mapping.
func NewMapping() Mapping {
	return make(Mapping)
}

// Lookup returns the text stored under name.
func (m Mapping) Lookup(name string) (string, bool) {
	text, ok := m[name]
	return text, ok
}

// Set stores text under name, replacing any previous text.
func (m Mapping) Set(name, text string) {
	m[name] = text
}

// Names returns every name in increasing byte order.
func (m Mapping) Names() []string {
	names := maps.Keys(m)
	slices.Sort(names)
	return names
}

// Clone returns an independent copy of the mapping.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return NewMapping()
	}
	return maps.Clone(m)
}

// Validate checks that every name is a valid types.Name.
func (m Mapping) Validate() error {
	for name := range m {
		if err := types.Name(name).Validate(); err != nil {
			return fmt.Errorf("entry %q: %w", name, err)
		}
	}
	return nil
}
