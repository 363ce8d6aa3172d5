// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// values returns every catalog entry ordered by id.
func values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		StoreNotFoundId,
		StoreExistsId,
		StoreCorruptId,
		StoreWriteFailedId,
		HomeNotFoundId,
		NameNotFoundId,
		ConflictingFlagsId,
		InvalidNameId,
		SettingsInvalidId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if StoreNotFoundId != 1 {
		t.Errorf("StoreNotFoundId = %d, want 1", StoreNotFoundId)
	}
	if len(ids) != len(issues) {
		t.Errorf("catalog has %d entries, want %d", len(issues), len(ids))
	}
}

func TestIssue_ExtLinks(t *testing.T) {
	t.Parallel()

	issue := Get(StoreCorruptId)
	if issue == nil {
		t.Fatal("Get(StoreCorruptId) returned nil")
	}

	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ExtLinks() is empty")
	}

	original := links[0]
	links[0] = "modified"
	if issue.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	// Not parallel: swaps the package-level renderer.
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	rendered, err := Get(StoreCorruptId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	if gotStyle != "notty" {
		t.Errorf("style = %q, want notty", gotStyle)
	}
	if !strings.Contains(rendered, "could not be read") {
		t.Error("Render() output should contain the markdown body")
	}
	if !strings.Contains(rendered, "## See also") || !strings.Contains(rendered, "json.org") {
		t.Errorf("Render() output should list external links, got:\n%s", rendered)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{StoreNotFoundId, false, "No abbreviation file here"},
		{StoreExistsId, false, "already exists"},
		{StoreCorruptId, false, "could not be read"},
		{StoreWriteFailedId, false, "could not be written"},
		{HomeNotFoundId, false, "Home directory not found"},
		{NameNotFoundId, false, "Abbreviation not found"},
		{ConflictingFlagsId, false, "Conflicting flags"},
		{InvalidNameId, false, "Invalid abbreviation name"},
		{SettingsInvalidId, false, "Settings file"},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, issue.Id())
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestCatalogOrderedById(t *testing.T) {
	t.Parallel()

	all := values()
	if len(all) != len(issues) {
		t.Fatalf("values() returned %d issues, want %d", len(all), len(issues))
	}

	for i, issue := range all {
		if issue.Id() != Id(i+1) {
			t.Errorf("values()[%d].Id() = %d, want %d", i, issue.Id(), i+1)
		}
		if issue.MarkdownMsg() == "" {
			t.Errorf("issue %d has empty markdown", issue.Id())
		}
	}
}
