// ABOUTME: Tests for the start menu
// ABOUTME: Validates menu options, defaults, and view names

package menu

import "testing"

func TestMenuOptions(t *testing.T) {
	m := New("")

	if len(m.options) != 3 {
		t.Errorf("expected 3 options, got %d", len(m.options))
	}

	if m.options[0].label != "Interactive calculator" {
		t.Errorf("expected first option 'Interactive calculator', got %s", m.options[0].label)
	}
}

func TestMenuDefaultsToBaseline(t *testing.T) {
	m := New("")

	if m.selection.Revision != "baseline" {
		t.Errorf("expected baseline revision, got %s", m.selection.Revision)
	}
	if m.selection.View != ViewCalculator {
		t.Errorf("expected calculator view, got %s", m.selection.View)
	}
}

func TestMenuPreselectsRevision(t *testing.T) {
	m := New("recuperated")

	if m.selection.Revision != "recuperated" {
		t.Errorf("expected recuperated revision, got %s", m.selection.Revision)
	}
}

func TestMenuListsRevisions(t *testing.T) {
	m := New("")

	if len(m.revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(m.revisions))
	}
	if m.revisions[0] != "baseline" || m.revisions[1] != "recuperated" {
		t.Errorf("unexpected revisions %v", m.revisions)
	}
}

func TestMenuFormBuilds(t *testing.T) {
	if New("").Form() == nil {
		t.Error("expected a form")
	}
}

func TestViewString(t *testing.T) {
	tests := []struct {
		view     View
		expected string
	}{
		{ViewCalculator, "calculator"},
		{ViewCompare, "compare"},
		{ViewStages, "stages"},
		{View(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.view.String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
