package utils

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestDetailBuilder_Row(t *testing.T) {
	db := NewDetailBuilder(10, lipgloss.NewStyle())
	db.Row("ARN", "arn:aws:iam::123456789012:user/alice")
	db.Row("Groups", "")

	got := db.String()
	if !strings.Contains(got, "arn:aws:iam::123456789012:user/alice") {
		t.Error("Row should contain value")
	}
	if !strings.Contains(got, "Groups") || !strings.HasSuffix(got, " -\n") {
		t.Errorf("empty value should render as dash, got %q", got)
	}
}

func TestDetailBuilder_List(t *testing.T) {
	db := NewDetailBuilder(10, lipgloss.NewStyle())
	db.List("Managed", []string{"ReadOnlyAccess", "Billing"})

	lines := strings.Split(strings.TrimRight(db.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "Managed") || !strings.Contains(lines[0], "ReadOnlyAccess") {
		t.Errorf("first line = %q", lines[0])
	}
	if strings.Contains(lines[1], "Managed") {
		t.Errorf("label should not repeat: %q", lines[1])
	}
	if strings.Index(lines[0], "ReadOnlyAccess") != strings.Index(lines[1], "Billing") {
		t.Errorf("values should align:\n%s\n%s", lines[0], lines[1])
	}
}

func TestDetailBuilder_EmptyList(t *testing.T) {
	db := NewDetailBuilder(10, lipgloss.NewStyle())
	db.List("Inline", nil)

	if got := db.String(); !strings.HasSuffix(got, " -\n") {
		t.Errorf("empty list should render as dash, got %q", got)
	}
}

func TestDetailBuilder_Section(t *testing.T) {
	db := NewDetailBuilder(10, lipgloss.NewStyle())
	db.Section("alice")
	db.Blank()

	got := db.String()
	if !strings.Contains(got, "── alice") {
		t.Error("Section should contain heading")
	}
	if !strings.HasSuffix(got, "\n\n") {
		t.Error("Blank should insert empty line")
	}
}
