package utils

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// DetailBuilder builds labeled, sectioned text reports.
type DetailBuilder struct {
	b            strings.Builder
	labelStyle   lipgloss.Style
	sectionStyle lipgloss.Style
}

// NewDetailBuilder creates a builder with a fixed-width label column.
// sectionStyle controls the rendering of section headings.
func NewDetailBuilder(labelWidth int, sectionStyle lipgloss.Style) *DetailBuilder {
	return &DetailBuilder{
		labelStyle:   sectionStyle.Width(labelWidth),
		sectionStyle: sectionStyle,
	}
}

// Row writes a labeled key-value row. Empty values are shown as "-".
func (d *DetailBuilder) Row(label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(&d.b, "  %s %s\n", d.labelStyle.Render(label), value)
}

// List writes the label once and each value on its own line underneath the
// value column. An empty list renders as a single "-".
func (d *DetailBuilder) List(label string, values []string) {
	if len(values) == 0 {
		d.Row(label, "")
		return
	}
	d.Row(label, values[0])
	pad := strings.Repeat(" ", lipgloss.Width(d.labelStyle.Render(label)))
	for _, v := range values[1:] {
		fmt.Fprintf(&d.b, "  %s %s\n", pad, v)
	}
}

// Section writes a section heading like "── title ──────...".
func (d *DetailBuilder) Section(title string) {
	pad := max(40-len(title), 4)
	heading := fmt.Sprintf("  ── %s %s", title, strings.Repeat("─", pad))
	d.b.WriteString(d.sectionStyle.Render(heading) + "\n")
}

// Blank writes an empty line.
func (d *DetailBuilder) Blank() {
	d.b.WriteString("\n")
}

// String returns the accumulated content.
func (d *DetailBuilder) String() string {
	return d.b.String()
}
