package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable("NAME", "MODE", "ACCENT")
	table.AddRow("forest", "dark", "#3A7F4C")
	table.AddRow("sky", "light")

	want := "NAME    MODE   ACCENT\n" +
		"------  -----  -------\n" +
		"forest  dark   #3A7F4C\n" +
		"sky     light\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableAddRowTruncatesExtraCells(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("1", "2", "3")
	if len(table.rows[0]) != 2 {
		t.Errorf("row has %d cells, want 2", len(table.rows[0]))
	}
}

func TestTableRenderNoHeaders(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestTableColumnMaxWidth(t *testing.T) {
	table := NewTable("PATH")
	table.SetColumnMaxWidth(0, 12)
	table.AddRow("/home/user/Pictures/walls/forest.jpg")

	lines := strings.Split(table.Render(), "\n")
	if lines[2] != "...orest.jpg" {
		t.Errorf("row = %q, want %q", lines[2], "...orest.jpg")
	}
}

func TestElideLeft(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "...hij"},
		{"abcdef", 2, "ef"},
		{"héllo wörld", 8, "...wörld"},
	}
	for _, tt := range tests {
		if got := elideLeft(tt.in, tt.width); got != tt.want {
			t.Errorf("elideLeft(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
