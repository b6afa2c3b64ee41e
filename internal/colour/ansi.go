// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultWidth = 8

// DisableColourOutput can be used to disable colour output.
var DisableColourOutput = false

// Previewer renders truecolour swatches for terminal output.
type Previewer struct {
	enabled bool
}

// NewPreviewer returns a Previewer that emits colour only when w is a terminal.
func NewPreviewer(w io.Writer) *Previewer {
	return &Previewer{enabled: SupportsANSIColours(w)}
}

// SupportsANSIColours reports whether w is a terminal that should receive
// colour escape codes.
func SupportsANSIColours(w io.Writer) bool {
	if DisableColourOutput {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Swatch returns a solid colour block width characters wide. Without colour
// support it returns the hex code padded to width.
func (p *Previewer) Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if !p.enabled {
		return fmt.Sprintf("%-*s", width, c.Hex())
	}
	bg := color.BgRGB(int(c.R), int(c.G), int(c.B))
	bg.EnableColor()
	return bg.Sprint(strings.Repeat(" ", width))
}

// SwatchWithText returns a swatch with text drawn in a contrasting colour.
func (p *Previewer) SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if len(text) > width {
		text = text[:width]
	}
	padding := (width - len(text)) / 2
	text = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	if !p.enabled {
		return text
	}

	fg := 255
	if Luminance(c) > 0.5 {
		fg = 0
	}
	block := color.BgRGB(int(c.R), int(c.G), int(c.B)).AddRGB(fg, fg, fg)
	block.EnableColor()
	return block.Sprint(text)
}

// Label formats a colour with a label and preview.
func (p *Previewer) Label(c RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-20s %s", p.Swatch(c, width), label, c.Hex())
}

type swatchRow struct {
	label string
	c     RGB
}

// Palette renders a summary of a palette, one section per block.
func (p *Previewer) Palette(pal *Palette) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Theme: %s (%s)\n", pal.Metadata.Name, pal.Theme)

	section := func(title string, rows []swatchRow) {
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, r := range rows {
			fmt.Fprintf(&b, "  %s\n", p.Label(r.c, r.label, defaultWidth))
		}
	}
	tiers := func(t Tiers) []swatchRow {
		return []swatchRow{
			{"primary", t.Primary},
			{"secondary", t.Secondary},
			{"tertiary", t.Tertiary},
			{"quaternary", t.Quaternary},
			{"quinary", t.Quinary},
		}
	}

	section("Accents", []swatchRow{
		{"primary", pal.Accent.Primary},
		{"secondary", pal.Accent.Secondary},
		{"tertiary", pal.Accent.Tertiary},
		{"quaternary", pal.Accent.Quaternary},
	})
	section("Surfaces", tiers(pal.Surface))
	section("Text", tiers(pal.Text))

	b.WriteString("\nTerminal:\n  ")
	for i, c := range pal.Terminal {
		if i == 8 {
			b.WriteString("\n  ")
		}
		b.WriteString(p.SwatchWithText(c, fmt.Sprint(i), 4))
	}
	b.WriteString("\n")

	return b.String()
}
