package colour

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// GeneratorTag identifies this generator in palette metadata.
const GeneratorTag = "themix-go-v1"

// DefaultSeed seeds the accents when an image has no qualifying colours.
var DefaultSeed = RGB{R: 128, G: 128, B: 128}

// Metadata describes where a palette came from.
type Metadata struct {
	Name      string
	Wallpaper string
	Generated time.Time
	Generator string
}

// Semantic holds interaction state colours.
type Semantic struct {
	Active   RGB
	ActiveFG RGB
	Inactive RGB
	Hover    RGB
	Focus    RGB
}

// Accents holds the four accent slots.
type Accents struct {
	Primary    RGB
	Secondary  RGB
	Tertiary   RGB
	Quaternary RGB
}

// Borders holds the border roles.
type Borders struct {
	Primary RGB
	Subtle  RGB
	Accent  RGB
}

// RawRGB is the numeric colour mapping consumed by tools that want channel
// triples rather than strings.
type RawRGB struct {
	Background       RGB
	Foreground       RGB
	AccentPrimary    RGB
	AccentSecondary  RGB
	AccentTertiary   RGB
	AccentQuaternary RGB
	Active           RGB
	Hover            RGB
	Frame            RGB
	Urgent           RGB
}

// Palette is the complete derived theme.
type Palette struct {
	Metadata Metadata
	Theme    ThemeType
	Text     Tiers
	Surface  Tiers
	Semantic Semantic
	Accent   Accents
	Border   Borders
	Terminal Terminal
	Oomox    Oomox
	RGB      RawRGB
}

// PaletteInput carries the derived parts assembled by BuildPalette.
type PaletteInput struct {
	Metadata  Metadata
	Theme     ThemeType
	Accents   []RGB
	Surfaces  Tiers
	Texts     Tiers
	Terminal  Terminal
	OomoxName string
}

// BuildPalette assembles the final palette. It performs no colour maths of its own.
func BuildPalette(in PaletteInput) *Palette {
	a := PadAccents(in.Accents, minTerminalAccents, DefaultSeed)
	s, t := in.Surfaces, in.Texts

	meta := in.Metadata
	if meta.Generator == "" {
		meta.Generator = GeneratorTag
	}

	return &Palette{
		Metadata: meta,
		Theme:    in.Theme,
		Text:     t,
		Surface:  s,
		Semantic: Semantic{
			Active:   a[0],
			ActiveFG: s.Primary,
			Inactive: s.Tertiary,
			Hover:    s.Tertiary,
			Focus:    t.Secondary,
		},
		Accent: Accents{
			Primary:    a[0],
			Secondary:  a[1],
			Tertiary:   a[2],
			Quaternary: a[3],
		},
		Border: Borders{
			Primary: a[1],
			Subtle:  s.Tertiary,
			Accent:  t.Primary,
		},
		Terminal: in.Terminal,
		Oomox:    GenerateOomoxColours(s, t, a, in.OomoxName),
		RGB: RawRGB{
			Background:       s.Primary,
			Foreground:       t.Primary,
			AccentPrimary:    a[0],
			AccentSecondary:  a[1],
			AccentTertiary:   a[2],
			AccentQuaternary: t.Primary,
			Active:           a[0],
			Hover:            s.Tertiary,
			Frame:            s.Secondary,
			Urgent:           a[2],
		},
	}
}

// Options configures Generator.
type Options struct {
	// Count is the number of accents to extract.
	Count int
	// Theme forces dark or light; ThemeAuto detects it from the accents.
	Theme ThemeType
	// MinContrast is the ratio accents must reach against surface.primary.
	MinContrast float64
	// Tint is the terminal hue blend fraction.
	Tint float64
	// Seed replaces the accents when extraction finds nothing.
	Seed RGB
	// Extract tunes the dominant colour extractor.
	Extract ExtractOptions
}

// DefaultOptions returns the default generator options.
func DefaultOptions() Options {
	return Options{
		Count:       DefaultColourCount,
		Theme:       ThemeAuto,
		MinContrast: DefaultMinContrast,
		Tint:        DefaultTint,
		Seed:        DefaultSeed,
		Extract:     DefaultExtractOptions(),
	}
}

// Result is a generated palette plus what happened along the way.
type Result struct {
	Palette *Palette
	// Extracted are the accents as found in the image, before padding.
	Extracted []RGB
	// Detected is true when the theme type was auto-detected.
	Detected bool
	// Corrections lists accents adjusted for contrast.
	Corrections []Correction
}

// Generator runs the extraction and synthesis pipeline.
type Generator struct {
	opts      Options
	extractor Extractor
	logger    hclog.Logger
}

// NewGenerator creates a Generator. A nil logger disables logging.
func NewGenerator(opts Options, logger hclog.Logger) *Generator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.Extract.Logger == nil {
		opts.Extract.Logger = logger.Named("extract")
	}
	return &Generator{
		opts:      opts,
		extractor: NewDominantExtractor(opts.Extract),
		logger:    logger,
	}
}

// Generate derives a palette from src.
func (g *Generator) Generate(src PixelSource, meta Metadata) (*Result, error) {
	extracted, err := g.extractor.Extract(src, g.opts.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract accents: %w", err)
	}
	g.logger.Debug("accents extracted", "count", len(extracted))

	accents := extracted
	if len(accents) == 0 {
		g.logger.Warn("no qualifying colours in image, using seed", "seed", g.opts.Seed.Hex())
		accents = []RGB{g.opts.Seed}
	}

	theme := g.opts.Theme
	detected := false
	if theme == ThemeAuto {
		if len(extracted) > 0 {
			theme = DetermineTheme(extracted)
		} else {
			theme = DetermineImageTheme(src)
		}
		detected = true
		g.logger.Debug("theme detected", "theme", theme.String())
	}

	surfaces := GenerateSurfaces(accents[0], theme)
	texts := GenerateTextColours(surfaces.Primary, theme)

	accents, corrections := CorrectAccents(accents, surfaces.Primary, g.opts.MinContrast)
	for _, c := range corrections {
		g.logger.Debug("accent adjusted for contrast", "index", c.Index, "from", c.From.Hex(), "to", c.To.Hex())
	}

	terminal := GenerateTerminalColours(accents, surfaces, texts, g.opts.Tint)

	palette := BuildPalette(PaletteInput{
		Metadata:  meta,
		Theme:     theme,
		Accents:   accents,
		Surfaces:  surfaces,
		Texts:     texts,
		Terminal:  terminal,
		OomoxName: imageName(meta.Wallpaper),
	})

	return &Result{
		Palette:     palette,
		Extracted:   extracted,
		Detected:    detected,
		Corrections: corrections,
	}, nil
}

// imageName returns the file name of path without its extension.
func imageName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
