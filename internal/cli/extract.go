package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themix/internal/colour"
	"github.com/jmylchreest/themix/internal/image"
)

type extractOptions struct {
	numColours int
	format     string
	output     string
	preview    bool
	refresh    bool
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the accent colours of an image",
		Long: `Extract the dominant accent colours of an image without building a theme.

Colours are printed primary first, one per line, followed by the theme mode
they suggest.

Examples:
  # Print the five default accents as hex
  themix extract wallpaper.jpg

  # Eight accents as JSON written to a file
  themix extract -n 8 --format json -o accents.json wallpaper.png

  # Show swatches in the terminal
  themix extract --preview wallpaper.webp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.numColours, "num-colours", "n", colour.DefaultColourCount, "number of accent colours to extract (1-256)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews in terminal")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "download remote images again instead of using the cache")

	return cmd
}

// extractedColour is the JSON form of one accent.
type extractedColour struct {
	Hex string `json:"hex"`
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
}

type extractOutput struct {
	Mode    string            `json:"mode"`
	Colours []extractedColour `json:"colours"`
}

func runExtract(cmd *cobra.Command, g *globalOptions, opts *extractOptions, imagePath string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("num-colours") {
		opts.numColours = cfg.Extract.Colours
	}

	ec := colour.DefaultExtractorConfig()
	ec.ColorCount = opts.numColours
	if err := ec.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := g.logger(cmd.ErrOrStderr())

	path, err := resolveImage(cmd.Context(), imagePath, opts.refresh)
	if err != nil {
		return err
	}

	grid, size, err := image.LoadPixels(image.NewFileLoader(), path, cfg.Extract.MaxDimension)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	logger.Debug("image loaded", "path", path, "width", size.X, "height", size.Y)

	genOpts := cfg.GeneratorOptions()
	genOpts.Extract.Logger = logger.Named("extract")
	extractor, err := colour.NewExtractor(ec.Algorithm, genOpts.Extract)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	accents, err := extractor.Extract(grid, ec.ColorCount)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	mode := colour.DetermineTheme(accents)
	if len(accents) == 0 {
		logger.Warn("no saturated colours found", "path", path)
		mode = colour.DetermineImageTheme(grid)
	}

	var previewer *colour.Previewer
	if opts.preview && opts.output == "" {
		previewer = colour.NewPreviewer(cmd.OutOrStdout())
	}

	out, err := formatAccents(accents, mode, opts.format, previewer)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil { // #nosec G306 - Output is a plain palette listing
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote accents", "path", opts.output)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// formatAccents renders accents in format. previewer may be nil.
func formatAccents(accents []colour.RGB, mode colour.ThemeType, format string, previewer *colour.Previewer) (string, error) {
	var b strings.Builder

	switch format {
	case "hex", "rgb":
		for _, c := range accents {
			text := c.Hex()
			if format == "rgb" {
				text = c.String()
			}
			if previewer != nil {
				b.WriteString(previewer.Swatch(c, 8))
				b.WriteString("  ")
			}
			b.WriteString(text)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "mode: %s\n", mode)
	case "json":
		doc := extractOutput{Mode: mode.String(), Colours: make([]extractedColour, 0, len(accents))}
		for _, c := range accents {
			doc.Colours = append(doc.Colours, extractedColour{Hex: c.Hex(), R: c.R, G: c.G, B: c.B})
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		b.Write(data)
		b.WriteString("\n")
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}

	return b.String(), nil
}
