package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/themix/internal/colour"
	"github.com/jmylchreest/themix/internal/config"
	"github.com/jmylchreest/themix/internal/image"
	"github.com/jmylchreest/themix/internal/theme"
)

// generateOptions are the flags shared by generate and watch.
type generateOptions struct {
	outputDir   string
	numColours  int
	mode        string
	minContrast float64
	dryRun      bool
	preview     bool
	refresh     bool
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <image> <theme-name>",
		Short: "Generate a theme from a wallpaper",
		Long: `Generate a theme from a wallpaper.

The dominant colours of the image become the accents. Surfaces, text,
semantic roles, borders, the terminal palette and an oomox scheme are derived
from them, accents are corrected to stay readable on the background, and the
result is written to <output-dir>/<theme-name>/colors.yaml. A wallpaper
symlink is created next to it.

The image may be a local file or an http(s) URL; remote images are cached
under $XDG_CACHE_HOME/themix/wallpapers.

Examples:
  # Generate a theme, auto-detecting light or dark
  themix generate ~/Pictures/forest.jpg forest

  # Force a light theme with 8 accents into a custom directory
  themix generate sunset.png sunset --mode light -n 8 --output-dir ~/themes

  # Preview the palette without writing anything
  themix generate wall.webp test --preview --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g, opts, args[0], args[1])
		},
	}

	addGenerateFlags(cmd.Flags(), opts)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would be written without writing files")

	return cmd
}

func addGenerateFlags(flags *pflag.FlagSet, opts *generateOptions) {
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "theme output directory (default: $XDG_CONFIG_HOME/themes)")
	flags.IntVarP(&opts.numColours, "num-colours", "n", colour.DefaultColourCount, "number of accent colours to extract (1-256)")
	flags.StringVarP(&opts.mode, "mode", "m", "auto", "theme mode (auto, dark, light)")
	flags.Float64Var(&opts.minContrast, "min-contrast", colour.DefaultMinContrast, "minimum contrast ratio of accents against the background")
	flags.BoolVar(&opts.preview, "preview", false, "show a colour preview of the palette")
	flags.BoolVar(&opts.refresh, "refresh", false, "download remote images again instead of using the cache")
}

// apply overlays explicitly set flags on cfg. Flags left at their defaults
// do not override the config file.
func (o *generateOptions) apply(flags *pflag.FlagSet, cfg *config.Config) (*config.Config, error) {
	merged := *cfg
	if flags.Changed("output-dir") {
		merged.Output.Dir = o.outputDir
	}
	if flags.Changed("num-colours") {
		merged.Extract.Colours = o.numColours
	}
	if flags.Changed("mode") {
		merged.Palette.Mode = o.mode
	}
	if flags.Changed("min-contrast") {
		merged.Palette.MinContrast = o.minContrast
	}
	return config.NormalizeAndValidate(&merged)
}

func runGenerate(cmd *cobra.Command, g *globalOptions, opts *generateOptions, imagePath, name string) error {
	b, err := newThemeBuilder(cmd, g, opts)
	if err != nil {
		return err
	}

	res, err := b.build(cmd.Context(), imagePath, name)
	if err != nil {
		return err
	}

	if res.dryRun {
		return nil
	}
	fmt.Fprintf(b.out, "Theme '%s' created at %s\n", name, res.dir)
	fmt.Fprintf(b.out, "\nNext: process-templates.sh %s\n", name)
	return nil
}

// themeBuilder runs one wallpaper to theme directory pass.
type themeBuilder struct {
	cfg     *config.Config
	logger  hclog.Logger
	out     io.Writer
	preview *colour.Previewer
	dryRun  bool
	refresh bool
	loader  image.Loader
}

// buildResult describes what a build produced.
type buildResult struct {
	dir        string
	colorsPath string
	link       string
	wallpaper  string
	dryRun     bool
	generated  *colour.Result
}

func newThemeBuilder(cmd *cobra.Command, g *globalOptions, opts *generateOptions) (*themeBuilder, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err = opts.apply(cmd.Flags(), cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	b := &themeBuilder{
		cfg:     cfg,
		logger:  g.logger(cmd.ErrOrStderr()),
		out:     g.progress(cmd),
		dryRun:  opts.dryRun,
		refresh: opts.refresh,
		loader:  image.NewFileLoader(),
	}
	if opts.preview {
		b.preview = colour.NewPreviewer(cmd.OutOrStdout())
	}
	return b, nil
}

// resolveImage returns an absolute local path for imagePath, downloading
// remote images into the cache first.
func resolveImage(ctx context.Context, imagePath string, refresh bool) (string, error) {
	if image.IsRemote(imagePath) {
		path, err := image.CacheRemote(ctx, imagePath, image.CacheOptions{Refresh: refresh})
		if err != nil {
			return "", err
		}
		return path, nil
	}

	path, err := filepath.Abs(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image path: %w", err)
	}
	if err := image.ValidateImagePath(path); err != nil {
		return "", fmt.Errorf("invalid image path: %w", err)
	}
	return path, nil
}

func (b *themeBuilder) build(ctx context.Context, imagePath, name string) (*buildResult, error) {
	dir, err := theme.ThemeDir(b.cfg.OutputDir(), name)
	if err != nil {
		return nil, err
	}

	path, err := resolveImage(ctx, imagePath, b.refresh)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(b.out, "Extracting colours from %s...\n", filepath.Base(path))
	if info, err := os.Stat(path); err == nil {
		b.logger.Debug("loading image", "path", path, "size", humanize.Bytes(uint64(info.Size())))
	}

	grid, size, err := image.LoadPixels(b.loader, path, b.cfg.Extract.MaxDimension)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	w, h := grid.Size()
	b.logger.Debug("image decoded", "width", size.X, "height", size.Y, "sampled", fmt.Sprintf("%dx%d", w, h))

	gen := colour.NewGenerator(b.cfg.GeneratorOptions(), b.logger)
	res, err := gen.Generate(grid, colour.Metadata{
		Name:      name,
		Wallpaper: path,
		Generated: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(b.out, "Found %d accent colours\n", len(res.Extracted))
	if res.Detected {
		fmt.Fprintf(b.out, "Detected mode: %s\n", res.Palette.Theme)
	}
	for _, c := range res.Corrections {
		fmt.Fprintf(b.out, "Adjusted accent[%d] for contrast: %s -> %s\n", c.Index, c.From.Hex(), c.To.Hex())
	}

	if b.preview != nil {
		fmt.Fprintln(b.out)
		fmt.Fprint(b.out, b.preview.Palette(res.Palette))
		fmt.Fprintln(b.out)
	}

	writer := theme.NewWriter(b.cfg.Palette.Alpha, b.logger.Named("writer"))
	result := &buildResult{dir: dir, wallpaper: path, dryRun: b.dryRun, generated: res}

	if b.dryRun {
		data, err := writer.Encode(res.Palette)
		if err != nil {
			return nil, err
		}
		result.colorsPath = filepath.Join(dir, theme.ColorsFile)
		result.link = filepath.Join(dir, theme.WallpaperLinkName(path))
		fmt.Fprintf(b.out, "  Would write: %s (%s)\n", result.colorsPath, humanize.Bytes(uint64(len(data))))
		fmt.Fprintf(b.out, "  Would link:  %s -> %s\n", result.link, path)
		return result, nil
	}

	result.colorsPath, err = writer.Write(res.Palette, dir)
	if err != nil {
		return nil, err
	}
	result.link, err = theme.LinkWallpaper(dir, path)
	if err != nil {
		return nil, err
	}

	return result, nil
}
