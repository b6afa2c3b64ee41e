// Package cli provides the command-line interface for themix.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/themix/internal/colour"
	"github.com/jmylchreest/themix/internal/config"
	"github.com/jmylchreest/themix/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
	noColour   bool
}

// NewRootCmd builds the themix command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "themix",
		Short: "Derive a desktop theme from a wallpaper",
		Long: `themix extracts the dominant colours of a wallpaper and derives a complete,
contrast-checked desktop palette from them: surface and text tiers, semantic
and border roles, a 16 colour terminal palette and an oomox scheme.

The result is written to <output-dir>/<theme-name>/colors.yaml next to a
wallpaper symlink, ready for template processing.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			colour.DisableColourOutput = g.noColour
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	flags.BoolVar(&g.noColour, "no-colour", false, "disable colour swatches in previews")
	flags.StringVar(&g.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/themix/config.toml)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.SetGlobalNormalizationFunc(colourSpelling)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newGenerateCmd(g),
		newExtractCmd(g),
		newWatchCmd(g),
		newListCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// colourSpelling accepts "color" spellings of flags named with "colour".
func colourSpelling(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "color", "colour"))
}

// logger returns the hclog logger for a command, honouring --verbose and
// --quiet.
func (g *globalOptions) logger(w io.Writer) hclog.Logger {
	level := hclog.Info
	switch {
	case g.quiet:
		level = hclog.Error
	case g.verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "themix",
		Output: w,
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// progress returns where user-facing progress lines go.
func (g *globalOptions) progress(cmd *cobra.Command) io.Writer {
	if g.quiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// loadConfig reads --config, or the default config file if present.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(g.configPath)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
