package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themix/internal/theme"
)

func newListCmd(g *globalOptions) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List generated themes",
		Long: `List the themes in the output directory with their generation time,
primary accent and wallpaper.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			dir := cfg.OutputDir()
			if cmd.Flags().Changed("output-dir") {
				dir = outputDir
			}

			entries, err := theme.List(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No themes found in %s\n", dir)
				return nil
			}

			logger := g.logger(cmd.ErrOrStderr())
			table := NewTable("NAME", "GENERATED", "ACCENT", "WALLPAPER")
			table.SetColumnMaxWidth(3, 48)
			for _, e := range entries {
				if e.Err != nil {
					logger.Warn("unreadable theme", "name", e.Name, "error", e.Err)
					table.AddRow(e.Name, "?", "?", "?")
					continue
				}
				doc := e.Document
				table.AddRow(e.Name, generatedAgo(doc.Metadata.Generated), doc.Accent.Primary, doc.Metadata.Wallpaper)
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "theme output directory (default: $XDG_CONFIG_HOME/themes)")

	return cmd
}

// generatedAgo renders an RFC3339 timestamp relative to now, or the raw
// value when it does not parse.
func generatedAgo(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return humanize.Time(t)
}
