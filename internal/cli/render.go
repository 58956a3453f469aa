package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruleflow/ruleflow/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format   string
	output   string
	data     string
	noFactor bool
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command for Graphviz output.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [deck.json|deck.toml]",
		Short: "Compile a deck and render the decision graph via Graphviz",
		Long: `Compile a deck and render the decision graph via Graphviz.

The decision graph is converted to DOT and rendered in-process. SVG and PNG
artifacts are cached locally for faster subsequent runs.

Examples:
  ruleflow render deck.json                   # deck.svg
  ruleflow render deck.json -f png -o out.png
  ruleflow render -f dot                      # DOT text for the sample deck`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderFormat(opts.format); err != nil {
				return err
			}

			d, err := loadDeck(args, opts.data)
			if err != nil {
				return err
			}

			runner := c.newRunner(opts.noCache)
			defer runner.Close()

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), d, pipeline.Options{
				Format:   opts.format,
				NoFactor: opts.noFactor,
				Refresh:  opts.refresh,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %s (%d bytes)", opts.format, len(result.Artifact)))

			output := opts.output
			if output == "" && opts.format != pipeline.FormatDOT {
				output = defaultOutputPath(args, opts.format)
			}
			return writeArtifact(result, opts.format, output)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from deck name if empty)")
	cmd.Flags().StringVar(&opts.data, "data", "", "inline JSON deck (overrides the file argument)")
	cmd.Flags().BoolVar(&opts.noFactor, "no-factor", false, "disable OR-group factoring")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and re-render")

	return cmd
}

// validateRenderFormat restricts render to the Graphviz-backed formats.
func validateRenderFormat(format string) error {
	switch format {
	case pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG:
		return nil
	default:
		return fmt.Errorf("invalid render format: %q (must be one of: svg, png, dot)", format)
	}
}

// defaultOutputPath derives the artifact path from the deck filename, or
// "decision.<ext>" when the sample deck is used.
func defaultOutputPath(args []string, format string) string {
	base := "decision"
	if len(args) == 1 {
		name := filepath.Base(args[0])
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return base + "." + format
}
