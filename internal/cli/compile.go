package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruleflow/ruleflow/pkg/deck"
	"github.com/ruleflow/ruleflow/pkg/pipeline"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	dag      bool   // emit the DAG JSON document instead of Mermaid text
	noFactor bool   // disable the OR-group factoring pre-pass
	data     string // inline JSON deck
	output   string // output file path (stdout if empty)
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile [deck.json|deck.toml]",
		Short: "Compile a decision deck to a Mermaid flowchart or DAG JSON",
		Long: `Compile a decision deck to a Mermaid flowchart or DAG JSON.

A deck is a flat JSON or TOML document mapping question identifiers to their
text, with the reserved key "logic" holding the boolean expression:

  {
    "Q1": "Is the applicant over 18?",
    "Q2": "Is the application complete?",
    "logic": "Q1 and Q2"
  }

Without a deck argument or --data, a built-in sample deck is compiled.

Examples:
  ruleflow compile deck.json                 # Mermaid flowchart to stdout
  ruleflow compile deck.toml --dag           # compact DAG JSON instead
  ruleflow compile --data '{"logic":"Q1"}'   # inline deck
  ruleflow compile deck.json -o flow.mmd`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck(args, opts.data)
			if err != nil {
				return err
			}

			format := pipeline.FormatMermaid
			if opts.dag {
				format = pipeline.FormatDAG
			}

			runner := c.newRunner(true)
			defer runner.Close()

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), d, pipeline.Options{
				Format:   format,
				NoFactor: opts.noFactor,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Compiled %d terms into %d nodes", result.Stats.TermCount, result.Stats.NodeCount))

			return writeArtifact(result, format, opts.output)
		},
	}

	cmd.Flags().BoolVar(&opts.dag, "dag", false, "output the structured DAG document instead of a flowchart")
	cmd.Flags().BoolVar(&opts.noFactor, "no-factor", false, "disable OR-group factoring")
	cmd.Flags().StringVar(&opts.data, "data", "", "inline JSON deck (overrides the file argument)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// loadDeck resolves the deck from --data, a file argument, or the built-in
// sample, in that precedence order.
func loadDeck(args []string, inline string) (deck.Deck, error) {
	if inline != "" {
		return deck.ParseJSON([]byte(inline))
	}
	if len(args) == 1 {
		return deck.ReadFile(args[0])
	}
	return deck.Default(), nil
}

// writeArtifact writes the rendered artifact to a file, or to stdout with a
// trailing newline for the textual formats.
func writeArtifact(result *pipeline.Result, format, output string) error {
	if output == "" {
		os.Stdout.Write(result.Artifact)
		if format != pipeline.FormatPNG && format != pipeline.FormatSVG {
			fmt.Println()
		}
		return nil
	}

	if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Wrote %s output", format)
	printFile(output)
	printStats(result.Stats.TermCount, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)
	return nil
}
