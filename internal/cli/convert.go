package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kgviz/pkg/config"
	kgerrors "github.com/matzehuels/kgviz/pkg/errors"
	"github.com/matzehuels/kgviz/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	noValidate bool // skip the link integrity check
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert a knowledge-graph document to a D3.js graph document",
		Long: `Convert a knowledge-graph document to a D3.js graph document.

Both paths are resolved inside the root directory. The output file name is
sanitized and defaults to ` + config.DefaultOutput + `. Every link is checked
against the node set unless --no-validate is given.

Set SOURCE_DATE_EPOCH to pin metadata.generatedAt for reproducible output.

Examples:
  kgviz convert knowledge_graph.json
  kgviz convert knowledge_graph.json d3_graph.json
  kgviz convert knowledge_graph.json d3_graph.json --no-validate`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) > 1 {
				output = args[1]
			}
			return c.runConvert(cmd, args[0], output, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "skip link integrity validation")

	return cmd
}

// runConvert converts input and prints a summary. Failures are printed as a
// single status line and returned as reported errors.
func (c *CLI) runConvert(cmd *cobra.Command, input, output string, opts convertOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	popts, err := c.convertOptions(cmd, input, output, opts)
	if err != nil {
		return c.fail(err)
	}

	prog := newProgress(c.Logger)
	res, err := pipeline.NewRunner(c.Logger).Convert(ctx, popts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return c.fail(err)
	}
	prog.done(fmt.Sprintf("Converted %d nodes and %d links", res.Stats.NodeCount, res.Stats.LinkCount))

	printSuccess("Successfully converted knowledge graph to D3.js format")
	printKeyValue("Input:", input)
	printKeyValue("Output:", res.OutputPath)
	printKeyValue("Nodes:", fmt.Sprint(res.Stats.NodeCount))
	printKeyValue("Links:", fmt.Sprint(res.Stats.LinkCount))
	printStats(res.Stats.NodeCount, res.Stats.LinkCount, popts.ShouldValidate())
	return nil
}

// convertOptions merges config and flags into pipeline options.
func (c *CLI) convertOptions(cmd *cobra.Command, input, output string, opts convertOpts) (pipeline.Options, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return pipeline.Options{}, err
	}
	generatedAt, err := config.GeneratedAt()
	if err != nil {
		return pipeline.Options{}, err
	}

	popts := pipeline.FromConfig(cfg)
	popts.Input = input
	if output != "" {
		popts.Output = output
	}
	if opts.noValidate {
		popts.SkipValidate = true
	}
	popts.GeneratedAt = generatedAt
	popts.Logger = c.Logger
	return popts, nil
}

// fail prints err as a status line and marks it reported.
func (c *CLI) fail(err error) error {
	printError("Error converting knowledge graph: %s", kgerrors.UserMessage(err))
	if missing := kgerrors.MissingIDs(err); len(missing) > 0 {
		printDetail("Missing nodes: %s", strings.Join(missing, ", "))
		printWarning("Consider adding these as entities or use --no-validate to skip validation")
	}
	return reportedError{err: err}
}
