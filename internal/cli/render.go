package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/omicalign/omicalign/pkg/errors"
	"github.com/omicalign/omicalign/pkg/pipeline"
	"github.com/omicalign/omicalign/pkg/resultio"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string
	formats  []string
	detailed bool
	isolated bool
}

// renderCommand creates the render command, producing graph artifacts from
// an exported alignment result without re-running the pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [result.json]",
		Short: "Render the group graph of an alignment result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseRenderFormats(formatsStr)
			return runRender(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list every group member in node labels")
	cmd.Flags().BoolVar(&opts.isolated, "isolated", false, "include groups without relations")

	return cmd
}

func runRender(path string, opts *renderOpts) error {
	res, err := resultio.ReadFile(path)
	if err != nil {
		return err
	}

	artifacts, err := pipeline.Export(res, pipeline.Options{
		Formats:         opts.formats,
		Detailed:        opts.detailed,
		IncludeIsolated: opts.isolated,
	})
	if err != nil {
		return err
	}

	for _, format := range opts.formats {
		out := outputPath(path, opts.output, format, len(opts.formats) > 1)
		if err := errors.ValidateOutputPath(out); err != nil {
			return err
		}
		if err := writeArtifact(out, artifacts[format]); err != nil {
			return err
		}
		printFile(out)
	}
	return nil
}

// parseRenderFormats parses the --format flag, defaulting to SVG.
func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
