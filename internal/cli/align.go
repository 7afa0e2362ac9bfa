package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omicalign/omicalign/pkg/errors"
	"github.com/omicalign/omicalign/pkg/pipeline"
	"github.com/omicalign/omicalign/pkg/resultio"
	"github.com/omicalign/omicalign/pkg/store"
)

// alignOpts holds the command-line flags for the align command.
type alignOpts struct {
	output    string // output file path (single format) or base path (multiple)
	formats   []string
	detailed  bool // list every member in graph node labels
	isolated  bool // include groups without relations in graph output
	noCache   bool
	refresh   bool
	storeURI  string // MongoDB URI; when set, the run is persisted
	storeDB   string
	storeColl string
}

// alignCommand creates the align command, the main entry point of the CLI.
// It loads datasets from a TOML manifest, aligns their identifiers, and
// writes the requested artifacts.
func (c *CLI) alignCommand() *cobra.Command {
	var formatsStr string
	opts := alignOpts{}

	cmd := &cobra.Command{
		Use:   "align [manifest]",
		Short: "Align identifiers across the datasets of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runAlign(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list every group member in graph node labels")
	cmd.Flags().BoolVar(&opts.isolated, "isolated", false, "include groups without relations in graph output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and re-align")
	cmd.Flags().StringVar(&opts.storeURI, "store-uri", "", "MongoDB URI; when set, the run is persisted")
	cmd.Flags().StringVar(&opts.storeDB, "store-db", appName, "MongoDB database for persisted runs")
	cmd.Flags().StringVar(&opts.storeColl, "store-collection", "", "MongoDB collection for persisted runs")

	return cmd
}

func (c *CLI) runAlign(cmd *cobra.Command, manifest string, opts *alignOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	run, err := runner.Execute(ctx, pipeline.Options{
		Manifest:        manifest,
		Refresh:         opts.refresh,
		Formats:         opts.formats,
		Detailed:        opts.detailed,
		IncludeIsolated: opts.isolated,
		Logger:          c.Logger,
	})
	if err != nil {
		printError("Alignment failed: %s", errors.UserMessage(err))
		return err
	}

	printSuccess("Aligned %d datasets", run.Stats.Datasets)
	printStats(run.Stats.Groups, run.Stats.Members, run.Stats.Relations, run.CacheInfo.AlignHit)
	if n := len(run.Result.Unclassified()); n > 0 {
		printWarning("%d cross-references could not be classified", n)
	}

	for _, format := range opts.formats {
		path := outputPath(manifest, opts.output, format, len(opts.formats) > 1)
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := writeArtifact(path, run.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}

	if opts.storeURI != "" {
		if err := c.saveRun(cmd, run, opts); err != nil {
			return err
		}
	}

	if len(opts.formats) == 1 && opts.formats[0] == pipeline.FormatJSON {
		printNewline()
		path := outputPath(manifest, opts.output, pipeline.FormatJSON, false)
		printNextStep("Inspect the result", fmt.Sprintf("%s inspect %s", appName, path))
	}
	return nil
}

func (c *CLI) saveRun(cmd *cobra.Command, run *pipeline.Run, opts *alignOpts) error {
	ctx := cmd.Context()
	st, err := store.NewMongoStore(ctx, opts.storeURI, opts.storeDB, opts.storeColl)
	if err != nil {
		printError("Store unavailable: %s", errors.UserMessage(err))
		return err
	}
	defer st.Close(ctx)

	if err := st.Save(ctx, run.RunID, resultio.FromResult(run.Result)); err != nil {
		printError("Failed to persist run: %s", errors.UserMessage(err))
		return err
	}
	printSuccess("Persisted run")
	printKeyValue("run id", run.RunID)
	return nil
}

// outputPath derives the artifact path for a format. With an explicit
// output and a single format the output is used verbatim; otherwise the
// format is appended as extension to the output base or the manifest name.
func outputPath(manifest, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(manifest, filepath.Ext(manifest))
	}
	return base + "." + format
}
