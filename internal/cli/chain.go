package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mki/isnad/pkg/pipeline"
)

// formatTable prints the resolved chains instead of writing an artifact.
const formatTable = "table"

// chainCommand creates the chain command, the main entry point of the CLI.
func (c *CLI) chainCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "chain [hadith-id]",
		Short: "Resolve the narrator chains of a hadith and render the graph",
		Long: `Resolve the narrator chains of a hadith and render the graph.

Every chain is resolved against the narrator store in one batch. Narrators
missing from the store are reported and skipped. When two or more chains
meet at the same narrator, that narrator is marked as the common link.

Formats: json (default), dot, svg, png, pdf, mermaid, table. Text formats
are printed to stdout unless -o is given; binary formats default to
<hadith-id>.<format>.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeHadithIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			table := slices.Contains(formats, formatTable)
			opts.Formats = slices.DeleteFunc(slices.Clone(formats), func(f string) bool { return f == formatTable })
			if len(opts.Formats) == 0 && !table {
				opts.Formats = []string{pipeline.FormatJSON}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runChain(cmd.Context(), args[0], opts, table, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png, pdf, mermaid, table (comma-separated)")
	cmd.Flags().StringVarP(&opts.Locale, "locale", "l", "", "label locale: en, ar, fr (default from config)")
	cmd.Flags().StringVar(&opts.PivotMarker, "pivot-marker", "", "text appended to the common link label")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show narrator index and class in DOT labels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild even when a cached diagram exists")

	return cmd
}

func (c *CLI) runChain(ctx context.Context, hadithID string, opts pipeline.Options, table bool, output string, noCache bool) error {
	e, err := c.newEnv(ctx, noCache)
	if err != nil {
		return err
	}
	defer e.Close()

	if opts.Locale == "" {
		opts.Locale = e.cfg.Render.Locale
	}
	if opts.PivotMarker == "" {
		opts.PivotMarker = e.cfg.Render.PivotMarker
	}
	opts.Logger = loggerFromContext(ctx)

	prog := newProgress(opts.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s...", hadithID))
	spinner.Start()

	res, err := e.runner.Chain(ctx, hadithID, opts)
	if err == nil && len(opts.Formats) > 0 {
		spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
		err = e.runner.Render(ctx, res, opts)
	}
	if err != nil {
		spinner.StopWithError("Chain failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Resolved %d chains", len(res.Chains)))

	for _, g := range res.Gaps {
		printWarning("narrator %d missing from chain %d", g.Index, g.Chain+1)
	}
	if res.Empty {
		printWarning("no narrator of %s could be resolved", hadithID)
	}

	if table {
		fmt.Fprintln(c.stdout(), renderChainTable(res, opts.Locale))
		printStats(res.Stats, res.CacheInfo.DiagramHit)
	}
	if len(opts.Formats) == 0 {
		return nil
	}

	return writeArtifacts(c.stdout(), artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		name:      hadithID,
		output:    output,
		cacheHit:  res.CacheInfo.DiagramHit && res.CacheInfo.RenderHit,
		stats:     res.Stats,
	})
}
