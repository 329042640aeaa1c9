package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/pipeline"
	"github.com/mki/isnad/pkg/repository"
)

// browseCommand opens an interactive hadith picker and prints the chain
// table of the selected hadith.
func (c *CLI) browseCommand() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a hadith interactively and show its chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), source)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "only list hadiths from this collection")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, source string) error {
	e, err := c.newEnv(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	locale := isnad.Locale(e.cfg.Render.Locale)
	fetch := func(page int) (repository.Page, error) {
		return e.runner.Hadiths.GetPaginated(ctx, page, repository.DefaultPageSize, source)
	}

	final, err := tea.NewProgram(NewHadithListModel(fetch, locale), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	m := final.(HadithListModel)
	if m.Err != nil {
		return m.Err
	}
	if m.Selected == nil {
		return nil
	}

	res, err := e.runner.Chain(ctx, m.Selected.ID, pipeline.Options{
		Locale:      string(locale),
		PivotMarker: e.cfg.Render.PivotMarker,
		Logger:      loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	for _, g := range res.Gaps {
		printWarning("narrator %d missing from chain %d", g.Index, g.Chain+1)
	}
	fmt.Fprintln(c.stdout(), renderChainTable(res, string(locale)))
	printStats(res.Stats, res.CacheInfo.DiagramHit)
	return nil
}
