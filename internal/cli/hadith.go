package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/repository"
)

// hadithCommand groups hadith listings.
func (c *CLI) hadithCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hadith",
		Short: "Browse hadiths in the store",
	}
	cmd.AddCommand(c.hadithListCommand())
	return cmd
}

func (c *CLI) hadithListCommand() *cobra.Command {
	var (
		page, size int
		source     string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hadiths one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHadithList(cmd.Context(), page, size, source, asJSON)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", repository.DefaultPageSize, "hadiths per page (max 100)")
	cmd.Flags().StringVar(&source, "source", "", "only list hadiths from this collection")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) runHadithList(ctx context.Context, page, size int, source string, asJSON bool) error {
	e, err := c.newEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.runner.Hadiths.GetPaginated(ctx, page, size, source)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(c.stdout(), p)
	}

	l := isnad.Locale(e.cfg.Render.Locale)
	for _, h := range p.Items {
		fmt.Fprintf(c.stdout(), "%-28s %s %s\n",
			StyleHighlight.Render(h.ID),
			StyleDim.Render(fmt.Sprintf("%d chain(s)", len(h.Chains))),
			truncate(strings.TrimSpace(h.Text.Get(l)), 60))
	}
	if len(p.Items) == 0 {
		printInfo("No hadiths on page %d", p.Page)
	}
	printDetail("page %d of %d · %d hadiths", p.Page, p.PageCount, p.Total)
	return nil
}
