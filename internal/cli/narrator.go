package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/repository"
)

// narratorCommand groups narrator lookups.
func (c *CLI) narratorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narrator",
		Short: "Look up narrators",
	}
	cmd.AddCommand(c.narratorGetCommand())
	cmd.AddCommand(c.narratorSearchCommand())
	return cmd
}

func (c *CLI) narratorGetCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get [index]",
		Short: "Show one narrator by index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := errors.ParseIndex(args[0])
			if err != nil {
				return err
			}
			return c.runNarratorGet(cmd.Context(), index, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) runNarratorGet(ctx context.Context, index int, asJSON bool) error {
	e, err := c.newEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	n, err := e.runner.Narrators.GetByIndex(ctx, index)
	if err != nil {
		return err
	}
	if n == nil {
		return errors.New(errors.ErrCodeNarratorNotFound, "narrator %d not found", index)
	}
	if asJSON {
		return writeJSON(c.stdout(), n)
	}
	printNarrator(c.stdout(), *n, isnad.Locale(e.cfg.Render.Locale))
	return nil
}

func (c *CLI) narratorSearchCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search narrators by name or grade",
		Long: `Search narrators by name or grade.

Matching ignores case, Arabic diacritics and letter variants, so "الاعمش"
finds "الأعمش". Results are ordered by narrator index.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNarratorSearch(cmd.Context(), args[0], limit, asJSON)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", repository.DefaultSearchLimit, "maximum results (capped at 100)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) runNarratorSearch(ctx context.Context, query string, limit int, asJSON bool) error {
	e, err := c.newEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	ns, err := e.runner.Narrators.Search(ctx, query, limit)
	if err != nil {
		return err
	}
	if asJSON {
		if ns == nil {
			ns = []isnad.Narrator{}
		}
		return writeJSON(c.stdout(), ns)
	}
	if len(ns) == 0 {
		printInfo("No narrator matches %q", query)
		return nil
	}

	l := isnad.Locale(e.cfg.Render.Locale)
	for _, n := range ns {
		fmt.Fprintf(c.stdout(), "%s  %s  %s\n",
			StyleHighlight.Render(fmt.Sprintf("%6d", n.Index)),
			StyleValue.Render(n.Name(l)),
			StyleDim.Render(isnad.StatusLabel(l, n.Status)))
	}
	printDetail("%d result(s)", len(ns))
	return nil
}

func printNarrator(w io.Writer, n isnad.Narrator, l isnad.Locale) {
	fmt.Fprintln(w, StyleTitle.Render(n.Name(l)))
	printKeyValue(w, "Index", strconv.Itoa(n.Index))
	for _, loc := range isnad.Locales {
		if name := n.Names[loc]; name != "" {
			printKeyValue(w, "Name ("+string(loc)+")", name)
		}
	}
	printKeyValue(w, "Status", isnad.StatusLabel(l, n.Status))
	printKeyValue(w, "Generation", isnad.GenerationLabel(l, n.Generation))
	if n.Grade != "" {
		printKeyValue(w, "Grade", n.Grade)
	}
	if n.BirthYear != nil {
		printKeyValue(w, "Born", fmt.Sprintf("%d AH", *n.BirthYear))
	}
	if n.DeathYear != nil {
		printKeyValue(w, "Died", fmt.Sprintf("%d AH", *n.DeathYear))
	}
	if bio := n.Biography.Get(l); bio != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleDim.Render(bio))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
