package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mki/isnad/pkg/backend"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/repository"
	"github.com/mki/isnad/pkg/repository/csvstore"
)

// importCommand loads narrator and hadith CSV exports into the configured
// database store.
func (c *CLI) importCommand() *cobra.Command {
	var narrators, hadiths string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load CSV exports into the configured database store",
		Long: `Load CSV exports into the configured database store.

The store must be sqlite, postgres or mongo. Existing narrators and hadiths
with the same keys are replaced, including their chains.

  isnad import --narrators all_rawis.csv --hadiths hadiths.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), narrators, hadiths)
		},
	}
	cmd.Flags().StringVar(&narrators, "narrators", "", "narrator CSV (scholar_indx, name, grade, ...)")
	cmd.Flags().StringVar(&hadiths, "hadiths", "", "hadith CSV (id, source, hadith_no, chain_indx, ...)")
	_ = cmd.MarkFlagRequired("narrators")
	_ = cmd.MarkFlagRequired("hadiths")
	return cmd
}

func (c *CLI) runImport(ctx context.Context, narratorsPath, hadithsPath string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, err := csvstore.LoadFile(narratorsPath, hadithsPath)
	if err != nil {
		return err
	}
	if src.Narrators.Skipped+src.Hadiths.Skipped > 0 {
		printWarning("skipped %d malformed row(s)", src.Narrators.Skipped+src.Hadiths.Skipped)
	}

	e, err := c.newEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	imp, ok := e.store.(backend.Importer)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "store %s does not accept imports", repository.BackendName(e.store))
	}

	ns, hs := src.All()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Importing %d narrators and %d hadiths...", len(ns), len(hs)))
	spinner.Start()
	if err := imp.Import(ctx, ns, hs); err != nil {
		spinner.StopWithError("Import failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Imported %d narrators and %d hadiths into %s", len(ns), len(hs), repository.BackendName(e.store)))
	return nil
}
