package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/grade"
)

// classification is the JSON form of one classified grade.
type classification struct {
	Grade      string           `json:"grade"`
	Status     isnad.Status     `json:"status"`
	Generation isnad.Generation `json:"generation"`
	Rule       string           `json:"rule,omitempty"`
}

func classifyGrade(raw string) classification {
	res := grade.Classify(raw)
	status, gen := grade.Both(raw)
	return classification{Grade: raw, Status: status, Generation: gen, Rule: res.Rule}
}

// classifyCommand runs the grade classifier on free text, offline.
func (c *CLI) classifyCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify [grade...]",
		Short: "Classify biographical grade strings",
		Long: `Classify biographical grade strings into a status and a generation.

Each argument is classified on its own:

  isnad classify "Thiqah Hafiz [5th Generation]" "Comp.(RA) [1st Generation]"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]classification, len(args))
			for i, a := range args {
				out[i] = classifyGrade(a)
			}
			if asJSON {
				return writeJSON(c.stdout(), out)
			}
			for _, r := range out {
				rule := r.Rule
				if rule == "" {
					rule = "default"
				}
				fmt.Fprintf(c.stdout(), "%s\n  %s %s  %s %s  %s\n",
					StyleValue.Render(strings.TrimSpace(r.Grade)),
					StyleDim.Render("status"), StyleHighlight.Render(string(r.Status)),
					StyleDim.Render("generation"), StyleHighlight.Render(string(r.Generation)),
					StyleDim.Render("("+rule+")"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
