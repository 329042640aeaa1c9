package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/chaingraph"
	"github.com/mki/isnad/pkg/pipeline"
	"github.com/mki/isnad/pkg/render"
)

var headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// classStyle colors a status cell with the diagram palette.
func classStyle(class string) lipgloss.Style {
	s := render.StyleFor(class)
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Stroke))
	if s.Bold {
		st = st.Bold(true)
	}
	return st
}

// renderChainTable lists every resolved chain, collector first, one row
// per narrator. The common link is marked in the last column.
func renderChainTable(res *pipeline.Result, locale string) string {
	l := isnad.Locale(locale)
	var link int
	if res.CommonLink != nil {
		link = res.CommonLink.Index
	}

	var (
		rows    [][]string
		classes []string
	)
	for ci, c := range res.Chains {
		for pos, n := range c {
			class := chaingraph.StyleOf(n.Status)
			mark := ""
			if res.CommonLink != nil && n.Index == link {
				class = graph.StylePivot
				mark = "◆"
			}
			rows = append(rows, []string{
				strconv.Itoa(ci + 1),
				strconv.Itoa(pos + 1),
				strconv.Itoa(n.Index),
				n.Name(l),
				isnad.StatusLabel(l, n.Status),
				isnad.GenerationLabel(l, n.Generation),
				mark,
			})
			classes = append(classes, class)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Chain", "#", "Index", "Narrator", "Status", "Generation", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(classes) {
				return base
			}
			switch col {
			case 0, 1, 2:
				return base.Foreground(colorDim)
			case 4, 6:
				return base.Inherit(classStyle(classes[row]))
			}
			return base
		})

	var b strings.Builder
	b.WriteString(StyleTitle.Render(res.Hadith.ID))
	if txt := res.Hadith.Text.Get(l); txt != "" {
		b.WriteString("  " + StyleDim.Render(truncate(txt, 72)))
	}
	b.WriteString("\n")
	b.WriteString(t.Render())
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
