package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/repository"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// HadithListModel - Interactive hadith selection
// =============================================================================

// PageFetcher loads one page of hadiths.
type PageFetcher func(page int) (repository.Page, error)

type pageMsg struct {
	page repository.Page
	err  error
}

// HadithListModel is the bubbletea model for picking a hadith.
type HadithListModel struct {
	Fetch    PageFetcher
	Locale   isnad.Locale
	Page     repository.Page
	Cursor   int
	Selected *isnad.Hadith
	Err      error
	loading  bool
}

// NewHadithListModel creates a model that starts on page 1.
func NewHadithListModel(fetch PageFetcher, locale isnad.Locale) HadithListModel {
	return HadithListModel{Fetch: fetch, Locale: locale, loading: true}
}

func (m HadithListModel) load(page int) tea.Cmd {
	return func() tea.Msg {
		p, err := m.Fetch(page)
		return pageMsg{page: p, err: err}
	}
}

func (m HadithListModel) Init() tea.Cmd {
	return m.load(1)
}

func (m HadithListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageMsg:
		m.loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, tea.Quit
		}
		m.Page = msg.page
		m.Cursor = 0
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Page.Items)-1 {
				m.Cursor++
			}
		case "right", "l", "n":
			if !m.loading && m.Page.Page < m.Page.PageCount {
				m.loading = true
				return m, m.load(m.Page.Page + 1)
			}
		case "left", "h", "p":
			if !m.loading && m.Page.Page > 1 {
				m.loading = true
				return m, m.load(m.Page.Page - 1)
			}
		case "enter":
			if len(m.Page.Items) == 0 {
				return m, nil
			}
			h := m.Page.Items[m.Cursor]
			m.Selected = &h
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m HadithListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Hadith"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ page  ⏎ show chains  q quit"))
	b.WriteString("\n\n")

	if m.loading && len(m.Page.Items) == 0 {
		b.WriteString(listDimStyle.Render("  loading..."))
		return b.String()
	}

	rows := make([][]string, 0, len(m.Page.Items))
	for i, h := range m.Page.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			h.ID,
			h.Source,
			fmt.Sprintf("%d", len(h.Chains)),
			truncate(strings.TrimSpace(h.Text.Get(m.Locale)), 48),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Hadith", "Source", "Chains", "Text").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col == 2 || col == 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [page %d/%d · %d hadiths]", m.Page.Page, max(m.Page.PageCount, 1), m.Page.Total)))

	return b.String()
}
