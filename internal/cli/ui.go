package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mki/isnad/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by commands and the browse view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

// statusOut receives status lines. Artifacts, tables and JSON go to the
// command's stdout so that they stay pipeable.
var statusOut io.Writer = os.Stderr

type statusKind struct {
	icon  string
	style lipgloss.Style
}

var (
	kindSuccess = statusKind{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	kindError   = statusKind{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	kindWarning = statusKind{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	kindInfo    = statusKind{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func status(k statusKind, msg string) {
	fmt.Fprintln(statusOut, k.style.Render(k.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { status(kindSuccess, fmt.Sprintf(format, args...)) }
func printError(format string, args ...any) { status(kindError, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any) { status(kindInfo, fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status(kindWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarizes a chain run, e.g. "10 narrators · 11 links · cached".
func printStats(st pipeline.Stats, cached bool) {
	var parts []string
	if st.NodeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d narrators", st.NodeCount))
	}
	if st.EdgeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d links", st.EdgeCount))
	}
	if st.GapCount > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d missing", st.GapCount)))
	}
	if cached {
		parts = append(parts, kindSuccess.style.Render("cached"))
	} else {
		parts = append(parts, "fresh")
	}
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}
