package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/chain"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultDiagramTTL is how long a cached diagram description is reused.
	DefaultDiagramTTL = 24 * time.Hour

	// DefaultArtifactTTL is how long rendered artifacts are reused. They are
	// keyed by diagram content, so they never go stale.
	DefaultArtifactTTL = 7 * 24 * time.Hour

	// DefaultParallelism bounds ChainMany.
	DefaultParallelism = 4

	// DefaultPNGScale is the resolution multiplier of PNG output.
	DefaultPNGScale = 2.0
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatMermaid = "mermaid"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatMermaid}

// ContentTypes maps formats to their MIME type.
var ContentTypes = map[string]string{
	FormatJSON:    "application/json",
	FormatDOT:     "text/vnd.graphviz; charset=utf-8",
	FormatSVG:     "image/svg+xml",
	FormatPNG:     "image/png",
	FormatPDF:     "application/pdf",
	FormatMermaid: "text/plain; charset=utf-8",
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that format is supported. Formats are lower case.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLocale checks that l is a supported locale.
func ValidateLocale(l string) error {
	if _, ok := isnad.ParseLocale(l); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unsupported locale %q", l)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. It is JSON serializable so the HTTP
// layer can accept it directly.
type Options struct {
	// Locale selects node labels. Defaults to isnad.DefaultLocale.
	Locale string `json:"locale,omitempty"`

	// PivotMarker replaces the localized common-link marker.
	PivotMarker string `json:"pivot_marker,omitempty"`

	// Formats to render. Defaults to json.
	Formats []string `json:"formats,omitempty"`

	// Detailed adds narrator index and style class to node-link labels.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cached diagrams and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Locale == "" {
		o.Locale = string(isnad.DefaultLocale)
	}
	l, ok := isnad.ParseLocale(o.Locale)
	if !ok {
		return ValidateLocale(o.Locale)
	}
	o.Locale = string(l)
	o.PivotMarker = strings.TrimSpace(o.PivotMarker)

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// DiagramKeyOpts returns the cache key inputs of the diagram.
func (o *Options) DiagramKeyOpts(store string) cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{Locale: o.Locale, PivotMarker: o.PivotMarker, Store: store}
}

// ArtifactKeyOpts returns the cache key inputs of one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	if o.Detailed && (format == FormatDOT || format == FormatSVG || format == FormatPNG || format == FormatPDF) {
		format += "+detailed"
	}
	return cache.ArtifactKeyOpts{Format: format}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a pipeline run.
type Result struct {
	Hadith isnad.Hadith

	// Chains are the resolved chains in hadith order, collector first.
	Chains []isnad.ResolvedChain

	// Gaps lists every narrator index that did not resolve.
	Gaps []chain.Gap

	// CommonLink is the pivot narrator, or nil.
	CommonLink *isnad.Narrator

	Diagram     graph.Diagram
	DiagramHash string

	// RemovedEdges are edges dropped to break cycles in inconsistent data.
	RemovedEdges []graph.Edge

	// Empty is set when no chain resolved to any narrator.
	Empty bool

	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	GapCount    int
	ResolveTime time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks which stages were served from cache.
type CacheInfo struct {
	DiagramHit bool
	RenderHit  bool // every requested artifact came from cache
}
