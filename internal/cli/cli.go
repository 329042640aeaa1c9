package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mki/isnad/pkg/backend"
	"github.com/mki/isnad/pkg/buildinfo"
	"github.com/mki/isnad/pkg/config"
	"github.com/mki/isnad/pkg/httputil"
	"github.com/mki/isnad/pkg/pipeline"
	"github.com/mki/isnad/pkg/repository"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	out        io.Writer // nil means os.Stdout
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetOutput redirects command output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) { c.out = w }

func (c *CLI) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "isnad resolves hadith narrator chains into layered graphs",
		Long: `isnad resolves the chains of narrators (isnad) of a hadith into a layered
graph, finds the common link where independent chains converge, and renders
the result as JSON, DOT, SVG, PNG, PDF, Mermaid or a terminal table.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/isnad/config.toml)")

	root.AddCommand(c.chainCommand())
	root.AddCommand(c.narratorCommand())
	root.AddCommand(c.hadithCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the configuration named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "store", cfg.Store.Kind, "cache", cfg.Cache.Kind)
	return cfg, nil
}

// env bundles what a command needs to run the pipeline.
type env struct {
	cfg    config.Config
	store  repository.Store
	runner *pipeline.Runner
}

func (e *env) Close() {
	e.runner.Close()
	e.store.Close()
}

// newEnv opens the configured store and cache. With noCache the diagram
// cache is replaced by a null cache.
func (c *CLI) newEnv(ctx context.Context, noCache bool) (*env, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.Cache.Kind = config.CacheNone
	}

	dc, keyer, err := backend.OpenCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	client := httputil.NewClient(dc, cfg.Cache.TTL)
	client.Keyer = keyer
	store, err := backend.OpenStore(ctx, cfg.Store, client, c.Logger)
	if err != nil {
		dc.Close()
		return nil, err
	}

	runner := pipeline.NewRunner(
		repository.NewNarrators(store, c.Logger),
		repository.NewHadiths(store, c.Logger),
		dc, keyer, c.Logger)
	runner.Store = repository.BackendName(store)
	runner.DiagramTTL = cfg.Cache.TTL

	return &env{cfg: cfg, store: store, runner: runner}, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
