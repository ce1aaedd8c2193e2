// Package cli implements the rover command-line interface.
//
// The commands wrap the layout pipeline for screen documents:
//   - layout: measure a document and write its placement tree
//   - render: write PNG, SVG, DOT or JSON renderings
//   - inspect: browse a placement tree interactively
//   - snapshot: compare a rendering against a golden PNG
//   - serve: run the HTTP API
//   - codec: encode and decode packed size values
//   - cache: manage the layout cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// load a rover.toml; flags given on the command line override it.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nagyist/rover-android/pkg/buildinfo"
	"github.com/nagyist/rover-android/pkg/cache"
	"github.com/nagyist/rover-android/pkg/config"
	"github.com/nagyist/rover-android/pkg/document"
	"github.com/nagyist/rover-android/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "rover"

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
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Rover lays out experience screens",
		Long: `Rover measures experience documents (JSON or YAML screen descriptions) with
a two-phase layout engine and renders the result as JSON, PNG, SVG or DOT.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./rover.toml if present)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging, overriding the config file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.codecCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and attaches the logger to the command
// context.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, _ := cfg.Log.ParseLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.cfg.Cache.Keyer(), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := c.cfg.Cache.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.cfg.Cache.Backend, "error", err)
		return cache.NewNullCache(), nil
	}
	return cc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by every command that measures a
// document. Unset flags fall back to the config file.
type layoutFlags struct {
	width      dimensionValue
	height     dimensionValue
	charWidth  int
	lineHeight int
	expand     int
	packed     bool
	noCache    bool
	refresh    bool
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.Var(&f.width, "width", `screen width, a number or "inf" (default from config, 360)`)
	fs.Var(&f.height, "height", `screen height, a number or "inf" (default from config, 640)`)
	fs.IntVar(&f.charWidth, "char-width", 0, "text cell width (default from config, 8)")
	fs.IntVar(&f.lineHeight, "line-height", 0, "text line height (default from config, 16)")
	fs.IntVar(&f.expand, "infinity-default", 0, "length expanding nodes take on an unbounded axis")
	fs.BoolVar(&f.packed, "packed", false, "route every query through the packed host transport")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// options merges the config file with the flags given on the command line.
func (c *CLI) options(path string, f *layoutFlags) pipeline.Options {
	opts := c.cfg.PipelineOptions()
	opts.Path = path
	opts.Logger = c.Logger
	opts.Refresh = f.refresh
	if f.width.set {
		opts.Width = f.width.d
	}
	if f.height.set {
		opts.Height = f.height.d
	}
	if f.charWidth > 0 {
		opts.Metrics.CharWidth = f.charWidth
	}
	if f.lineHeight > 0 {
		opts.Metrics.LineHeight = f.lineHeight
	}
	if f.expand > 0 {
		opts.InfinityDefault = f.expand
	}
	opts.PackedTransport = opts.PackedTransport || f.packed
	return opts
}

// dimensionValue is a pflag.Value accepting a number or "inf".
type dimensionValue struct {
	d   document.Dimension
	set bool
}

func (v *dimensionValue) String() string {
	if !v.set {
		return ""
	}
	return v.d.String()
}

func (v *dimensionValue) Set(s string) error {
	d, err := document.ParseDimension(s)
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("dimension cannot be negative")
	}
	v.d, v.set = d, true
	return nil
}

func (v *dimensionValue) Type() string { return "dimension" }

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return append([]string(nil), pipeline.DefaultFormats...)
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
