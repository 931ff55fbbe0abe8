package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicmap/pkg/buildinfo"
	"github.com/matzehuels/topicmap/pkg/cache"
	"github.com/matzehuels/topicmap/pkg/config"
	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/observability"
	"github.com/matzehuels/topicmap/pkg/pipeline"
	"github.com/matzehuels/topicmap/pkg/render/page"
	"github.com/matzehuels/topicmap/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "topicmap"

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

	// Out receives command output; stdout unless a test replaces it.
	Out io.Writer

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Topicmap browses topic hierarchies as mind maps",
		Long:         `Topicmap renders a topic tree as a navigable mind map: one focused topic with its parent and children, a breadcrumb and a context panel. Serve it over HTTP, render single pages, or browse it in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/topicmap/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.overviewCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.noCache {
		cfg.Cache.Backend = config.CacheNone
	}
	return cfg, nil
}

// treeSource picks the positional tree argument, falling back to the
// configured source.
func treeSource(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Source != "" {
		return cfg.Source, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "no tree given: pass a path or URL, or set source in the config file")
}

// newRunner opens spec and wraps it in a pipeline runner with the
// configured cache. Logging hooks are installed as a side effect.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, spec string) (*pipeline.Runner, error) {
	src, err := source.Open(spec)
	if err != nil {
		return nil, err
	}
	if h, ok := src.(*source.HTTP); ok && cfg.Server.LoadTimeout.Duration > 0 {
		h.Client.Timeout = cfg.Server.LoadTimeout.Duration
	}

	cc, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	keyer := cache.NewDefaultKeyer()
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Prefix)
	}

	installHooks(c.Logger)

	r := pipeline.NewRunner(src, cc, keyer, c.Logger)
	r.TTL = cfg.Cache.TTL.Duration
	return r, nil
}

// newCache builds the configured backend. An unusable file cache
// directory degrades to no caching; an unreachable Redis is an error.
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		dir, err := fileCacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

func installHooks(logger *log.Logger) {
	h := newLogHooks(logger)
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// pageOptions applies the [render] config table over the page defaults.
func pageOptions(cfg config.RenderConfig) page.Options {
	opts := page.DefaultOptions()
	if cfg.Title != "" {
		opts.Title = cfg.Title
	}
	if cfg.LinkBase != "" {
		opts.LinkBase = cfg.LinkBase
	}
	opts.LeftAlignText = cfg.LeftAlignText
	opts.NoClamp = cfg.NoClamp
	return opts
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/topicmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
