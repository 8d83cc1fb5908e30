// Package cli implements the fiberfind command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fiberarts/fiberfind/pkg/buildinfo"
	"github.com/fiberarts/fiberfind/pkg/cache"
	"github.com/fiberarts/fiberfind/pkg/config"
	"github.com/fiberarts/fiberfind/pkg/geocode"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

// appName is the application name used for directories and display.
const appName = "fiberfind"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg        *config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. Configuration is loaded once, before any command runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Fiberfind explores the Ravelry pattern, yarn, and shop catalogs",
		Long: `Fiberfind is a CLI for fiber-arts research backed by the Ravelry API:
look up patterns and yarns, rank a designer's most recommended yarns,
find substitute yarns, and map which yarn shops near a city sit most
centrally among their neighbors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/fiberfind/config.toml)")

	root.AddCommand(c.patternCommand())
	root.AddCommand(c.yarnCommand())
	root.AddCommand(c.designerCommand())
	root.AddCommand(c.shopsCommand())
	root.AddCommand(c.centralCommand())
	root.AddCommand(c.alternativesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newByteCache picks the cache backend: redis when configured, file
// otherwise, null when caching is disabled.
func (c *CLI) newByteCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.cfg.Cache.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
	}
	return cache.NewFileCache(filepath.Join(c.cfg.Cache.Dir, "http"))
}

// newRavelry builds the API client from config. refresh bypasses cache
// reads, noCache disables the cache entirely.
func (c *CLI) newRavelry(ctx context.Context, refresh, noCache bool) (*ravelry.Client, error) {
	store, err := c.newByteCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return ravelry.NewClient(ravelry.Config{
		Username: c.cfg.Ravelry.Username,
		Password: c.cfg.Ravelry.Password,
		Cache:    store,
		CacheTTL: c.cfg.Cache.TTL.Std(),
		Refresh:  refresh,
	})
}

// newGeocoder builds the city geocoding provider.
func (c *CLI) newGeocoder() geocode.Provider {
	return geocode.NewMapsCo(c.cfg.Geocode.APIKey)
}
