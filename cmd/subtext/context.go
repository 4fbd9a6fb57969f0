package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"subtext/internal/captions"
	"subtext/internal/captions/innertube"
	"subtext/internal/captions/watchpage"
	"subtext/internal/captions/ytdlp"
	"subtext/internal/config"
	"subtext/internal/logging"
	"subtext/internal/transcriptcache"
)

// reviewProvider names the upstream platform in review artifact paths.
const reviewProvider = "youtube"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger once and tags every record with a
// per-invocation run identifier so concurrent runs stay distinguishable in a
// shared log file.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger.With("run_id", uuid.NewString())
	})
	return c.logger, c.loggerErr
}

// newResolver assembles the tiered caption source chain from configuration.
// Tier order is fixed: structured API, watch page scrape, then the external
// downloader when it is enabled and installed.
func (c *commandContext) newResolver() (*captions.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	httpClient := captions.NewHTTPClient(
		time.Duration(cfg.HTTP.ConnectTimeoutSeconds)*time.Second,
		time.Duration(cfg.HTTP.ReadTimeoutSeconds)*time.Second,
	)

	sources := []captions.Source{
		innertube.NewClient(httpClient),
		watchpage.NewClient(httpClient, watchpage.WithUserAgent(cfg.HTTP.UserAgent)),
	}

	if cfg.YtDlp.Enabled {
		downloader := ytdlp.New(cfg.YtDlp.Binary, cfg.YtDlp.TimeoutSeconds)
		if downloader.Available() {
			sources = append(sources, downloader)
		} else {
			logger.Warn("external downloader tier disabled",
				"component", "cli",
				"binary", cfg.YtDlp.Binary,
				"reason", "binary not found in PATH")
		}
	}

	return captions.NewResolver(logger, sources...), nil
}

// openCache opens the transcript cache, or returns nil when caching is
// disabled in configuration.
func (c *commandContext) openCache() (*transcriptcache.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled || strings.TrimSpace(cfg.Cache.Path) == "" {
		return nil, nil
	}
	return transcriptcache.Open(cfg.Cache.Path)
}
