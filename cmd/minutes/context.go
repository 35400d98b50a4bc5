package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"minutes/internal/config"
	"minutes/internal/formats"
	"minutes/internal/formatstore"
	"minutes/internal/localization"
	"minutes/internal/logging"
)

type commandContext struct {
	configFlag *string
	langFlag   *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, langFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		langFlag:   langFlag,
		verbose:    verbose,
	}
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
		if c.verbose != nil && *c.verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// language returns the --lang flag when set, otherwise the configured locale.
func (c *commandContext) language(cfg *config.Config) string {
	if c.langFlag != nil {
		if lang := strings.TrimSpace(*c.langFlag); lang != "" {
			return lang
		}
	}
	return cfg.Locale.Language
}

// commandCtx tags the cobra context with a correlation id so every log line
// from one invocation can be grouped.
func commandCtx(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithCorrelationID(ctx, uuid.NewString())
}

// withManager boots the format catalog, runs fn, then drains pending writes.
// A store that cannot be opened degrades to an in-memory catalog.
func (c *commandContext) withManager(ctx context.Context, fn func(*formats.Manager) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	bundle, err := localization.NewBundle()
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	localizer, err := bundle.Localizer(c.language(cfg))
	if err != nil {
		return err
	}

	var repo formats.Repository
	store, err := formatstore.Open(cfg)
	if err != nil {
		logging.WithContext(ctx, logger).Warn("format store unavailable; changes will not be saved",
			logging.String("path", cfg.FormatStorePath()),
			logging.Error(err),
		)
	} else {
		defer store.Close()
		repo = store
	}

	mgr := formats.NewManager(repo, localizer,
		formats.WithLogger(logger),
		formats.WithLanguage(localizer.Tag()),
	)
	defer func() {
		if closeErr := mgr.Close(context.WithoutCancel(ctx)); closeErr != nil {
			logging.WithContext(ctx, logger).Warn("format writes not drained", logging.Error(closeErr))
		}
	}()

	if err := mgr.Bootstrap(ctx); err != nil {
		return fmt.Errorf("load formats: %w", err)
	}
	return fn(mgr)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
