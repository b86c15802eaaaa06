package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/config"
	"github.com/san-kum/bookloader/internal/logging"
	"github.com/san-kum/bookloader/internal/sim"
)

const defaultConfigFile = "bookloader.yaml"

var (
	cfg     *config.Config
	logger  = logging.NullLogger()
	logFile io.Closer
)

// setup resolves the effective config: preset, then config file, then
// BOOKLOADER_* environment, then explicitly set flags.
func setup(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	log, closer, err := logging.Setup(cfg.Logging)
	if err != nil {
		printErr("logging disabled: %v", err)
		return nil
	}
	logger, logFile = log, closer
	slog.SetDefault(logger)
	logger.Info("command start", "command", cmd.CommandPath(), "scale", cfg.Scale, "policy", cfg.Policy)
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	logger.Info("command finish")
	if logFile != nil {
		logFile.Close()
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		c = p
	}

	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && configFile == "" {
				loaded = c
			} else {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
		c = loaded
	}

	if err := config.ApplyEnv(c); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.DataDir = dataDir
	}
	if flags.Changed("scale") {
		c.Scale = scale
	}
	if flags.Changed("policy") {
		c.Policy = policy
	}
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if flags.Changed("theme") {
		c.Theme = theme
	}
	if flags.Changed("fps") {
		c.FPS = frameRate
	}
	if flags.Changed("dt") {
		c.Dt = dt
	}
	if flags.Changed("time") {
		c.Duration = duration
	}
	if flags.Changed("warmup") {
		c.Warmup = warmup
	}
	if flags.Changed("width") {
		c.Render.Width = imgWidth
	}
	if flags.Changed("height") {
		c.Render.Height = imgHeight
	}
	if flags.Changed("color") {
		c.Render.Color = color
	}
	if flags.Changed("background") {
		c.Render.Background = background
	}
	if flags.Changed("caption") {
		c.Render.Caption = caption
	}
	return c, nil
}

func bookPolicy() book.Policy {
	p, _ := book.ParsePolicy(cfg.Policy)
	return p
}

// samplerConfig builds the sampler settings from the effective config.
func samplerConfig() sim.Config {
	return sim.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Scale:    cfg.Scale,
		Policy:   bookPolicy(),
		Warmup:   cfg.Warmup,
		Taps:     taps,
		Logger:   logger,
	}
}
