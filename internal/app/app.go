package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/stepsmith/stepsmith/internal/hclconf"
	"github.com/stepsmith/stepsmith/internal/tool"
	"github.com/stepsmith/stepsmith/internal/tool/fakemines"
	"github.com/stepsmith/stepsmith/internal/tool/scrollnorm"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	fileConf *hclconf.File
	registry *tool.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and tool
// registry.
func NewApp(outW io.Writer, config *Config) (*App, error) {
	var fileConf *hclconf.File
	if config.ConfigPath != "" {
		f, err := hclconf.Load(config.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		fileConf = f
	}

	// Command-line flags win over the config file, which wins over the
	// built-in defaults.
	level, format := config.LogLevel, config.LogFormat
	if fileConf != nil && fileConf.Logging != nil {
		if level == "" {
			level = fileConf.Logging.Level
		}
		if format == "" {
			format = fileConf.Logging.Format
		}
	}
	logger := newLogger(level, format, outW)
	logger.Debug("Logger configured successfully.", "level", level, "format", format)

	registry := tool.NewRegistry()
	fakemines.Register(registry)
	scrollnorm.Register(registry)
	logger.Debug("All tools registered.", "names", registry.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   config,
		fileConf: fileConf,
		registry: registry,
	}, nil
}

// Registry returns the application's tool registry. This is primarily for
// testing.
func (a *App) Registry() *tool.Registry {
	return a.registry
}
