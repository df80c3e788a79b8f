package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Command selects what the App does: "serve", "fake-mines" or
	// "fix-scroll".
	Command string

	// Path is the simfile, song directory or pack directory the tool
	// commands operate on.
	Path string

	// Output redirects the transformed simfile to a new file instead of
	// writing in place with a backup.
	Output string

	DryRun            bool
	AllowSimultaneous bool
	AllowSplitTiming  bool
	IgnoreSM          bool

	// Recursive treats Path as a pack directory and processes every song
	// directory under it.
	Recursive bool
	Workers   int

	// ConfigPath points at an optional HCL configuration file.
	ConfigPath string

	// ListenAddr overrides the web server's listen address. Empty means
	// "use the config file value or the built-in default".
	ListenAddr string

	// LogLevel and LogFormat configure the logger. Empty means "use the
	// config file value or the built-in default".
	LogLevel  string
	LogFormat string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case "serve":
	case "fake-mines", "fix-scroll":
		if cfg.Path == "" {
			return nil, errors.New("a simfile or song directory path is required")
		}
		if cfg.Recursive && cfg.Output != "" {
			return nil, errors.New("-o cannot be combined with -recursive")
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return &cfg, nil
}
