package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/stepsmith/stepsmith/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usage = `stepsmith - tools for batch-editing StepMania SSC simfiles.

Usage:
  stepsmith <command> [options] [PATH]

Commands:
  fake-mines   Add a short fake region on every isolated mine.
  fix-scroll   Normalize scroll rates so songs scroll at the display BPM.
  serve        Run the web UI for the tools above.

Run 'stepsmith <command> -h' for the options of a command.
`

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}

	switch args[0] {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	case "serve":
		return parseServe(args[1:], output)
	case "fake-mines", "fix-scroll":
		return parseTool(args[0], args[1:], output)
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q; run 'stepsmith -h' for usage", args[0])}
	}
}

// logFlags registers the flags every command shares. The returned values
// stay empty unless the user sets them, so the config file and built-in
// defaults can fill the gaps.
func logFlags(flagSet *flag.FlagSet) (level, format *string) {
	level = flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	format = flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	return level, format
}

func validateLogFlags(level, format string) error {
	switch level {
	case "", "debug", "info", "warn", "error":
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	switch format {
	case "", "text", "json":
	default:
		return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	return nil
}

func parseServe(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("stepsmith serve", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, "Usage:\n  stepsmith serve [options]\n\nOptions:\n")
		flagSet.PrintDefaults()
	}

	listenFlag := flagSet.String("listen", "", "Address for the web server to listen on, e.g. ':8080'.")
	configFlag := flagSet.String("config", "", "Path to an HCL configuration file.")
	levelFlag, formatFlag := logFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		return exitFromFlagError(err)
	}
	logLevel := strings.ToLower(*levelFlag)
	logFormat := strings.ToLower(*formatFlag)
	if err := validateLogFlags(logLevel, logFormat); err != nil {
		return nil, false, err
	}

	config, err := app.NewConfig(app.Config{
		Command:    "serve",
		ListenAddr: *listenFlag,
		ConfigPath: *configFlag,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", "serve")
	return config, false, nil
}

func parseTool(command string, args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("stepsmith "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, "Usage:\n  stepsmith %s [options] PATH\n\nArguments:\n  PATH\n    Path to an .ssc file, a song directory, or (with -recursive) a pack directory.\n\nOptions:\n", command)
		flagSet.PrintDefaults()
	}

	dryRunFlag := flagSet.Bool("dry-run", false, "Preview changes without writing the file.")
	recursiveFlag := flagSet.Bool("recursive", false, "Treat PATH as a pack directory and process every song under it.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent workers for -recursive runs.")
	levelFlag, formatFlag := logFlags(flagSet)

	var allowSimultaneousFlag, allowSplitTimingFlag, ignoreSMFlag *bool
	var outputFlag *string
	switch command {
	case "fake-mines":
		allowSimultaneousFlag = flagSet.Bool("allow-simultaneous", false, "Tolerate mines on the same beat as notes in the same chart, leaving them hittable.")
		allowSplitTimingFlag = flagSet.Bool("allow-split-timing", false, "Copy timing data into charts when mines conflict with notes in other charts.")
		ignoreSMFlag = flagSet.Bool("ignore-sm", false, "Suppress the warning about a neighboring .sm file.")
	case "fix-scroll":
		outputFlag = flagSet.String("o", "", "Write the result to this file instead of modifying PATH in place.")
	}

	if err := flagSet.Parse(args); err != nil {
		return exitFromFlagError(err)
	}
	logLevel := strings.ToLower(*levelFlag)
	logFormat := strings.ToLower(*formatFlag)
	if err := validateLogFlags(logLevel, logFormat); err != nil {
		return nil, false, err
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected exactly one PATH argument"}
	}

	cfg := app.Config{
		Command:   command,
		Path:      flagSet.Arg(0),
		DryRun:    *dryRunFlag,
		Recursive: *recursiveFlag,
		Workers:   *workersFlag,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
	if allowSimultaneousFlag != nil {
		cfg.AllowSimultaneous = *allowSimultaneousFlag
	}
	if allowSplitTimingFlag != nil {
		cfg.AllowSplitTiming = *allowSplitTimingFlag
	}
	if ignoreSMFlag != nil {
		cfg.IgnoreSM = *ignoreSMFlag
	}
	if outputFlag != nil {
		cfg.Output = *outputFlag
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", command, "path", config.Path)
	return config, false, nil
}

func exitFromFlagError(err error) (*app.Config, bool, error) {
	if err == flag.ErrHelp {
		return nil, true, nil
	}
	return nil, false, &ExitError{Code: 2, Message: err.Error()}
}
