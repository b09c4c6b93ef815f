package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vk/t3dlaunch/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("t3dlaunch", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
t3dlaunch - Loads the native libraries of a Tiny3D variant and calls its entry point.

Usage:
  t3dlaunch [options] VARIANT [-- ARGS...]

Arguments:
  VARIANT
    Name of a built-in or configured variant, see -list.
  ARGS
    Passed to the native entry point after argv[0].

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "manifests", "Path to an .hcl file or a directory of .hcl files with library, app and plugins blocks.")
	libPathFlag := flagSet.String("lib-path", "", "Directories searched for shared objects, separated by the OS path list separator.")
	listFlag := flagSet.Bool("list", false, "Print the registered variants with their load order and exit.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Load the libraries and resolve the entry point without calling it.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var variant string
	var nativeArgs []string
	if rest := flagSet.Args(); len(rest) > 0 {
		variant = rest[0]
		rest = rest[1:]
		if len(rest) > 0 && rest[0] == "--" {
			rest = rest[1:]
		}
		if len(rest) > 0 {
			nativeArgs = rest
		}
	}
	slog.Debug("Variant determined.", "variant", variant, "args", nativeArgs)

	if variant == "" && !*listFlag {
		slog.Debug("No variant provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var libPaths []string
	if *libPathFlag != "" {
		libPaths = filepath.SplitList(*libPathFlag)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPath:    *manifestFlag,
		Variant:         variant,
		LibraryPaths:    libPaths,
		Args:            nativeArgs,
		List:            *listFlag,
		DryRun:          *dryRunFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
