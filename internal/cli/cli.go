// SPDX-License-Identifier: MIT

// Package cli turns command-line arguments into a validated app.Config.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/gridpath/internal/app"
)

// ExitError carries the process exit code for a usage error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the config, whether the
// program should exit cleanly (help was requested), or an *ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	def := app.DefaultConfig()
	flagSet := flag.NewFlagSet("gridpath", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridpath - A* shortest paths on square grids.

Usage:
  gridpath [options] [SCENARIO]

Arguments:
  SCENARIO
    Path to an HCL scenario file. Without one an open grid of -size is used.

Options:
`)
		flagSet.PrintDefaults()
	}

	scenarioFlag := flagSet.String("scenario", "", "Path to the HCL scenario file.")
	sizeFlag := flagSet.Int("size", def.Size, "Grid side length when no scenario is given.")
	modeFlag := flagSet.String("mode", def.Mode, "Run mode. Options: 'solve' or 'animate'.")
	intervalFlag := flagSet.Duration("interval", def.Interval, "Delay between animated steps.")
	logFormatFlag := flagSet.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	metricsAddrFlag := flagSet.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. ':9090'. Empty disables.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := *scenarioFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 || (*scenarioFlag != "" && flagSet.NArg() > 0) {
		return nil, false, &ExitError{Code: 2, Message: "at most one scenario may be given"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ScenarioPath: path,
		Size:         *sizeFlag,
		Mode:         strings.ToLower(*modeFlag),
		Interval:     *intervalFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		MetricsAddr:  *metricsAddrFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished.", "config", config)
	return config, false, nil
}
