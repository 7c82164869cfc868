package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/gsaopt/internal/app"
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

const longHelp = `gsaopt - a block-graph optimizer for GSA programs.

It merges adjacent straight-line blocks, hoists operations shared by both
arms of a decision, renames assignment blocks canonically and writes the
result to a new Optimized_<timestamp> directory.

Arguments:
  PATH
    A .gsa graph file, a .txt operation table and optionally a .mic
    listing, or a directory containing them.`

type flags struct {
	settings   string
	outDir     string
	logFormat  string
	logLevel   string
	dryRun     bool
	noColor    bool
	deadStores bool
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		f      flags
		config *app.Config
	)
	cmd := &cobra.Command{
		Use:           "gsaopt [flags] PATH...",
		Short:         "Optimize a GSA block graph and its operation table",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			if len(paths) == 0 {
				slog.Debug("No input path provided, printing usage and exiting.")
				return cmd.Help()
			}
			cfg, err := buildConfig(cmd, paths, f)
			if err != nil {
				return err
			}
			config = cfg
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	fs := cmd.Flags()
	fs.StringVarP(&f.settings, "config", "c", "", "Path to an HCL settings file.")
	fs.StringVarP(&f.outDir, "out-dir", "o", "", "Directory that receives the Optimized_<timestamp> folder.")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Optimize and print the listings, but write nothing.")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable highlighted listings.")
	fs.BoolVar(&f.deadStores, "dead-stores", false, "Enable dead-assignment elimination.")

	if err := cmd.Execute(); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if config == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func buildConfig(cmd *cobra.Command, paths []string, f flags) (*app.Config, error) {
	logFormat := strings.ToLower(f.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(f.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var deadStores *bool
	if cmd.Flags().Changed("dead-stores") {
		deadStores = &f.deadStores
	}

	config, err := app.NewConfig(app.Config{
		Paths:        paths,
		SettingsPath: f.settings,
		OutDir:       f.outDir,
		DeadStores:   deadStores,
		DryRun:       f.dryRun,
		NoColor:      f.noColor,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, nil
}
