package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/gsaopt/internal/app"
	"github.com/vk/gsaopt/internal/cli"
	"github.com/vk/gsaopt/internal/config"
	"github.com/vk/gsaopt/internal/hclconfig"
)

// main is the entrypoint for the gsaopt application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("Could not load .env file.", "error", err)
	}

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	gsaApp, err := app.NewApp(outW, logW, appConfig, hclconfig.NewLoader())
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	if _, err := gsaApp.Run(context.Background()); err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}
	return nil
}
