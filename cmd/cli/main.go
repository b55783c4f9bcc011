package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/xspecgen/internal/app"
	"github.com/vk/xspecgen/internal/cli"
	"github.com/vk/xspecgen/internal/hcl"
	"github.com/vk/xspecgen/internal/modeldat"
)

// main is the entrypoint for the xspecgen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
	}
	os.Exit(cli.ExitCode(err))
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL loader to pass to the app.
	loader := hcl.NewLoader()
	generator, err := app.NewApp(outW, logW, appConfig, loader, nil)
	if err != nil {
		return err
	}
	return generator.Run(ctx)
}

// describe formats an error for the terminal.
func describe(err error) string {
	var perr *modeldat.ParseError
	if errors.As(err, &perr) {
		return "error: invalid model description: " + perr.Error()
	}
	return "error: " + err.Error()
}
