package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gookit/color"
	"github.com/specialistvlad/relionviz/internal/app"
	"github.com/specialistvlad/relionviz/internal/cli"
)

// main is the entrypoint for the relionviz application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, color.Red.Sprint(exitErr.Message))
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	relionvizApp := app.NewApp(outW, errW, appConfig)
	return relionvizApp.Run(context.Background())
}
