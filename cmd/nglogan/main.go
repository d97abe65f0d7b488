package main

import (
	"log/slog"
	"os"

	"github.com/nglogan/nglogan/internal/cli"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := cli.Execute(); err != nil {
		slog.Error("fatal_error", "error", err.Error())
		os.Exit(1)
	}
}
