package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/isolation-backend/internal"
	"github.com/rocketscienceinc/isolation-backend/internal/config"
)

// main - is the entry point of the application. It builds the CLI and runs the chosen command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "isolation",
		Short:        "Play Isolation matches between agents and render their transcripts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to config.yml")

	command := func(use, short string, run func(*app.App, context.Context) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf := initConfig(configPath)
				application := app.New(initLogger(conf), conf, cmd.OutOrStdout())

				ctx, cancel := application.WithSignals(cmd.Context())
				defer cancel()

				return run(application, ctx)
			},
		}
	}

	root.AddCommand(
		command("play", "Play one match and print its transcript", (*app.App).RunPlay),
		command("tournament", "Play every pairing of the configured agents", (*app.App).RunTournament),
		command("serve", "Serve stored matches and transcripts over HTTP", (*app.App).RunServer),
	)

	return root
}

func defaultConfigPath() string {
	baseDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	return filepath.Join(baseDir, "config.yml")
}

// initialize config. A missing file falls back to environment variables.
func initConfig(path string) *config.Config {
	if _, err := os.Stat(path); err != nil {
		path = ""
	}

	return config.MustLoad(path)
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
