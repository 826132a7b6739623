package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-cli/internal/commands"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"github.com/desertthunder/spotify-cli/internal/storage"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	shared.SetLogLevel(logger, log.WarnLevel)

	config := shared.DefaultConfig()
	if path, err := shared.ConfigPath(); err == nil {
		if loaded, err := shared.LoadConfig(path); err == nil {
			config = loaded
		} else {
			logger.Warn("ignoring unreadable config", "err", err)
		}
	}

	tokenPath, err := shared.TokenPath()
	if err != nil {
		logger.Fatalf("failed to resolve token path: %v", err)
	}
	pinsPath, err := shared.PinsPath()
	if err != nil {
		logger.Fatalf("failed to resolve pins path: %v", err)
	}

	tokens := storage.NewUnifiedTokenStore(config.App.TokenStorage, tokenPath, logger)
	handler := commands.NewHandler(config, logger, tokens, pinsPath)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Logger:  logger,
		Handler: handler,
	})

	app := &cli.Command{
		Name:    "spotify-cli",
		Usage:   "Command line interface for Spotify",
		Version: shared.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output the JSON response envelope",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose logging",
			},
			&cli.BoolFlag{
				Name:  "no-daemon",
				Usage: "Run in-process even when a daemon is listening",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errCommandFailed) {
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
