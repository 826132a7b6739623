package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Auth commands always run in-process: login opens a browser and the
// token stores live in this user's keychain, not the daemon's.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication commands",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Login to Spotify (opens browser for OAuth)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Force re-authentication (new browser flow)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.respond(cmd, r.handler.AuthLogin(ctx, cmd.Bool("force")))
				},
			},
			{
				Name:  "logout",
				Usage: "Logout and clear stored tokens",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.respond(cmd, r.handler.AuthLogout(ctx))
				},
			},
			{
				Name:  "refresh",
				Usage: "Refresh the access token",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.respond(cmd, r.handler.AuthRefresh(ctx))
				},
			},
			{
				Name:  "status",
				Usage: "Check authentication status",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.respond(cmd, r.handler.AuthStatus(ctx))
				},
			},
		},
	}
}
