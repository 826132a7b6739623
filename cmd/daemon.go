package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotify-cli/internal/daemon"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/rpc"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) daemonManager() (*daemon.Manager, *output.Response) {
	m, err := daemon.NewManager(r.handler, r.logger)
	if err != nil {
		return nil, output.ErrWithDetails(http.StatusInternalServerError, "Failed to resolve daemon paths", output.ErrKindStorage, err.Error())
	}
	return m, nil
}

func daemonCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "daemon",
		Usage: "Manage the background daemon",
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start the daemon in the background",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					m, errResp := r.daemonManager()
					if errResp != nil {
						return r.respond(cmd, errResp)
					}
					return r.respond(cmd, m.Start())
				},
			},
			{
				Name:  "stop",
				Usage: "Stop the running daemon",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					m, errResp := r.daemonManager()
					if errResp != nil {
						return r.respond(cmd, errResp)
					}
					return r.respond(cmd, m.Stop())
				},
			},
			{
				Name:  "status",
				Usage: "Check if the daemon is running",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					m, errResp := r.daemonManager()
					if errResp != nil {
						return r.respond(cmd, errResp)
					}
					return r.respond(cmd, m.Status())
				},
			},
			{
				Name:  "run",
				Usage: "Run the daemon in the foreground (for debugging/systemd)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					m, errResp := r.daemonManager()
					if errResp != nil {
						return r.respond(cmd, errResp)
					}
					return r.respond(cmd, m.Run(ctx))
				},
			},
			{
				Name:  "listen",
				Usage: "Stream playback event notifications from the daemon",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					socket, err := shared.SocketPath()
					if err != nil {
						return r.respond(cmd, output.ErrWithDetails(http.StatusInternalServerError, "Failed to resolve socket path", output.ErrKindStorage, err.Error()))
					}
					client, err := rpc.Dial(socket)
					if err != nil {
						return r.respond(cmd, output.ErrWithDetails(http.StatusServiceUnavailable, "Daemon not reachable", output.ErrKindNetwork, err.Error()))
					}
					defer client.Close()

					jsonMode := cmd.Bool("json")
					err = client.Listen(func(n rpc.Notification) {
						if jsonMode {
							if line, err := json.Marshal(n); err == nil {
								fmt.Println(string(line))
							}
							return
						}
						params, _ := json.Marshal(n.Params)
						fmt.Printf("%s %s\n", n.Method, params)
					})
					if err != nil {
						return r.respond(cmd, output.ErrWithDetails(http.StatusServiceUnavailable, "Daemon connection closed", output.ErrKindNetwork, err.Error()))
					}
					return nil
				},
			},
		},
	}
}
