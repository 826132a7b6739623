package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

// parsePosition converts a seek position into milliseconds. Accepted
// forms: 90 (seconds), 1:30, 1:02:30, 90s, 5000ms.
func parsePosition(position string) (int, error) {
	position = strings.TrimSpace(position)

	if strings.Contains(position, ":") {
		parts := strings.Split(position, ":")
		nums := make([]int, len(parts))
		for i, part := range parts {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid time format. Use mm:ss or hh:mm:ss")
			}
			nums[i] = n
		}
		switch len(nums) {
		case 2:
			return (nums[0]*60 + nums[1]) * 1000, nil
		case 3:
			return (nums[0]*3600 + nums[1]*60 + nums[2]) * 1000, nil
		default:
			return 0, fmt.Errorf("invalid time format. Use mm:ss or hh:mm:ss")
		}
	}

	if rest, ok := strings.CutSuffix(position, "ms"); ok {
		ms, err := strconv.Atoi(rest)
		if err != nil || ms < 0 {
			return 0, fmt.Errorf("invalid milliseconds")
		}
		return ms, nil
	}
	secs, err := strconv.Atoi(strings.TrimSuffix(position, "s"))
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid position. Use: 90, 1:30, 90s, or 5000ms")
	}
	return secs * 1000, nil
}

func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "player",
		Aliases: []string{"p"},
		Usage:   "Player controls",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "Start or resume playback",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "uri", Aliases: []string{"u"}, Usage: "Play a specific Spotify URI"},
					&cli.StringFlag{Name: "pin", Aliases: []string{"p"}, Usage: "Play a pinned resource by alias"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					uri, pin := cmd.String("uri"), cmd.String("pin")
					return r.call(ctx, cmd, "player.play", map[string]any{"uri": uri, "pin": pin},
						func(ctx context.Context) *output.Response { return r.handler.PlayerPlay(ctx, uri, pin) })
				},
			},
			{
				Name:  "pause",
				Usage: "Pause playback",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "player.pause", nil, r.handler.PlayerPause)
				},
			},
			{
				Name:    "toggle",
				Aliases: []string{"t"},
				Usage:   "Toggle playback (play/pause)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "player.toggle", nil, r.handler.PlayerToggle)
				},
			},
			{
				Name:    "next",
				Aliases: []string{"n"},
				Usage:   "Skip to next track",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "player.next", nil, r.handler.PlayerNext)
				},
			},
			{
				Name:    "previous",
				Aliases: []string{"prev"},
				Usage:   "Skip to previous track",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "player.previous", nil, r.handler.PlayerPrevious)
				},
			},
			{
				Name:    "status",
				Aliases: []string{"st"},
				Usage:   "Get current playback status",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "player.status", nil, r.handler.PlayerStatus)
				},
			},
			{
				Name:  "now-playing",
				Usage: "Get the currently playing item",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "player.current", nil, r.handler.PlayerCurrentlyPlaying)
				},
			},
			{
				Name:  "seek",
				Usage: "Seek to position in current track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "position", UsageText: "seconds (90), time (1:30), or explicit (90s, 5000ms)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms, err := parsePosition(cmd.StringArg("position"))
					if err != nil {
						return r.respond(cmd, output.Err(http.StatusBadRequest, "Invalid position: "+err.Error(), output.ErrKindValidation))
					}
					return r.call(ctx, cmd, "player.seek", map[string]any{"position": ms},
						func(ctx context.Context) *output.Response { return r.handler.PlayerSeek(ctx, ms) })
				},
			},
			{
				Name:    "volume",
				Aliases: []string{"vol"},
				Usage:   "Set playback volume",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "percent", UsageText: "Volume percentage (0-100)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					percent, err := strconv.Atoi(cmd.StringArg("percent"))
					if err != nil {
						return r.respond(cmd, output.Err(http.StatusBadRequest, "Volume must be between 0 and 100", output.ErrKindValidation))
					}
					return r.call(ctx, cmd, "player.volume", map[string]any{"percent": percent},
						func(ctx context.Context) *output.Response { return r.handler.PlayerVolume(ctx, percent) })
				},
			},
			{
				Name:    "shuffle",
				Aliases: []string{"sh"},
				Usage:   "Toggle shuffle mode",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "state", UsageText: "on or off"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					state := cmd.StringArg("state")
					return r.call(ctx, cmd, "player.shuffle", map[string]any{"state": state},
						func(ctx context.Context) *output.Response { return r.handler.PlayerShuffle(ctx, state) })
				},
			},
			{
				Name:    "repeat",
				Aliases: []string{"rep"},
				Usage:   "Set repeat mode",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mode", UsageText: "off, track, or context"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					mode := cmd.StringArg("mode")
					return r.call(ctx, cmd, "player.repeat", map[string]any{"mode": mode},
						func(ctx context.Context) *output.Response { return r.handler.PlayerRepeat(ctx, mode) })
				},
			},
			{
				Name:    "recent",
				Aliases: []string{"rec"},
				Usage:   "Get recently played tracks",
				Flags:   []cli.Flag{limitFlag("Number of tracks to return (default 20, max 50)")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit := int(cmd.Int("limit"))
					return r.call(ctx, cmd, "player.recent", map[string]any{"limit": limit},
						func(ctx context.Context) *output.Response { return r.handler.PlayerRecentlyPlayed(ctx, limit) })
				},
			},
			devicesCommand(r),
			queueCommand(r),
		},
	}
}

func devicesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "devices",
		Aliases: []string{"dev"},
		Usage:   "Manage playback devices",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List available devices",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "player.devices", nil, r.handler.PlayerDevices)
				},
			},
			{
				Name:  "transfer",
				Usage: "Transfer playback to a device",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "device", UsageText: "Device ID"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "play", Usage: "Start playback on the new device"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					device, play := cmd.StringArg("device"), cmd.Bool("play")
					return r.call(ctx, cmd, "player.transfer", map[string]any{"device": device, "play": play},
						func(ctx context.Context) *output.Response { return r.handler.PlayerTransfer(ctx, device, play) })
				},
			},
		},
	}
}

func queueCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "queue",
		Aliases: []string{"q"},
		Usage:   "Manage playback queue",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List current queue",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "queue.list", nil, r.handler.QueueList)
				},
			},
			{
				Name:  "add",
				Usage: "Add item to queue",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uri", UsageText: "Spotify URI (e.g., spotify:track:xxx)"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pin", Aliases: []string{"p"}, Usage: "Queue a pinned resource by alias"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					uri, pin := cmd.StringArg("uri"), cmd.String("pin")
					return r.call(ctx, cmd, "queue.add", map[string]any{"uri": uri, "pin": pin},
						func(ctx context.Context) *output.Response { return r.handler.QueueAdd(ctx, uri, pin) })
				},
			},
		},
	}
}
