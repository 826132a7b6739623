package main

import (
	"context"
	"strings"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

func pinCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pin",
		Usage: "Manage pinned resources",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a pinned resource",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "type", UsageText: "Resource type: playlist, track, album, artist, show, episode, audiobook"},
					&cli.StringArg{Name: "id", UsageText: "Spotify URL or ID"},
					&cli.StringArg{Name: "alias", UsageText: "Human-friendly alias for searching"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "Optional comma-separated tags"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					kind := cmd.StringArg("type")
					id := cmd.StringArg("id")
					alias := cmd.StringArg("alias")
					rawTags := cmd.String("tags")

					var tags []string
					for _, tag := range strings.Split(rawTags, ",") {
						if tag = strings.TrimSpace(tag); tag != "" {
							tags = append(tags, tag)
						}
					}

					params := map[string]any{"type": kind, "id": id, "alias": alias, "tags": rawTags}
					return r.call(ctx, cmd, "pin.add", params, func(ctx context.Context) *output.Response {
						return r.handler.PinAdd(ctx, alias, id, kind, tags)
					})
				},
			},
			{
				Name:  "remove",
				Usage: "Remove a pinned resource",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "alias", UsageText: "Alias or ID of the pin to remove"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					alias := cmd.StringArg("alias")
					return r.call(ctx, cmd, "pin.remove", map[string]any{"id": alias},
						func(ctx context.Context) *output.Response { return r.handler.PinRemove(ctx, alias) })
				},
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List pinned resources",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Aliases: []string{"T"}, Usage: "Filter by resource type"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					kind := cmd.String("type")
					return r.call(ctx, cmd, "pin.list", map[string]any{"type": kind},
						func(ctx context.Context) *output.Response { return r.handler.PinList(ctx, kind) })
				},
			},
			{
				Name:  "show",
				Usage: "Show a pinned resource",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "alias", UsageText: "Alias of the pin to show"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					alias := cmd.StringArg("alias")
					return r.call(ctx, cmd, "pin.show", map[string]any{"alias": alias},
						func(ctx context.Context) *output.Response { return r.handler.PinShow(ctx, alias) })
				},
			},
			{
				Name:  "search",
				Usage: "Fuzzy search pinned resources",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query", UsageText: "Search query"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					query := cmd.StringArg("query")
					return r.call(ctx, cmd, "pin.search", map[string]any{"query": query},
						func(ctx context.Context) *output.Response { return r.handler.PinSearch(ctx, query) })
				},
			},
		},
	}
}
