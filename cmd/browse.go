package main

import (
	"context"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

func categoryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "category",
		Usage: "Browse Spotify categories",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List browse categories",
				Flags:   []cli.Flag{limitFlag("Number of categories to return (default 20, max 50)"), offsetFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit, offset := paging(cmd)
					return r.call(ctx, cmd, "category.list", map[string]any{"limit": limit, "offset": offset},
						func(ctx context.Context) *output.Response { return r.handler.CategoryList(ctx, limit, offset) })
				},
			},
			{
				Name:      "get",
				Usage:     "Get category details",
				Arguments: []cli.Argument{idArg("Category ID (e.g., \"pop\", \"focus\", \"dinner\")")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("id")
					return r.call(ctx, cmd, "category.get", map[string]any{"id": id},
						func(ctx context.Context) *output.Response { return r.handler.CategoryGet(ctx, id) })
				},
			},
			{
				Name:      "playlists",
				Usage:     "Get playlists for a category",
				Arguments: []cli.Argument{idArg("Category ID")},
				Flags:     []cli.Flag{limitFlag("Number of playlists to return (default 20, max 50)"), offsetFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("id")
					limit, offset := paging(cmd)
					return r.call(ctx, cmd, "category.playlists", map[string]any{"id": id, "limit": limit, "offset": offset},
						func(ctx context.Context) *output.Response { return r.handler.CategoryPlaylists(ctx, id, limit, offset) })
				},
			},
		},
	}
}

func followCommand(r *Runner) *cli.Command {
	followAction := func(method, followType string, unfollow bool) func(context.Context, *cli.Command) error {
		return func(ctx context.Context, cmd *cli.Command) error {
			ids := cmd.Args().Slice()
			return r.call(ctx, cmd, method, map[string]any{"ids": toAnySlice(ids)},
				func(ctx context.Context) *output.Response {
					if unfollow {
						return r.handler.Unfollow(ctx, followType, ids)
					}
					return r.handler.Follow(ctx, followType, ids)
				})
		}
	}
	checkAction := func(method, followType string) func(context.Context, *cli.Command) error {
		return func(ctx context.Context, cmd *cli.Command) error {
			ids := cmd.Args().Slice()
			return r.call(ctx, cmd, method, map[string]any{"ids": toAnySlice(ids)},
				func(ctx context.Context) *output.Response { return r.handler.FollowCheck(ctx, followType, ids) })
		}
	}

	return &cli.Command{
		Name:  "follow",
		Usage: "Follow/unfollow artists and users",
		Commands: []*cli.Command{
			{
				Name:   "artist",
				Usage:  "Follow artists",
				Action: followAction("follow.artist", "artist", false),
			},
			{
				Name:   "user",
				Usage:  "Follow users",
				Action: followAction("follow.user", "user", false),
			},
			{
				Name:   "unfollow-artist",
				Usage:  "Unfollow artists",
				Action: followAction("follow.unfollowArtist", "artist", true),
			},
			{
				Name:   "unfollow-user",
				Usage:  "Unfollow users",
				Action: followAction("follow.unfollowUser", "user", true),
			},
			{
				Name:  "list",
				Usage: "List followed artists",
				Flags: []cli.Flag{limitFlag("Number of artists to return (default 20, max 50)")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit := int(cmd.Int("limit"))
					return r.call(ctx, cmd, "follow.list", map[string]any{"limit": limit},
						func(ctx context.Context) *output.Response { return r.handler.FollowedArtists(ctx, limit) })
				},
			},
			{
				Name:   "check-artist",
				Usage:  "Check if following artists",
				Action: checkAction("follow.checkArtist", "artist"),
			},
			{
				Name:   "check-user",
				Usage:  "Check if following users",
				Action: checkAction("follow.checkUser", "user"),
			},
		},
	}
}

func marketsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "markets",
		Usage: "List available Spotify markets (countries)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.call(ctx, cmd, "markets.list", nil, r.handler.Markets)
		},
	}
}
