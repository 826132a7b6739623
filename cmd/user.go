package main

import (
	"context"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

func infoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "info",
		Aliases: []string{"i"},
		Usage:   "Get info about a track, album, or artist",
		Commands: []*cli.Command{
			{
				Name:      "track",
				Usage:     "Get track details",
				Arguments: []cli.Argument{idArg("Track ID or URL")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("id")
					return r.call(ctx, cmd, "info.track", map[string]any{"id": id},
						func(ctx context.Context) *output.Response { return r.handler.InfoTrack(ctx, id) })
				},
			},
			{
				Name:      "album",
				Usage:     "Get album details",
				Arguments: []cli.Argument{idArg("Album ID or URL")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("id")
					return r.call(ctx, cmd, "info.album", map[string]any{"id": id},
						func(ctx context.Context) *output.Response { return r.handler.InfoAlbum(ctx, id) })
				},
			},
			{
				Name:      "artist",
				Usage:     "Get artist details",
				Arguments: []cli.Argument{idArg("Artist ID or URL")},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "top-tracks", Aliases: []string{"t"}, Usage: "Get the artist's top tracks instead of details"},
					&cli.BoolFlag{Name: "albums", Aliases: []string{"a"}, Usage: "Get the artist's albums instead of details"},
					&cli.BoolFlag{Name: "related", Aliases: []string{"r"}, Usage: "Get related artists instead of details"},
					&cli.StringFlag{Name: "market", Aliases: []string{"m"}, Usage: "Market for top tracks (ISO 3166-1 alpha-2)", Value: "US"},
					limitFlag("Number of albums to return (default 20, max 50)"),
					offsetFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("id")
					market := cmd.String("market")
					limit, offset := paging(cmd)

					view := "details"
					switch {
					case cmd.Bool("top-tracks"):
						view = "top_tracks"
					case cmd.Bool("albums"):
						view = "albums"
					case cmd.Bool("related"):
						view = "related"
					}

					params := map[string]any{"id": id, "view": view, "market": market, "limit": limit, "offset": offset}
					return r.call(ctx, cmd, "info.artist", params, func(ctx context.Context) *output.Response {
						switch view {
						case "top_tracks":
							return r.handler.ArtistTopTracks(ctx, id, market)
						case "albums":
							return r.handler.ArtistAlbums(ctx, id, limit, offset)
						case "related":
							return r.handler.RelatedArtists(ctx, id)
						default:
							return r.handler.InfoArtist(ctx, id)
						}
					})
				},
			},
		},
	}
}

func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "User profile and stats",
		Commands: []*cli.Command{
			{
				Name:  "profile",
				Usage: "Get your profile information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.call(ctx, cmd, "user.profile", nil, r.handler.UserProfile)
				},
			},
			{
				Name:  "top",
				Usage: "Get your top tracks or artists",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "type", UsageText: "What to get: tracks or artists"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Usage: "Time range: short (4 weeks), medium (6 months), long (years)", Value: "medium"},
					limitFlag("Number of results (default 20, max 50)"),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					itemType := cmd.StringArg("type")
					timeRange := expandTimeRange(cmd.String("range"))
					limit := int(cmd.Int("limit"))
					params := map[string]any{"type": itemType, "range": cmd.String("range"), "limit": limit}
					return r.call(ctx, cmd, "user.top", params, func(ctx context.Context) *output.Response {
						return r.handler.UserTop(ctx, itemType, timeRange, limit, 0)
					})
				},
			},
			{
				Name:  "get",
				Usage: "Get another user's profile",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "user_id", UsageText: "Spotify username"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("user_id")
					return r.call(ctx, cmd, "user.get", map[string]any{"id": id},
						func(ctx context.Context) *output.Response { return r.handler.UserGet(ctx, id) })
				},
			},
		},
	}
}

func expandTimeRange(shorthand string) string {
	switch shorthand {
	case "short":
		return "short_term"
	case "medium":
		return "medium_term"
	case "long":
		return "long_term"
	default:
		return shorthand
	}
}
