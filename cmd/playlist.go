package main

import (
	"context"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

func playlistArg() cli.Argument {
	return &cli.StringArg{Name: "playlist", UsageText: "Playlist ID, URL, or pin alias"}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your playlists",
				Flags:   []cli.Flag{limitFlag("Number of playlists to return (default 20, max 50)"), offsetFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit, offset := paging(cmd)
					return r.call(ctx, cmd, "playlist.list", map[string]any{"limit": limit, "offset": offset},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistList(ctx, limit, offset) })
				},
			},
			{
				Name:      "get",
				Usage:     "Get playlist details",
				Arguments: []cli.Argument{playlistArg()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("playlist")
					return r.call(ctx, cmd, "playlist.get", map[string]any{"id": id},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistGet(ctx, id) })
				},
			},
			{
				Name:      "tracks",
				Usage:     "List tracks in a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Flags:     []cli.Flag{limitFlag("Number of tracks to return (default 20, max 50)"), offsetFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("playlist")
					limit, offset := paging(cmd)
					return r.call(ctx, cmd, "playlist.tracks", map[string]any{"id": id, "limit": limit, "offset": offset},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistTracks(ctx, id, limit, offset) })
				},
			},
			{
				Name:  "create",
				Usage: "Create a new playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name", UsageText: "Playlist name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Playlist description"},
					&cli.BoolFlag{Name: "public", Usage: "Make playlist public"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name, description, public := cmd.StringArg("name"), cmd.String("description"), cmd.Bool("public")
					params := map[string]any{"name": name, "description": description, "public": public}
					return r.call(ctx, cmd, "playlist.create", params, func(ctx context.Context) *output.Response {
						return r.handler.PlaylistCreate(ctx, name, description, public)
					})
				},
			},
			{
				Name:      "add",
				Usage:     "Add tracks to a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "now-playing", Aliases: []string{"n"}, Usage: "Add the currently playing track"},
					&cli.IntFlag{Name: "position", Aliases: []string{"p"}, Usage: "Position to insert tracks (default: end)", Value: -1},
					&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be done without making changes"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("playlist")
					uris := cmd.Args().Slice()
					nowPlaying := cmd.Bool("now-playing")
					position := int(cmd.Int("position"))
					dryRun := cmd.Bool("dry-run")
					params := map[string]any{
						"id": id, "uris": toAnySlice(uris), "now_playing": nowPlaying,
						"position": position, "dry_run": dryRun,
					}
					return r.call(ctx, cmd, "playlist.add", params, func(ctx context.Context) *output.Response {
						return r.handler.PlaylistAdd(ctx, id, uris, nowPlaying, position, dryRun)
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove tracks from a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be done without making changes"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("playlist")
					uris := cmd.Args().Slice()
					dryRun := cmd.Bool("dry-run")
					params := map[string]any{"id": id, "uris": toAnySlice(uris), "dry_run": dryRun}
					return r.call(ctx, cmd, "playlist.remove", params, func(ctx context.Context) *output.Response {
						return r.handler.PlaylistRemove(ctx, id, uris, dryRun)
					})
				},
			},
			{
				Name:      "edit",
				Usage:     "Edit playlist details",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New playlist name"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New playlist description"},
					&cli.BoolFlag{Name: "public", Usage: "Make playlist public"},
					&cli.BoolFlag{Name: "private", Usage: "Make playlist private"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("playlist")
					name, description := cmd.String("name"), cmd.String("description")

					var public *bool
					if cmd.Bool("public") {
						v := true
						public = &v
					} else if cmd.Bool("private") {
						v := false
						public = &v
					}

					params := map[string]any{"id": id, "name": name, "description": description}
					if public != nil {
						params["public"] = *public
					}
					return r.call(ctx, cmd, "playlist.edit", params, func(ctx context.Context) *output.Response {
						return r.handler.PlaylistEdit(ctx, id, name, description, public)
					})
				},
			},
			{
				Name:      "reorder",
				Usage:     "Reorder tracks in a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "from", Aliases: []string{"f"}, Usage: "Position of first track to move (0-indexed)"},
					&cli.IntFlag{Name: "to", Aliases: []string{"t"}, Usage: "Position to move tracks to (0-indexed)"},
					&cli.IntFlag{Name: "count", Aliases: []string{"c"}, Usage: "Number of tracks to move", Value: 1},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("playlist")
					from, to, count := int(cmd.Int("from")), int(cmd.Int("to")), int(cmd.Int("count"))
					params := map[string]any{"id": id, "from": from, "to": to, "count": count}
					return r.call(ctx, cmd, "playlist.reorder", params, func(ctx context.Context) *output.Response {
						return r.handler.PlaylistReorder(ctx, id, from, to, count)
					})
				},
			},
			{
				Name:      "follow",
				Usage:     "Follow a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "public", Usage: "Add to profile publicly", Value: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, public := cmd.StringArg("playlist"), cmd.Bool("public")
					return r.call(ctx, cmd, "playlist.follow", map[string]any{"id": id, "public": public},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistFollow(ctx, id, public) })
				},
			},
			{
				Name:      "unfollow",
				Usage:     "Unfollow a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("playlist")
					return r.call(ctx, cmd, "playlist.unfollow", map[string]any{"id": id},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistUnfollow(ctx, id) })
				},
			},
			{
				Name:      "duplicate",
				Usage:     "Duplicate a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Name for the new playlist"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, name := cmd.StringArg("playlist"), cmd.String("name")
					return r.call(ctx, cmd, "playlist.duplicate", map[string]any{"id": id, "name": name},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistDuplicate(ctx, id, name) })
				},
			},
			{
				Name:      "cover",
				Usage:     "Upload a playlist cover image",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Path to a JPEG image", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, file := cmd.StringArg("playlist"), cmd.String("file")
					return r.call(ctx, cmd, "playlist.cover", map[string]any{"id": id, "file": file},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistCover(ctx, id, file) })
				},
			},
			{
				Name:  "user",
				Usage: "Get another user's playlists",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "user_id", UsageText: "Spotify username"},
				},
				Flags: []cli.Flag{limitFlag("Number of playlists to return (default 20, max 50)"), offsetFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					userID := cmd.StringArg("user_id")
					limit, offset := paging(cmd)
					params := map[string]any{"user_id": userID, "limit": limit, "offset": offset}
					return r.call(ctx, cmd, "playlist.user", params, func(ctx context.Context) *output.Response {
						return r.handler.PlaylistUser(ctx, userID, limit, offset)
					})
				},
			},
			{
				Name:      "deduplicate",
				Aliases:   []string{"dedup"},
				Usage:     "Remove duplicate tracks from a playlist",
				Arguments: []cli.Argument{playlistArg()},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be done without making changes"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, dryRun := cmd.StringArg("playlist"), cmd.Bool("dry-run")
					return r.call(ctx, cmd, "playlist.dedup", map[string]any{"id": id, "dry_run": dryRun},
						func(ctx context.Context) *output.Response { return r.handler.PlaylistDedup(ctx, id, dryRun) })
				},
			},
		},
	}
}
