package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

// libraryOps builds the list/save/remove/check subcommands every saved
// resource shares, routed to the matching RPC method prefix.
func libraryOps(r *Runner, prefix, resource, noun string) []*cli.Command {
	return []*cli.Command{
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   fmt.Sprintf("List saved %ss", noun),
			Flags:   []cli.Flag{limitFlag(fmt.Sprintf("Number of %ss to return (default 20, max 50)", noun)), offsetFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				limit, offset := paging(cmd)
				return r.call(ctx, cmd, prefix+".list", map[string]any{"limit": limit, "offset": offset},
					func(ctx context.Context) *output.Response { return r.handler.LibraryList(ctx, resource, limit, offset) })
			},
		},
		{
			Name:  "save",
			Usage: fmt.Sprintf("Save %ss to your library", noun),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				ids := cmd.Args().Slice()
				return r.call(ctx, cmd, prefix+".save", map[string]any{"ids": toAnySlice(ids)},
					func(ctx context.Context) *output.Response { return r.handler.LibrarySave(ctx, resource, ids) })
			},
		},
		{
			Name:  "remove",
			Usage: fmt.Sprintf("Remove %ss from your library", noun),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				ids := cmd.Args().Slice()
				return r.call(ctx, cmd, prefix+".remove", map[string]any{"ids": toAnySlice(ids)},
					func(ctx context.Context) *output.Response { return r.handler.LibraryRemove(ctx, resource, ids) })
			},
		},
		{
			Name:  "check",
			Usage: fmt.Sprintf("Check if %ss are in your library", noun),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				ids := cmd.Args().Slice()
				return r.call(ctx, cmd, prefix+".check", map[string]any{"ids": toAnySlice(ids)},
					func(ctx context.Context) *output.Response { return r.handler.LibraryCheck(ctx, resource, ids) })
			},
		},
	}
}

func idArg(usage string) cli.Argument {
	return &cli.StringArg{Name: "id", UsageText: usage}
}

func showCommand(r *Runner) *cli.Command {
	subs := []*cli.Command{
		{
			Name:      "get",
			Usage:     "Get show details",
			Arguments: []cli.Argument{idArg("Show ID or URL")},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id := cmd.StringArg("id")
				return r.call(ctx, cmd, "show.get", map[string]any{"id": id},
					func(ctx context.Context) *output.Response { return r.handler.ShowGet(ctx, id) })
			},
		},
		{
			Name:      "episodes",
			Usage:     "List episodes of a show",
			Arguments: []cli.Argument{idArg("Show ID or URL")},
			Flags:     []cli.Flag{limitFlag("Number of episodes to return (default 20, max 50)"), offsetFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id := cmd.StringArg("id")
				limit, offset := paging(cmd)
				return r.call(ctx, cmd, "show.episodes", map[string]any{"id": id, "limit": limit, "offset": offset},
					func(ctx context.Context) *output.Response { return r.handler.ShowEpisodes(ctx, id, limit, offset) })
			},
		},
	}
	return &cli.Command{
		Name:     "show",
		Usage:    "Manage podcasts (shows)",
		Commands: append(subs, libraryOps(r, "show", "shows", "show")...),
	}
}

func episodeCommand(r *Runner) *cli.Command {
	subs := []*cli.Command{
		{
			Name:      "get",
			Usage:     "Get episode details",
			Arguments: []cli.Argument{idArg("Episode ID or URL")},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id := cmd.StringArg("id")
				return r.call(ctx, cmd, "episode.get", map[string]any{"id": id},
					func(ctx context.Context) *output.Response { return r.handler.EpisodeGet(ctx, id) })
			},
		},
	}
	return &cli.Command{
		Name:     "episode",
		Usage:    "Manage podcast episodes",
		Commands: append(subs, libraryOps(r, "episode", "episodes", "episode")...),
	}
}

func audiobookCommand(r *Runner) *cli.Command {
	subs := []*cli.Command{
		{
			Name:      "get",
			Usage:     "Get audiobook details",
			Arguments: []cli.Argument{idArg("Audiobook ID or URL")},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id := cmd.StringArg("id")
				return r.call(ctx, cmd, "audiobook.get", map[string]any{"id": id},
					func(ctx context.Context) *output.Response { return r.handler.AudiobookGet(ctx, id) })
			},
		},
		{
			Name:      "chapters",
			Usage:     "List chapters of an audiobook",
			Arguments: []cli.Argument{idArg("Audiobook ID or URL")},
			Flags:     []cli.Flag{limitFlag("Number of chapters to return (default 20, max 50)"), offsetFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id := cmd.StringArg("id")
				limit, offset := paging(cmd)
				return r.call(ctx, cmd, "audiobook.chapters", map[string]any{"id": id, "limit": limit, "offset": offset},
					func(ctx context.Context) *output.Response { return r.handler.AudiobookChapters(ctx, id, limit, offset) })
			},
		},
	}
	return &cli.Command{
		Name:     "audiobook",
		Usage:    "Manage audiobooks",
		Commands: append(subs, libraryOps(r, "audiobook", "audiobooks", "audiobook")...),
	}
}

func albumCommand(r *Runner) *cli.Command {
	subs := []*cli.Command{
		{
			Name:      "tracks",
			Usage:     "List tracks on an album",
			Arguments: []cli.Argument{idArg("Album ID or URL")},
			Flags:     []cli.Flag{limitFlag("Number of tracks to return (default 20, max 50)"), offsetFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id := cmd.StringArg("id")
				limit, offset := paging(cmd)
				return r.call(ctx, cmd, "album.tracks", map[string]any{"id": id, "limit": limit, "offset": offset},
					func(ctx context.Context) *output.Response { return r.handler.AlbumTracks(ctx, id, limit, offset) })
			},
		},
		{
			Name:  "new-releases",
			Usage: "List new album releases",
			Flags: []cli.Flag{limitFlag("Number of albums to return (default 20, max 50)"), offsetFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				limit, offset := paging(cmd)
				return r.call(ctx, cmd, "album.newReleases", map[string]any{"limit": limit, "offset": offset},
					func(ctx context.Context) *output.Response { return r.handler.NewReleases(ctx, limit, offset) })
			},
		},
	}
	return &cli.Command{
		Name:     "album",
		Usage:    "Manage saved albums",
		Commands: append(subs, libraryOps(r, "album", "albums", "album")...),
	}
}

func chapterCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chapter",
		Usage: "Get audiobook chapter details",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get chapter details",
				Arguments: []cli.Argument{idArg("Chapter ID or URL")},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.StringArg("id")
					return r.call(ctx, cmd, "chapter.get", map[string]any{"id": id},
						func(ctx context.Context) *output.Response { return r.handler.ChapterGet(ctx, id) })
				},
			},
		},
	}
}
