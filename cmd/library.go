package main

import (
	"context"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage your library (liked songs)",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List saved tracks (liked songs)",
				Flags:   []cli.Flag{limitFlag("Number of tracks to return (default 20, max 50)"), offsetFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit, offset := paging(cmd)
					return r.call(ctx, cmd, "library.list", map[string]any{"limit": limit, "offset": offset},
						func(ctx context.Context) *output.Response { return r.handler.LibraryList(ctx, "tracks", limit, offset) })
				},
			},
			{
				Name:  "save",
				Usage: "Save tracks to library (like songs)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ids := cmd.Args().Slice()
					return r.call(ctx, cmd, "library.save", map[string]any{"ids": toAnySlice(ids)},
						func(ctx context.Context) *output.Response { return r.handler.LibrarySave(ctx, "tracks", ids) })
				},
			},
			{
				Name:  "remove",
				Usage: "Remove tracks from library (unlike songs)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ids := cmd.Args().Slice()
					return r.call(ctx, cmd, "library.remove", map[string]any{"ids": toAnySlice(ids)},
						func(ctx context.Context) *output.Response { return r.handler.LibraryRemove(ctx, "tracks", ids) })
				},
			},
			{
				Name:  "check",
				Usage: "Check if tracks are in library",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ids := cmd.Args().Slice()
					return r.call(ctx, cmd, "library.check", map[string]any{"ids": toAnySlice(ids)},
						func(ctx context.Context) *output.Response { return r.handler.LibraryCheck(ctx, "tracks", ids) })
				},
			},
		},
	}
}
