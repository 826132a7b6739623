package main

import (
	"context"

	"github.com/desertthunder/spotify-cli/internal/commands"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/urfave/cli/v3"
)

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search Spotify and pinned resources",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query", UsageText: "Search query (can be empty if using filters)"},
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "type", Aliases: []string{"T"}, Usage: "Filter by type(s): track, artist, album, playlist, show, episode, audiobook"},
			limitFlag("Results per type (default 20, max 50)"),
			&cli.BoolFlag{Name: "pins-only", Usage: "Only search pinned resources (skip the Spotify API)"},
			&cli.BoolFlag{Name: "exact", Aliases: []string{"e"}, Usage: "Only show results where name contains the query"},
			&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Filter by artist name"},
			&cli.StringFlag{Name: "album", Aliases: []string{"A"}, Usage: "Filter by album name"},
			&cli.StringFlag{Name: "track", Aliases: []string{"t"}, Usage: "Filter by track name"},
			&cli.StringFlag{Name: "year", Aliases: []string{"y"}, Usage: "Filter by year or range (e.g., 2020 or 1990-2000)"},
			&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Filter by genre"},
			&cli.StringFlag{Name: "isrc", Usage: "Filter by ISRC code (tracks only)"},
			&cli.StringFlag{Name: "upc", Usage: "Filter by UPC code (albums only)"},
			&cli.BoolFlag{Name: "new", Usage: "Only albums released in the past two weeks"},
			&cli.BoolFlag{Name: "hipster", Usage: "Only albums with lowest 10% popularity"},
			&cli.BoolFlag{Name: "play", Aliases: []string{"p"}, Usage: "Play the first result"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := commands.SearchOptions{
				Query:    cmd.StringArg("query"),
				Types:    cmd.StringSlice("type"),
				Limit:    int(cmd.Int("limit")),
				PinsOnly: cmd.Bool("pins-only"),
				Exact:    cmd.Bool("exact"),
				Play:     cmd.Bool("play"),
				Filters: commands.SearchFilters{
					Artist:     cmd.String("artist"),
					Album:      cmd.String("album"),
					Track:      cmd.String("track"),
					Year:       cmd.String("year"),
					Genre:      cmd.String("genre"),
					ISRC:       cmd.String("isrc"),
					UPC:        cmd.String("upc"),
					TagNew:     cmd.Bool("new"),
					TagHipster: cmd.Bool("hipster"),
				},
			}

			params := map[string]any{
				"query":     opts.Query,
				"types":     toAnySlice(opts.Types),
				"limit":     opts.Limit,
				"pins_only": opts.PinsOnly,
				"exact":     opts.Exact,
				"play":      opts.Play,
				"artist":    opts.Filters.Artist,
				"album":     opts.Filters.Album,
				"track":     opts.Filters.Track,
				"year":      opts.Filters.Year,
				"genre":     opts.Filters.Genre,
				"isrc":      opts.Filters.ISRC,
				"upc":       opts.Filters.UPC,
				"new":       opts.Filters.TagNew,
				"hipster":   opts.Filters.TagHipster,
			}
			return r.call(ctx, cmd, "search", params,
				func(ctx context.Context) *output.Response { return r.handler.Search(ctx, opts) })
		},
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
