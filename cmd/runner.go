package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-cli/internal/commands"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/rpc"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// errCommandFailed signals a non-zero exit after the printer has already
// written the error envelope to stderr.
var errCommandFailed = errors.New("command failed")

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	handler *commands.Handler
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Handler *commands.Handler
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		handler: opts.Handler,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		authCommand, playerCommand, searchCommand, pinCommand, playlistCommand,
		libraryCommand, infoCommand, userCommand, showCommand, episodeCommand,
		audiobookCommand, albumCommand, chapterCommand, categoryCommand,
		followCommand, marketsCommand, daemonCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// respond renders an envelope and maps error envelopes to a non-zero exit.
func (r *Runner) respond(cmd *cli.Command, resp *output.Response) error {
	printer := output.NewPrinter(cmd.Bool("json"))
	if !printer.Print(resp) {
		return errCommandFailed
	}
	return nil
}

// call prefers a running daemon for the given RPC method, falling back
// to the in-process handler when no daemon is listening.
func (r *Runner) call(ctx context.Context, cmd *cli.Command, method string, params map[string]any, direct func(context.Context) *output.Response) error {
	if !cmd.Bool("no-daemon") {
		if resp, ok := r.viaDaemon(method, params); ok {
			return r.respond(cmd, resp)
		}
	}
	return r.respond(cmd, direct(ctx))
}

func (r *Runner) viaDaemon(method string, params map[string]any) (*output.Response, bool) {
	socket, err := shared.SocketPath()
	if err != nil {
		return nil, false
	}
	if _, err := os.Stat(socket); err != nil {
		return nil, false
	}
	client, err := rpc.Dial(socket)
	if err != nil {
		return nil, false
	}
	defer client.Close()

	reply, err := client.Call(method, params, nil)
	if err != nil {
		r.logger.Debug("daemon call failed, running in-process", "method", method, "err", err)
		return nil, false
	}
	return fromRPC(reply), true
}

// fromRPC rebuilds a response envelope from a daemon reply so both paths
// render identically. The payload kind is lost over the wire; the
// formatter registry's shape scan covers that.
func fromRPC(reply *rpc.Response) *output.Response {
	if reply.Error != nil {
		kind := output.ErrKindAPI
		details := ""
		if data, ok := reply.Error.Data.(map[string]any); ok {
			if k, ok := data["kind"].(string); ok && k != "" {
				kind = output.ErrorKind(k)
			}
			details, _ = data["details"].(string)
		}
		if details != "" {
			return output.ErrWithDetails(reply.Error.Code, reply.Error.Message, kind, details)
		}
		return output.Err(reply.Error.Code, reply.Error.Message, kind)
	}

	result, _ := reply.Result.(map[string]any)
	message, _ := result["message"].(string)
	return output.SuccessWithPayload(200, message, result["payload"])
}

func limitFlag(usage string) *cli.IntFlag {
	return &cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: usage, Value: 20}
}

func offsetFlag() *cli.IntFlag {
	return &cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Offset for pagination", Value: 0}
}

func paging(cmd *cli.Command) (int, int) {
	return int(cmd.Int("limit")), int(cmd.Int("offset"))
}
