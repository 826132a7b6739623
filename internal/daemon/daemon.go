// Package daemon manages the background process that serves the RPC
// socket: spawning it, signalling it, and running its event loop.
package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/spotify-cli/internal/commands"
	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/rpc"
	"github.com/desertthunder/spotify-cli/internal/shared"
)

// Seams for tests.
var (
	processRunning = isProcessRunning
	currentPID     = os.Getpid
	spawnDaemon    = spawnDetached
	stopProcess    = terminateProcess
)

// Manager drives the daemon lifecycle around a PID file and the RPC
// socket path.
type Manager struct {
	handler    *commands.Handler
	logger     *log.Logger
	pidPath    string
	socketPath string
}

// NewManager resolves the PID and socket paths under the app config
// directory.
func NewManager(handler *commands.Handler, logger *log.Logger) (*Manager, error) {
	if _, err := shared.EnsureConfigDir(); err != nil {
		return nil, err
	}
	pidPath, err := shared.PIDPath()
	if err != nil {
		return nil, err
	}
	socketPath, err := shared.SocketPath()
	if err != nil {
		return nil, err
	}
	return &Manager{handler: handler, logger: logger, pidPath: pidPath, socketPath: socketPath}, nil
}

// Start launches the daemon in the background by re-invoking the
// current executable with "daemon run".
func (m *Manager) Start() *output.Response {
	if pid, ok := readPID(m.pidPath); ok {
		if processRunning(pid) {
			return output.Err(http.StatusConflict, fmt.Sprintf("Daemon already running (PID %d)", pid), output.ErrKindValidation)
		}
		_ = os.Remove(m.pidPath)
	}

	pid, err := spawnDaemon()
	if err != nil {
		return output.ErrWithDetails(http.StatusInternalServerError, "Failed to start daemon", output.ErrKindStorage, err.Error())
	}
	if err := writePID(m.pidPath, pid); err != nil {
		return output.ErrWithDetails(http.StatusInternalServerError, "Failed to write PID file", output.ErrKindStorage, err.Error())
	}

	return output.SuccessWithPayload(http.StatusOK, "Daemon started", map[string]any{
		"pid":    pid,
		"socket": m.socketPath,
	})
}

// Stop signals the running daemon to shut down and removes its PID file.
func (m *Manager) Stop() *output.Response {
	pid, ok := readPID(m.pidPath)
	if !ok {
		return output.Err(http.StatusNotFound, "Daemon not running (no PID file)", output.ErrKindNotFound)
	}
	if !processRunning(pid) {
		_ = os.Remove(m.pidPath)
		return output.Err(http.StatusNotFound, "Daemon not running (stale PID file removed)", output.ErrKindNotFound)
	}

	stopProcess(pid)
	_ = os.Remove(m.pidPath)

	return output.SuccessWithPayload(http.StatusOK, "Daemon stopped", map[string]any{"pid": pid})
}

// Status reports whether the daemon is alive and where its socket lives.
func (m *Manager) Status() *output.Response {
	var pidValue any
	running := false
	if pid, ok := readPID(m.pidPath); ok {
		pidValue = pid
		running = processRunning(pid)
	}
	_, statErr := os.Stat(m.socketPath)

	message := "Daemon not running"
	if running {
		message = "Daemon running"
	}
	return output.SuccessWithPayload(http.StatusOK, message, map[string]any{
		"running":       running,
		"pid":           pidValue,
		"socket":        m.socketPath,
		"socket_exists": statErr == nil,
	})
}

// Run serves the RPC socket in the foreground until interrupted. The
// spawned child from Start lands here.
func (m *Manager) Run(ctx context.Context) *output.Response {
	pid := currentPID()
	if err := writePID(m.pidPath, pid); err != nil {
		return output.ErrWithDetails(http.StatusInternalServerError, "Failed to write PID file", output.ErrKindStorage, err.Error())
	}
	defer os.Remove(m.pidPath)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := rpc.NewBroadcaster()
	dispatcher := rpc.NewDispatcher(m.handler, shared.Version)
	server := rpc.NewServer(m.socketPath, dispatcher, events, shared.WithLogger(m.logger, "component", "rpc"))
	poller := rpc.NewPoller(m.handler, events, shared.WithLogger(m.logger, "component", "poller"))

	m.logger.Info("starting daemon", "pid", pid, "socket", m.socketPath)
	go poller.Run(ctx)

	if err := server.Run(ctx); err != nil {
		return output.ErrWithDetails(http.StatusInternalServerError, "Server error", output.ErrKindStorage, err.Error())
	}

	m.logger.Info("received shutdown signal")
	return output.Success(http.StatusOK, "Daemon stopped")
}

func readPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644)
}

func spawnDetached() (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to get executable path: %w", err)
	}
	cmd := exec.Command(exe, "daemon", "run")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Reap the child when it exits so it never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}
