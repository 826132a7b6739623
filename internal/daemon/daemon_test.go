package daemon

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/shared"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	return &Manager{
		logger:     shared.NewLogger(io.Discard),
		pidPath:    filepath.Join(dir, "daemon.pid"),
		socketPath: filepath.Join(dir, "daemon.sock"),
	}
}

func stubLiveness(t *testing.T, alive bool) {
	t.Helper()
	orig := processRunning
	processRunning = func(int) bool { return alive }
	t.Cleanup(func() { processRunning = orig })
}

func TestReadPID(t *testing.T) {
	dir := t.TempDir()

	tc := []struct {
		name    string
		content string
		write   bool
		want    int
		ok      bool
	}{
		{name: "missing file", write: false},
		{name: "plain pid", content: "1234", write: true, want: 1234, ok: true},
		{name: "trailing newline", content: "5678\n", write: true, want: 5678, ok: true},
		{name: "garbage", content: "not-a-pid", write: true},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, c.name)
			if c.write {
				if err := os.WriteFile(path, []byte(c.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			pid, ok := readPID(path)
			if ok != c.ok || pid != c.want {
				t.Errorf("readPID() = (%d, %v), want (%d, %v)", pid, ok, c.want, c.ok)
			}
		})
	}
}

func TestStartConflictsWithRunningDaemon(t *testing.T) {
	m := testManager(t)
	if err := writePID(m.pidPath, 999); err != nil {
		t.Fatal(err)
	}
	stubLiveness(t, true)

	resp := m.Start()
	if resp.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", resp.Code)
	}
	if resp.Message != "Daemon already running (PID 999)" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Error.Kind != output.ErrKindValidation {
		t.Errorf("kind = %q", resp.Error.Kind)
	}
}

func TestStartReplacesStalePIDFile(t *testing.T) {
	m := testManager(t)
	if err := writePID(m.pidPath, 999); err != nil {
		t.Fatal(err)
	}
	stubLiveness(t, false)

	origSpawn := spawnDaemon
	spawnDaemon = func() (int, error) { return 4242, nil }
	t.Cleanup(func() { spawnDaemon = origSpawn })

	resp := m.Start()
	if resp.IsError() {
		t.Fatalf("Start() = %+v", resp)
	}
	payload := resp.Payload.(map[string]any)
	if payload["pid"] != 4242 {
		t.Errorf("pid = %v", payload["pid"])
	}
	if payload["socket"] != m.socketPath {
		t.Errorf("socket = %v", payload["socket"])
	}
	if pid, ok := readPID(m.pidPath); !ok || pid != 4242 {
		t.Errorf("PID file = (%d, %v), want child pid recorded", pid, ok)
	}
}

func TestStartSpawnFailure(t *testing.T) {
	m := testManager(t)
	origSpawn := spawnDaemon
	spawnDaemon = func() (int, error) { return 0, errors.New("exec format error") }
	t.Cleanup(func() { spawnDaemon = origSpawn })

	resp := m.Start()
	if resp.Code != http.StatusInternalServerError || resp.Message != "Failed to start daemon" {
		t.Errorf("Start() = %d %q", resp.Code, resp.Message)
	}
}

func TestStopWithoutPIDFile(t *testing.T) {
	m := testManager(t)

	resp := m.Stop()
	if resp.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", resp.Code)
	}
	if resp.Message != "Daemon not running (no PID file)" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestStopRemovesStalePIDFile(t *testing.T) {
	m := testManager(t)
	if err := writePID(m.pidPath, 999); err != nil {
		t.Fatal(err)
	}
	stubLiveness(t, false)

	resp := m.Stop()
	if resp.Message != "Daemon not running (stale PID file removed)" {
		t.Errorf("message = %q", resp.Message)
	}
	if _, err := os.Stat(m.pidPath); !os.IsNotExist(err) {
		t.Error("stale PID file should have been removed")
	}
}

func TestStopSignalsRunningDaemon(t *testing.T) {
	m := testManager(t)
	if err := writePID(m.pidPath, 999); err != nil {
		t.Fatal(err)
	}
	stubLiveness(t, true)

	var signalled int
	origStop := stopProcess
	stopProcess = func(pid int) { signalled = pid }
	t.Cleanup(func() { stopProcess = origStop })

	resp := m.Stop()
	if resp.IsError() || resp.Message != "Daemon stopped" {
		t.Fatalf("Stop() = %+v", resp)
	}
	if signalled != 999 {
		t.Errorf("signalled pid = %d", signalled)
	}
	if payload := resp.Payload.(map[string]any); payload["pid"] != 999 {
		t.Errorf("payload pid = %v", payload["pid"])
	}
	if _, err := os.Stat(m.pidPath); !os.IsNotExist(err) {
		t.Error("PID file should have been removed")
	}
}

func TestStatus(t *testing.T) {
	t.Run("not running", func(t *testing.T) {
		m := testManager(t)

		resp := m.Status()
		if resp.Message != "Daemon not running" {
			t.Errorf("message = %q", resp.Message)
		}
		payload := resp.Payload.(map[string]any)
		if payload["running"] != false || payload["pid"] != nil {
			t.Errorf("payload = %v", payload)
		}
		if payload["socket_exists"] != false {
			t.Errorf("socket_exists = %v", payload["socket_exists"])
		}
	})

	t.Run("running with socket", func(t *testing.T) {
		m := testManager(t)
		if err := writePID(m.pidPath, 999); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(m.socketPath, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		stubLiveness(t, true)

		resp := m.Status()
		if resp.Message != "Daemon running" {
			t.Errorf("message = %q", resp.Message)
		}
		payload := resp.Payload.(map[string]any)
		if payload["running"] != true || payload["pid"] != 999 {
			t.Errorf("payload = %v", payload)
		}
		if payload["socket_exists"] != true {
			t.Errorf("socket_exists = %v", payload["socket_exists"])
		}
	})
}
