package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/spotify-cli/internal/shared"
)

func startTestServer(t *testing.T) (string, *Broadcaster) {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "d.sock")
	events := NewBroadcaster()
	srv := NewServer(socket, testDispatcher(t), events, shared.NewLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		if err := srv.Run(ctx); err != nil {
			t.Errorf("server: %v", err)
		}
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if conn, err := net.Dial("unix", socket); err == nil {
			conn.Close()
			return socket, events
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not start")
	return "", nil
}

func callLine(t *testing.T, conn net.Conn, reader *bufio.Reader, line string) map[string]any {
	t.Helper()
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		t.Fatal(err)
	}
	raw, err := reader.ReadBytes('\n')
	if err != nil {
		t.Fatal(err)
	}
	var reply map[string]any
	if err := json.Unmarshal(raw, &reply); err != nil {
		t.Fatalf("malformed reply %q: %v", raw, err)
	}
	return reply
}

func TestServerPing(t *testing.T) {
	socket, _ := startTestServer(t)
	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	reply := callLine(t, conn, reader, `{"jsonrpc":"2.0","method":"ping","id":1}`)
	result := reply["result"].(map[string]any)
	if result["message"] != "pong" {
		t.Errorf("reply = %v", reply)
	}
	if reply["id"] != float64(1) {
		t.Errorf("id = %v", reply["id"])
	}
}

func TestServerParseError(t *testing.T) {
	socket, _ := startTestServer(t)
	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	reply := callLine(t, conn, reader, `this is not json`)
	rpcErr := reply["error"].(map[string]any)
	if rpcErr["code"] != float64(CodeParseError) {
		t.Errorf("code = %v", rpcErr["code"])
	}
	if reply["id"] != nil {
		t.Errorf("id = %v, want null", reply["id"])
	}
}

func TestServerNotificationGetsNoReply(t *testing.T) {
	socket, _ := startTestServer(t)
	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	// A notification produces no bytes; the following request must be
	// answered first.
	if _, err := conn.Write([]byte(`{"jsonrpc":"2.0","method":"ping"}` + "\n")); err != nil {
		t.Fatal(err)
	}
	reply := callLine(t, conn, reader, `{"jsonrpc":"2.0","method":"version","id":2}`)
	result := reply["result"].(map[string]any)
	if result["message"] != "Version info" {
		t.Errorf("reply = %v", reply)
	}
}

func TestServerEmptyLinesSkipped(t *testing.T) {
	socket, _ := startTestServer(t)
	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	if _, err := conn.Write([]byte("\n\n")); err != nil {
		t.Fatal(err)
	}
	reply := callLine(t, conn, reader, `{"jsonrpc":"2.0","method":"ping","id":3}`)
	if reply["result"] == nil {
		t.Errorf("reply = %v", reply)
	}
}

func TestServerBroadcastsEvents(t *testing.T) {
	socket, events := startTestServer(t)
	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	// Subscription is established on connect; confirm with a request
	// first so the client loop is known to be running.
	callLine(t, conn, reader, `{"jsonrpc":"2.0","method":"ping","id":1}`)

	events.Publish(NewNotification("event.trackChanged", map[string]any{"track_id": "t9"}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	raw, err := reader.ReadBytes('\n')
	if err != nil {
		t.Fatal(err)
	}
	var n Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		t.Fatal(err)
	}
	if n.Method != "event.trackChanged" {
		t.Errorf("method = %q", n.Method)
	}
	params := n.Params.(map[string]any)
	if params["track_id"] != "t9" {
		t.Errorf("params = %v", params)
	}
}

func TestClientCall(t *testing.T) {
	socket, _ := startTestServer(t)

	client, err := Dial(socket)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	resp, err := client.Call("ping", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("error = %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["message"] != "pong" {
		t.Errorf("result = %v", result)
	}
}

func TestBroadcasterDropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < broadcastBuffer+10; i++ {
		b.Publish(NewNotification("event.volumeChanged", map[string]any{"volume": i}))
	}
	if len(ch) != broadcastBuffer {
		t.Errorf("buffered = %d, want %d", len(ch), broadcastBuffer)
	}
}
