package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// broadcastBuffer bounds each subscriber's pending notifications. A
// subscriber that falls further behind silently loses the overflow.
const broadcastBuffer = 100

// Broadcaster fans notifications out to every connected client.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Notification]struct{}
}

// NewBroadcaster creates an empty fan-out hub.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: map[chan Notification]struct{}{}}
}

// Subscribe registers a listener. The returned cancel func must be
// called when the listener goes away.
func (b *Broadcaster) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, broadcastBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a notification to every subscriber without blocking;
// full buffers drop the message for that subscriber only.
func (b *Broadcaster) Publish(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Server accepts Unix-socket connections and speaks line-delimited
// JSON-RPC with each client.
type Server struct {
	socketPath string
	dispatcher *Dispatcher
	events     *Broadcaster
	logger     *log.Logger
}

// NewServer wires a server for the given socket path.
func NewServer(socketPath string, dispatcher *Dispatcher, events *Broadcaster, logger *log.Logger) *Server {
	return &Server{socketPath: socketPath, dispatcher: dispatcher, events: events, logger: logger}
}

// Run binds the socket and serves until ctx is cancelled. A leftover
// socket file is unlinked before binding and again on shutdown.
func (s *Server) Run(ctx context.Context) error {
	_ = os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return err
	}
	s.logger.Info("rpc server listening", "socket", s.socketPath)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	defer os.Remove(s.socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept failed", "err", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

// handleConn runs one client: a select loop racing the next request
// line against the next event notification.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	s.logger.Debug("client connected")

	events, cancel := s.events.Subscribe()
	defer cancel()

	lines := make(chan string)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		scanner := bufio.NewScanner(conn)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	writer := bufio.NewWriter(conn)
	for {
		select {
		case <-ctx.Done():
			return
		case <-readDone:
			s.logger.Debug("client disconnected")
			return
		case line := <-lines:
			resp := s.processLine(ctx, line)
			if resp == nil {
				continue
			}
			if err := writeJSON(writer, resp); err != nil {
				return
			}
		case notification := <-events:
			if err := writeJSON(writer, notification); err != nil {
				return
			}
		}
	}
}

// processLine parses and dispatches one request line. Empty lines and
// notifications yield no reply.
func (s *Server) processLine(ctx context.Context, line string) *Response {
	if line == "" {
		return nil
	}
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return NewError(nil, CodeParseError, "Parse error: "+err.Error(), nil)
	}
	if req.IsNotification() {
		_ = s.dispatcher.Dispatch(ctx, &req)
		return nil
	}
	return FromResponse(req.ID, s.dispatcher.Dispatch(ctx, &req))
}

func writeJSON(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
