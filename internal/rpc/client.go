package rpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/desertthunder/spotify-cli/internal/shared"
)

// Client talks to a running daemon over its Unix socket.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// Dial connects to the daemon socket.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("daemon not reachable at %s: %w", socketPath, err)
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Close releases the connection.
func (c *Client) Close() error { return c.conn.Close() }

// Call sends one request and waits for its reply. Event notifications
// arriving in between are handed to onEvent when set, otherwise dropped.
func (c *Client) Call(method string, params map[string]any, onEvent func(Notification)) (*Response, error) {
	id, err := json.Marshal(shared.GenerateID())
	if err != nil {
		return nil, err
	}
	req := Request{JSONRPC: "2.0", Method: method, Params: params, ID: id}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		return nil, err
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, err
		}

		var probe struct {
			Method string          `json:"method"`
			ID     json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			return nil, fmt.Errorf("malformed reply: %w", err)
		}
		if probe.Method != "" && len(probe.ID) == 0 {
			if onEvent != nil {
				var n Notification
				if err := json.Unmarshal(line, &n); err == nil {
					onEvent(n)
				}
			}
			continue
		}

		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, fmt.Errorf("malformed reply: %w", err)
		}
		return &resp, nil
	}
}

// Listen blocks, delivering every event notification to onEvent until
// the connection drops.
func (c *Client) Listen(onEvent func(Notification)) error {
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return err
		}
		var n Notification
		if err := json.Unmarshal(line, &n); err != nil {
			continue
		}
		if n.Method != "" {
			onEvent(n)
		}
	}
}
