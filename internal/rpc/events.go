package rpc

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/spotify-cli/internal/commands"
)

// DefaultPollInterval is how often the playback state is sampled.
const DefaultPollInterval = 2 * time.Second

// PlaybackSnapshot is the slice of player state whose changes produce
// event notifications.
type PlaybackSnapshot struct {
	TrackID   string
	IsPlaying bool
	Volume    int
	Shuffle   bool
	Repeat    string
	DeviceID  string
}

// SnapshotFromPayload extracts a snapshot from a playback-state payload.
// Missing fields take zero values; repeat defaults to "off".
func SnapshotFromPayload(state map[string]any) PlaybackSnapshot {
	snap := PlaybackSnapshot{Repeat: "off"}
	if item, ok := state["item"].(map[string]any); ok {
		snap.TrackID, _ = item["id"].(string)
	}
	snap.IsPlaying, _ = state["is_playing"].(bool)
	if device, ok := state["device"].(map[string]any); ok {
		if v, ok := device["volume_percent"].(float64); ok {
			snap.Volume = int(v)
		}
		snap.DeviceID, _ = device["id"].(string)
	}
	snap.Shuffle, _ = state["shuffle_state"].(bool)
	if r, ok := state["repeat_state"].(string); ok {
		snap.Repeat = r
	}
	return snap
}

// Diff returns one notification per field that changed between two
// snapshots, in a fixed order.
func Diff(prev, next PlaybackSnapshot) []Notification {
	var out []Notification
	if prev.TrackID != next.TrackID {
		out = append(out, NewNotification("event.trackChanged", map[string]any{"track_id": next.TrackID}))
	}
	if prev.IsPlaying != next.IsPlaying {
		out = append(out, NewNotification("event.playbackStateChanged", map[string]any{"is_playing": next.IsPlaying}))
	}
	if prev.Volume != next.Volume {
		out = append(out, NewNotification("event.volumeChanged", map[string]any{"volume": next.Volume}))
	}
	if prev.Shuffle != next.Shuffle {
		out = append(out, NewNotification("event.shuffleChanged", map[string]any{"shuffle": next.Shuffle}))
	}
	if prev.Repeat != next.Repeat {
		out = append(out, NewNotification("event.repeatChanged", map[string]any{"repeat": next.Repeat}))
	}
	if prev.DeviceID != next.DeviceID {
		out = append(out, NewNotification("event.deviceChanged", map[string]any{"device_id": next.DeviceID}))
	}
	return out
}

// Poller samples the playback state on a ticker and broadcasts a
// notification for every observed change.
type Poller struct {
	events   *Broadcaster
	interval time.Duration
	logger   *log.Logger

	// poll returns the current state, or false when no state is
	// available (not authenticated, nothing playing, request failed).
	poll func(ctx context.Context) (map[string]any, bool)
}

// NewPoller builds a poller over the shared command handler. The token
// is loaded anew on every tick, so logging out stops emission without
// restarting the daemon.
func NewPoller(handler *commands.Handler, events *Broadcaster, logger *log.Logger) *Poller {
	return &Poller{
		events:   events,
		interval: DefaultPollInterval,
		logger:   logger,
		poll: func(ctx context.Context) (map[string]any, bool) {
			resp := handler.PlayerStatus(ctx)
			if resp.IsError() {
				return nil, false
			}
			state, ok := resp.Payload.(map[string]any)
			return state, ok
		},
	}
}

// WithInterval overrides the polling cadence.
func (p *Poller) WithInterval(d time.Duration) *Poller {
	p.interval = d
	return p
}

// Run polls until ctx is cancelled. Ticks with no available state leave
// the previous snapshot untouched, so the next live tick fires every
// applicable notification at once.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last PlaybackSnapshot
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state, ok := p.poll(ctx)
			if !ok {
				continue
			}
			current := SnapshotFromPayload(state)
			for _, n := range Diff(last, current) {
				p.logger.Debug("playback change", "event", n.Method)
				p.events.Publish(n)
			}
			last = current
		}
	}
}
