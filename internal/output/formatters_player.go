package output

import "io"

// playerStatusFormatter renders the current playback state.
type playerStatusFormatter struct{}

func (f *playerStatusFormatter) Name() string { return "player-status" }
func (f *playerStatusFormatter) Kinds() []PayloadKind { return []PayloadKind{KindPlayerStatus} }

func (f *playerStatusFormatter) Matches(payload map[string]any) bool {
	return has(payload, "item")
}

func (f *playerStatusFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}

	state := "Paused"
	if boolean(obj, "is_playing") {
		state = "Playing"
	}
	heading(w, state)

	if item := object(obj, "item"); item != nil {
		line(w, "  %s - %s", str(item, "name"), artistNames(array(item, "artists")))
		if album := object(item, "album"); album != nil {
			line(w, "  %s", dimStyle.Render(str(album, "name")))
		}
		if has(item, "duration_ms") {
			line(w, "  %s / %s", formatMS(num(obj, "progress_ms")), formatMS(num(item, "duration_ms")))
		}
	}

	if device := object(obj, "device"); device != nil {
		line(w, "  Device: %s (volume %d%%)", str(device, "name"), int(num(device, "volume_percent")))
	}
	line(w, "  Shuffle: %v | Repeat: %s", boolean(obj, "shuffle_state"), str(obj, "repeat_state"))
}

// queueFormatter renders the play queue.
type queueFormatter struct{}

func (f *queueFormatter) Name() string { return "queue" }
func (f *queueFormatter) Kinds() []PayloadKind { return []PayloadKind{KindQueue} }

func (f *queueFormatter) Matches(payload map[string]any) bool {
	return has(payload, "currently_playing") && has(payload, "queue")
}

func (f *queueFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}

	if current := object(obj, "currently_playing"); current != nil {
		heading(w, "Now playing")
		line(w, "  %s - %s", str(current, "name"), artistNames(array(current, "artists")))
	}
	queue := array(obj, "queue")
	if len(queue) == 0 {
		line(w, "Queue is empty")
		return
	}
	heading(w, "Up next")
	for i, entry := range queue {
		if track, ok := asObject(entry); ok {
			line(w, "  %d. %s - %s", i+1, str(track, "name"), artistNames(array(track, "artists")))
		}
	}
}

// devicesFormatter renders the available playback devices.
type devicesFormatter struct{}

func (f *devicesFormatter) Name() string { return "devices" }
func (f *devicesFormatter) Kinds() []PayloadKind { return []PayloadKind{KindDevices} }

func (f *devicesFormatter) Matches(payload map[string]any) bool {
	return has(payload, "devices")
}

func (f *devicesFormatter) Format(w io.Writer, payload any, message string) {
	obj, ok := asObject(payload)
	if !ok {
		line(w, "%s", message)
		return
	}
	devices := array(obj, "devices")
	if len(devices) == 0 {
		line(w, "No devices available")
		return
	}
	heading(w, "Devices")
	for _, entry := range devices {
		device, ok := asObject(entry)
		if !ok {
			continue
		}
		marker := " "
		if boolean(device, "is_active") {
			marker = "*"
		}
		line(w, "%s %s (%s) volume %d%%  %s",
			marker, str(device, "name"), str(device, "type"),
			int(num(device, "volume_percent")), dimStyle.Render(str(device, "id")))
	}
}

// playHistoryFormatter renders recently played tracks.
type playHistoryFormatter struct{}

func (f *playHistoryFormatter) Name() string { return "play-history" }
func (f *playHistoryFormatter) Kinds() []PayloadKind { return []PayloadKind{KindPlayHistory} }

func (f *playHistoryFormatter) Matches(payload map[string]any) bool {
	first, ok := firstItem(payload)
	return ok && has(first, "played_at")
}

func (f *playHistoryFormatter) Format(w io.Writer, payload any, message string) {
	heading(w, message)
	obj, _ := asObject(payload)
	for i, entry := range array(obj, "items") {
		item, ok := asObject(entry)
		if !ok {
			continue
		}
		track := object(item, "track")
		line(w, "%d. %s - %s %s", i+1, str(track, "name"), artistNames(array(track, "artists")),
			dimStyle.Render(str(item, "played_at")))
	}
}

// firstItem returns payload.items[0] when present.
func firstItem(payload any) (map[string]any, bool) {
	obj, ok := asObject(payload)
	if !ok {
		return nil, false
	}
	arr := array(obj, "items")
	if len(arr) == 0 {
		return nil, false
	}
	return asObject(arr[0])
}
