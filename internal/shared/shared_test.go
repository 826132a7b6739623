package shared

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := GenerateID()
		if id == "" {
			t.Fatal("GenerateID returned an empty string")
		}
		if seen[id] {
			t.Fatalf("GenerateID repeated %q", id)
		}
		seen[id] = true
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Info("hello", "key", "value")

	if buf.Len() == 0 {
		t.Error("logger should write to the provided writer")
	}

	if NewLogger(nil) == nil {
		t.Error("nil writer should fall back to stderr, not a nil logger")
	}
}

func TestConfigDir(t *testing.T) {
	origHome := userHomeDir
	userHomeDir = func() (string, error) { return "/home/test", nil }
	t.Cleanup(func() { userHomeDir = origHome })

	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/home/test", ".config", AppDirName)
	if dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestAppFilePaths(t *testing.T) {
	origHome := userHomeDir
	userHomeDir = func() (string, error) { return "/home/test", nil }
	t.Cleanup(func() { userHomeDir = origHome })

	tc := []struct {
		name string
		fn   func() (string, error)
		file string
	}{
		{name: "config", fn: ConfigPath, file: ConfigFileName},
		{name: "token", fn: TokenPath, file: TokenFileName},
		{name: "pins", fn: PinsPath, file: PinsFileName},
		{name: "socket", fn: SocketPath, file: SocketFileName},
		{name: "pid", fn: PIDPath, file: PIDFileName},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.fn()
			if err != nil {
				t.Fatal(err)
			}
			if filepath.Base(got) != c.file {
				t.Errorf("path = %q, want base %q", got, c.file)
			}
		})
	}
}
