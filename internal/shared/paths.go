package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the per-user directory holding all persisted state.
const AppDirName = "spotify-cli"

// File names inside the app directory.
const (
	ConfigFileName = "config.toml"
	TokenFileName  = "token.json"
	PinsFileName   = "pins.json"
	SocketFileName = "daemon.sock"
	PIDFileName    = "daemon.pid"
)

var userHomeDir = os.UserHomeDir
var userConfigDir = os.UserConfigDir

// ConfigDir returns the application's config directory.
//
// On Windows this lives under the OS config dir; everywhere else it is
// ~/.config/spotify-cli regardless of XDG overrides, matching where the
// CLI has always kept its files.
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		base, err := userConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate config directory: %w", err)
		}
		return filepath.Join(base, AppDirName), nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// EnsureConfigDir returns the config directory, creating it if needed.
func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the path to config.toml.
func ConfigPath() (string, error) { return appFilePath(ConfigFileName) }

// TokenPath returns the path to token.json.
func TokenPath() (string, error) { return appFilePath(TokenFileName) }

// PinsPath returns the path to pins.json.
func PinsPath() (string, error) { return appFilePath(PinsFileName) }

// SocketPath returns the path to the daemon's unix socket.
func SocketPath() (string, error) { return appFilePath(SocketFileName) }

// PIDPath returns the path to the daemon's PID file.
func PIDPath() (string, error) { return appFilePath(PIDFileName) }

func appFilePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
