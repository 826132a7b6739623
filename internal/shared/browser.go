package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// goos is a seam for exercising the platform dispatch in tests.
var goos = func() string { return runtime.GOOS }

// OpenBrowser launches the default browser at url. The login flow uses
// it to hand the authorization URL to the user.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	platform := goos()
	switch platform {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", platform)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
