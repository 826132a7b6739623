package shared

import (
	"strings"
	"testing"
)

func TestOpenBrowserUnsupportedPlatform(t *testing.T) {
	origGoos := goos
	goos = func() string { return "plan9" }
	t.Cleanup(func() { goos = origGoos })

	err := OpenBrowser("https://example.com")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unsupported platform: plan9") {
		t.Errorf("error = %v", err)
	}
}
