//go:build windows

package daemon

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// isProcessRunning shells out to tasklist; Windows has no signal 0.
func isProcessRunning(pid int) bool {
	out, err := exec.Command("tasklist", "/FI", fmt.Sprintf("PID eq %d", pid)).Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), strconv.Itoa(pid))
}

func terminateProcess(pid int) {
	_ = exec.Command("taskkill", "/PID", strconv.Itoa(pid), "/F").Run()
}
