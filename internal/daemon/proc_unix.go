//go:build !windows

package daemon

import "syscall"

// isProcessRunning probes the pid with signal 0.
func isProcessRunning(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

func terminateProcess(pid int) {
	_ = syscall.Kill(pid, syscall.SIGTERM)
}
