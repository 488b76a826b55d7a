//go:build windows

package runner

import "os"

func processAlive(pid int) bool {
	// FindProcess opens a handle on Windows and fails for dead PIDs.
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = proc.Release()
	return true
}
