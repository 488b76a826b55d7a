//go:build !windows

package runner

import (
	"errors"
	"os"
	"syscall"
)

// processAlive probes a PID with signal 0. EPERM means the process exists
// but belongs to someone else, which still counts as alive.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
