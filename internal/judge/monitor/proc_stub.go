//go:build !linux

package monitor

import (
	"os"
	"os/exec"
)

// Memory supervision degrades gracefully off linux: time-based limiting
// still applies, memory limiting is skipped.
func samplerSupported() bool { return false }

func setProcessGroup(cmd *exec.Cmd) {}

func killTree(pid int) {
	if pid <= 0 {
		return
	}
	if proc, err := os.FindProcess(pid); err == nil {
		_ = proc.Kill()
	}
}

func treeRSSBytes(pid int) (int64, error) { return 0, nil }

func maxRSSKB(state *os.ProcessState) int64 { return 0 }
