//go:build linux

package monitor

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

func samplerSupported() bool { return true }

// setProcessGroup places the child in its own process group so a kill
// reaches every descendant, including spawned compilers and runtimes.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = unix.Kill(-pid, unix.SIGKILL)
}

// treeRSSBytes sums the resident memory of pid and all its descendants.
// Returns an error when the root process no longer exists.
func treeRSSBytes(pid int) (int64, error) {
	procs, err := procfs.AllProcs()
	if err != nil {
		return 0, err
	}

	stats := make(map[int]procfs.ProcStat, len(procs))
	children := make(map[int][]int, len(procs))
	for _, p := range procs {
		stat, err := p.Stat()
		if err != nil {
			continue
		}
		stats[p.PID] = stat
		children[stat.PPID] = append(children[stat.PPID], p.PID)
	}
	if _, ok := stats[pid]; !ok {
		return 0, unix.ESRCH
	}

	var total int64
	queue := []int{pid}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if stat, ok := stats[current]; ok {
			total += int64(stat.ResidentMemory())
		}
		queue = append(queue, children[current]...)
	}
	return total, nil
}

func maxRSSKB(state *os.ProcessState) int64 {
	if state == nil {
		return 0
	}
	usage, ok := state.SysUsage().(*syscall.Rusage)
	if !ok {
		return 0
	}
	return usage.Maxrss
}
