// Package monitor supervises one untrusted subprocess: it enforces a
// wall-clock ceiling and polls the resident memory of the whole process
// tree, killing the tree on breach.
package monitor

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	appErr "codejudge/pkg/errors"
	"codejudge/pkg/utils/logger"

	"codejudge/internal/judge/model"
)

// pollInterval is how often the watcher samples the process tree RSS.
const pollInterval = 100 * time.Millisecond

// Spec describes one supervised run.
type Spec struct {
	Argv        []string
	Dir         string
	Stdin       string
	WallTimeout time.Duration
	// MemoryLimitMB disables memory supervision when <= 0 or when the
	// platform has no sampler; time limiting still applies.
	MemoryLimitMB  int64
	MaxOutputBytes int64
}

// Run spawns the command and blocks until it exits, times out or
// breaches the memory ceiling. Exactly one of {normal exit, TimedOut,
// MemoryExceeded} is set on the outcome. When a timeout and a memory
// breach race, the timeout wins.
//
// The watcher goroutine is always joined before Run returns.
func Run(ctx context.Context, s Spec) (model.RawRunOutcome, error) {
	if len(s.Argv) == 0 {
		return model.RawRunOutcome{}, appErr.ValidationError("argv", "required")
	}
	if s.WallTimeout <= 0 {
		return model.RawRunOutcome{}, appErr.ValidationError("wall_timeout", "required")
	}

	cmd := exec.Command(s.Argv[0], s.Argv[1:]...)
	cmd.Dir = s.Dir
	cmd.Stdin = strings.NewReader(s.Stdin)
	stdout := newLimitedBuffer(s.MaxOutputBytes)
	stderr := newLimitedBuffer(s.MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	setProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return model.RawRunOutcome{}, appErr.Wrapf(err, appErr.ToolchainMissing, "start command failed: %s", s.Argv[0])
	}
	pid := cmd.Process.Pid

	// Single-fire breach channel: the watcher signals at most once,
	// then exits. No shared flags between watcher and the main flow.
	breach := make(chan int64, 1)
	stop := make(chan struct{})
	var peakBytes int64
	var wg sync.WaitGroup
	if s.MemoryLimitMB > 0 && samplerSupported() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			peakBytes = watch(pid, s.MemoryLimitMB*1024*1024, breach, stop)
		}()
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	timer := time.NewTimer(s.WallTimeout)
	defer timer.Stop()

	outcome := model.RawRunOutcome{}
	var waitErr error
	select {
	case waitErr = <-waitCh:
	case <-timer.C:
		outcome.TimedOut = true
		killTree(pid)
		waitErr = <-waitCh
	case <-breach:
		// Deterministic tie-break: if the wall timer already fired,
		// report the timeout instead of the memory breach.
		select {
		case <-timer.C:
			outcome.TimedOut = true
		default:
			outcome.MemoryExceeded = true
		}
		killTree(pid)
		waitErr = <-waitCh
	case <-ctx.Done():
		killTree(pid)
		<-waitCh
		close(stop)
		wg.Wait()
		return model.RawRunOutcome{}, appErr.Wrap(ctx.Err(), appErr.JudgeSystemError)
	}

	close(stop)
	wg.Wait()

	outcome.ElapsedMs = float64(time.Since(start).Microseconds()) / 1000.0
	outcome.Stdout = stdout.String()
	outcome.Stderr = stderr.String()
	outcome.ExitCode = exitCode(waitErr, cmd)
	outcome.MemoryMB = peakMemoryMB(peakBytes, cmd)

	if outcome.TimedOut || outcome.MemoryExceeded {
		logger.Warn(ctx, "process tree killed",
			zap.Strings("argv", s.Argv),
			zap.Bool("timed_out", outcome.TimedOut),
			zap.Bool("memory_exceeded", outcome.MemoryExceeded),
			zap.Float64("elapsed_ms", outcome.ElapsedMs))
	}
	return outcome, nil
}

// watch polls the tree RSS until stop closes or the limit is breached.
// It returns the peak observed RSS in bytes.
func watch(pid int, limitBytes int64, breach chan<- int64, stop <-chan struct{}) int64 {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var peak int64
	for {
		select {
		case <-stop:
			return peak
		case <-ticker.C:
			rss, err := treeRSSBytes(pid)
			if err != nil {
				// Process already gone; never kill a reused pid.
				return peak
			}
			if rss > peak {
				peak = rss
			}
			if rss > limitBytes {
				breach <- rss
				return peak
			}
		}
	}
}

func exitCode(waitErr error, cmd *exec.Cmd) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if waitErr == nil {
		return 0
	}
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

func peakMemoryMB(sampledPeak int64, cmd *exec.Cmd) float64 {
	if sampledPeak > 0 {
		return float64(sampledPeak) / (1024 * 1024)
	}
	if kb := maxRSSKB(cmd.ProcessState); kb > 0 {
		return float64(kb) / 1024
	}
	return 0
}
