package executor

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"go.uber.org/zap"

	appErr "codejudge/pkg/errors"
	"codejudge/pkg/utils/logger"

	"codejudge/internal/judge/config"
	"codejudge/internal/judge/language"
	"codejudge/internal/judge/model"
	"codejudge/internal/judge/monitor"
)

const (
	// Mount points inside the container: the workspace is read-only,
	// the scratch tmpfs is the only writable, executable area.
	containerMountDir   = "/sandbox"
	containerScratchDir = "/box"

	// Sentinel exit codes: 124 is the timeout wrapper, 137 is the
	// kernel OOM kill (128+SIGKILL).
	exitCodeTimeout = 124
	exitCodeOOM     = 137

	// Grace period for container startup and the compile step, on top
	// of the run timeout enforced inside the container.
	containerGrace = 30 * time.Second
)

// ContainerExecutor runs code inside a locked-down container.
type ContainerExecutor struct {
	cfg      config.SandboxConfig
	registry *language.Registry
}

// NewContainerExecutor creates the container execution strategy.
func NewContainerExecutor(cfg config.SandboxConfig, registry *language.Registry) *ContainerExecutor {
	return &ContainerExecutor{cfg: cfg, registry: registry}
}

// Run writes the wrapped source and stdin into a fresh read-only mounted
// workspace, then invokes the container runtime with all capabilities
// dropped. The container sequence copies the source into the writable
// scratch area, compiles if required, and runs under a timeout wrapper.
func (e *ContainerExecutor) Run(ctx context.Context, code string, lang model.Language, stdin string) (model.RawRunOutcome, error) {
	adapter, err := e.registry.Get(lang)
	if err != nil {
		return model.RawRunOutcome{}, err
	}
	unit, err := adapter.Prepare(code)
	if err != nil {
		return model.RawRunOutcome{}, err
	}

	dir, cleanup, err := newWorkspace()
	if err != nil {
		return model.RawRunOutcome{}, err
	}
	defer cleanup()

	if err := writeWorkspaceFile(dir, unit.FileName, unit.Source); err != nil {
		return model.RawRunOutcome{}, err
	}
	if err := writeWorkspaceFile(dir, stdinFileName, stdin); err != nil {
		return model.RawRunOutcome{}, err
	}

	script, err := buildContainerScript(unit, e.cfg.MaxExecutionSeconds)
	if err != nil {
		return model.RawRunOutcome{}, err
	}
	name := "judged-" + uuid.NewString()
	argv := e.dockerArgv(name, dir, script)

	logger.Debug(ctx, "running in container", zap.String("image", e.cfg.Image), zap.String("workspace", dir))
	outcome, err := monitor.Run(ctx, monitor.Spec{
		Argv:           argv,
		Stdin:          "",
		WallTimeout:    time.Duration(e.cfg.MaxExecutionSeconds)*time.Second + containerGrace,
		MaxOutputBytes: int64(e.cfg.MaxOutputChars) * 4,
	})
	if err != nil {
		removeContainer(ctx, name)
		return model.RawRunOutcome{}, appErr.Wrap(err, appErr.ContainerRuntimeError)
	}
	// A wall timeout here killed the docker client, not the container;
	// --rm never fires for it, so reap it explicitly.
	if outcome.TimedOut {
		removeContainer(ctx, name)
	}

	switch outcome.ExitCode {
	case exitCodeTimeout:
		outcome.TimedOut = true
		outcome.MemoryExceeded = false
	case exitCodeOOM:
		outcome.MemoryExceeded = true
		outcome.TimedOut = false
	}
	// Container-level memory accounting is not exposed here.
	outcome.MemoryMB = 0
	return outcome, nil
}

// buildContainerScript assembles the in-container shell sequence from
// adapter constants and fixed paths only; user data enters through the
// mounted files, never the command line.
func buildContainerScript(unit language.Unit, maxSeconds int) (string, error) {
	parts := []string{
		fmt.Sprintf("cp %s/%s %s/", containerMountDir, unit.FileName, containerScratchDir),
		"cd " + containerScratchDir,
	}
	if unit.NeedsCompile() {
		compileArgv, err := unit.CompileArgv(containerScratchDir)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.Join(compileArgv, " "))
	}
	runArgv, err := unit.RunArgv(containerScratchDir)
	if err != nil {
		return "", err
	}
	// -k escalates to SIGKILL so a program trapping SIGTERM cannot
	// outlive its slot.
	runCmd := fmt.Sprintf("timeout -k 1s %ds %s < %s/%s",
		maxSeconds, strings.Join(runArgv, " "), containerMountDir, stdinFileName)
	parts = append(parts, runCmd)
	return strings.Join(parts, " && "), nil
}

// removeContainer force-removes a container that outlived its client.
func removeContainer(ctx context.Context, name string) {
	rmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := exec.CommandContext(rmCtx, "docker", "rm", "-f", name).Run(); err != nil {
		logger.Warn(ctx, "container cleanup failed", zap.String("container", name), zap.Error(err))
	}
}

func (e *ContainerExecutor) dockerArgv(name, dir, script string) []string {
	mem := strconv.FormatInt(e.cfg.MemoryLimitMB, 10) + "m"
	return []string{
		"docker", "run", "--rm",
		"--name", name,
		"--network=none",
		"-m", mem,
		"--memory-swap", mem, // no swap headroom
		"--pids-limit", strconv.FormatInt(e.cfg.PidsLimit, 10),
		"--cpus", strconv.FormatFloat(e.cfg.CPULimit, 'f', -1, 64),
		"--read-only",
		"--tmpfs", containerScratchDir + ":rw,exec,nosuid,size=128m",
		"--tmpfs", "/tmp:rw,noexec,nosuid,size=16m",
		"--security-opt", "no-new-privileges",
		"--cap-drop", "ALL",
		"--user", "nobody",
		"-v", dir + ":" + containerMountDir + ":ro",
		"-w", containerScratchDir,
		e.cfg.Image,
		"/bin/sh", "-c", script,
	}
}
