package executor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"codejudge/pkg/utils/logger"

	"codejudge/internal/judge/config"
	"codejudge/internal/judge/language"
	"codejudge/internal/judge/model"
	"codejudge/internal/judge/monitor"
)

// Compilers legitimately outlive tight run limits, so the compile step
// gets extra headroom on both clocks.
const (
	compileExtraTime      = 10 * time.Second
	compileMemoryMultiple = 2
)

// FallbackExecutor runs code as a monitored host subprocess. It is used
// only when the container probe failed; the sanitizer and the resource
// monitor are the remaining defenses on this path.
type FallbackExecutor struct {
	cfg      config.SandboxConfig
	registry *language.Registry
}

// NewFallbackExecutor creates the monitored-subprocess strategy.
func NewFallbackExecutor(cfg config.SandboxConfig, registry *language.Registry) *FallbackExecutor {
	return &FallbackExecutor{cfg: cfg, registry: registry}
}

// Run writes the wrapped source into a fresh workspace, compiles when
// the language requires it, then delegates the run step to the resource
// monitor. The workspace is removed on every exit path.
func (e *FallbackExecutor) Run(ctx context.Context, code string, lang model.Language, stdin string) (model.RawRunOutcome, error) {
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

	maxOutputBytes := int64(e.cfg.MaxOutputChars) * 4
	runTimeout := time.Duration(e.cfg.MaxExecutionSeconds) * time.Second

	if unit.NeedsCompile() {
		compileArgv, err := unit.CompileArgv(dir)
		if err != nil {
			return model.RawRunOutcome{}, err
		}
		compileOutcome, err := monitor.Run(ctx, monitor.Spec{
			Argv:           compileArgv,
			Dir:            dir,
			WallTimeout:    runTimeout + compileExtraTime,
			MemoryLimitMB:  e.cfg.MemoryLimitMB * compileMemoryMultiple,
			MaxOutputBytes: maxOutputBytes,
		})
		if err != nil {
			return model.RawRunOutcome{}, err
		}
		// Compile failures short-circuit: the run step is never invoked
		// and the compiler diagnostics become the error.
		if compileOutcome.TimedOut || compileOutcome.MemoryExceeded || compileOutcome.ExitCode != 0 {
			compileOutcome.CompileFailed = true
			compileOutcome.TimedOut = false
			compileOutcome.MemoryExceeded = false
			if compileOutcome.Stderr == "" {
				compileOutcome.Stderr = "compilation did not complete within limits"
			}
			logger.Info(ctx, "compile step failed",
				zap.String("language", string(lang)),
				zap.Int("exit_code", compileOutcome.ExitCode))
			return compileOutcome, nil
		}
	}

	runArgv, err := unit.RunArgv(dir)
	if err != nil {
		return model.RawRunOutcome{}, err
	}
	return monitor.Run(ctx, monitor.Spec{
		Argv:           runArgv,
		Dir:            dir,
		Stdin:          stdin,
		WallTimeout:    runTimeout,
		MemoryLimitMB:  e.cfg.MemoryLimitMB,
		MaxOutputBytes: maxOutputBytes,
	})
}
