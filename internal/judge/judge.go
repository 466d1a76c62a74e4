// Package judge is the single entry point for sandboxed code execution:
// sanitize, dispatch to an execution strategy, normalize the outcome.
package judge

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	appErr "codejudge/pkg/errors"
	"codejudge/pkg/utils/logger"

	"codejudge/internal/judge/config"
	"codejudge/internal/judge/executor"
	"codejudge/internal/judge/model"
	"codejudge/internal/judge/sanitizer"

	"codejudge/internal/judge/language"
)

// Judge executes untrusted code under the configured limits. Safe for
// concurrent use; the only shared state is the read-only config and the
// startup probe result.
type Judge struct {
	cfg       config.SandboxConfig
	caps      executor.Capabilities
	container executor.Executor
	fallback  executor.Executor
}

// New creates a judge with the default container and fallback strategies.
func New(cfg config.SandboxConfig, caps executor.Capabilities) *Judge {
	registry := language.NewRegistry()
	return NewWithExecutors(cfg, caps,
		executor.NewContainerExecutor(cfg, registry),
		executor.NewFallbackExecutor(cfg, registry))
}

// NewWithExecutors creates a judge with injected execution strategies.
func NewWithExecutors(cfg config.SandboxConfig, caps executor.Capabilities, container, fallback executor.Executor) *Judge {
	return &Judge{cfg: cfg, caps: caps, container: container, fallback: fallback}
}

// Execute runs one request end to end and always returns a complete,
// well-formed result; internal panics are converted into an
// infrastructure error instead of crashing the caller.
func (j *Judge) Execute(ctx context.Context, req model.ExecutionRequest) (res model.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "judge panic recovered", zap.Any("panic", r))
			res = model.ExecutionResult{
				Success: false,
				Error:   fmt.Sprintf("Internal judge error: %v", r),
			}
		}
	}()

	if !req.Language.Supported() {
		return model.ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("Unsupported language: %s", req.Language),
		}
	}

	if ok, finding := sanitizer.Sanitize(req.Code, req.Language); !ok {
		logger.Info(ctx, "code rejected by sanitizer",
			zap.String("language", string(req.Language)),
			zap.String("pattern", finding.Pattern),
			zap.String("matched", finding.MatchedText))
		return model.ExecutionResult{
			Success: false,
			Error:   "Security violation: " + finding.Message,
		}
	}

	strategy := j.fallback
	if j.caps.ContainerAvailable {
		strategy = j.container
	}

	outcome, err := strategy.Run(ctx, req.Code, req.Language, req.Stdin)
	if err != nil {
		logger.Error(ctx, "execution failed", zap.Error(err))
		return model.ExecutionResult{
			Success: false,
			Error:   "Execution failed: " + appErr.GetError(err).Error(),
		}
	}
	return j.normalize(outcome)
}

// normalize derives the public result from a raw outcome: truncation,
// trimming, and distinct messages per terminal state.
func (j *Judge) normalize(outcome model.RawRunOutcome) model.ExecutionResult {
	res := model.ExecutionResult{
		Output:          j.truncate(strings.TrimSpace(outcome.Stdout)),
		ExecutionTimeMs: outcome.ElapsedMs,
		MemoryUsageMB:   outcome.MemoryMB,
	}

	switch {
	case outcome.TimedOut:
		res.Error = fmt.Sprintf("Time limit exceeded (%d seconds)", j.cfg.MaxExecutionSeconds)
	case outcome.MemoryExceeded:
		res.Error = fmt.Sprintf("Memory limit exceeded (%d MB)", j.cfg.MemoryLimitMB)
	case outcome.CompileFailed:
		res.Error = "Compilation failed: " + j.truncate(strings.TrimSpace(outcome.Stderr))
	case outcome.ExitCode != 0:
		stderr := strings.TrimSpace(outcome.Stderr)
		if stderr == "" {
			stderr = fmt.Sprintf("process exited with code %d", outcome.ExitCode)
		}
		res.Error = j.truncate(stderr)
	default:
		res.Success = true
	}
	return res
}

func (j *Judge) truncate(s string) string {
	if len(s) <= j.cfg.MaxOutputChars {
		return s
	}
	// Back off to a rune boundary so the cut never produces invalid UTF-8.
	cut := j.cfg.MaxOutputChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
