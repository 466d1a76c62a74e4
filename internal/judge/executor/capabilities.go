package executor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"codejudge/pkg/utils/logger"

	"codejudge/internal/judge/config"
)

const probeTimeout = 10 * time.Second

// Capabilities is the cached result of the one-time startup probe. It
// is constructed once and injected into the judge; no hidden globals.
type Capabilities struct {
	ContainerAvailable bool
	Reason             string
}

// Probe checks whether the container runtime is reachable and the
// sandbox image exists, attempting a one-time build from the configured
// Dockerfile when the image is missing. Call once at process startup.
func Probe(ctx context.Context, cfg config.SandboxConfig) Capabilities {
	if _, err := exec.LookPath("docker"); err != nil {
		return unavailable(ctx, "docker binary not found")
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := exec.CommandContext(probeCtx, "docker", "info", "--format", "{{.ServerVersion}}").Run(); err != nil {
		return unavailable(ctx, "docker daemon not reachable")
	}

	if err := exec.CommandContext(probeCtx, "docker", "image", "inspect", cfg.Image).Run(); err != nil {
		if buildErr := buildImage(ctx, cfg); buildErr != nil {
			return unavailable(ctx, "sandbox image missing and build failed: "+buildErr.Error())
		}
	}

	logger.Info(ctx, "container sandbox available", zap.String("image", cfg.Image))
	return Capabilities{ContainerAvailable: true}
}

func buildImage(ctx context.Context, cfg config.SandboxConfig) error {
	if _, err := os.Stat(cfg.DockerfilePath); err != nil {
		return err
	}
	logger.Info(ctx, "building sandbox image",
		zap.String("image", cfg.Image),
		zap.String("dockerfile", cfg.DockerfilePath))

	buildCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	cmd := exec.CommandContext(buildCtx, "docker", "build",
		"-t", cfg.Image,
		"-f", cfg.DockerfilePath,
		filepath.Dir(cfg.DockerfilePath))
	return cmd.Run()
}

func unavailable(ctx context.Context, reason string) Capabilities {
	logger.Warn(ctx, "container sandbox unavailable, using fallback executor", zap.String("reason", reason))
	return Capabilities{ContainerAvailable: false, Reason: reason}
}
