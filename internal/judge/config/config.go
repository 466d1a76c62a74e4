// Package config holds the process-wide sandbox configuration.
// It is loaded once at startup and read-only afterwards.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	appErr "codejudge/pkg/errors"
)

const (
	defaultImage               = "codejudge-sandbox:latest"
	defaultMemoryLimitMB       = 256
	defaultPidsLimit           = 50
	defaultCPULimit            = 1.0
	defaultMaxExecutionSeconds = 10
	defaultMaxOutputChars      = 10000
	defaultDockerfilePath      = "sandbox/Dockerfile"
)

// SandboxConfig holds every execution limit and the sandbox image identity.
type SandboxConfig struct {
	Image               string  `yaml:"image"`
	MemoryLimitMB       int64   `yaml:"memoryLimitMb"`
	PidsLimit           int64   `yaml:"pidsLimit"`
	CPULimit            float64 `yaml:"cpuLimit"`
	MaxExecutionSeconds int     `yaml:"maxExecutionSeconds"`
	MaxOutputChars      int     `yaml:"maxOutputChars"`
	DockerfilePath      string  `yaml:"dockerfilePath"`
}

// Default returns the built-in limits.
func Default() SandboxConfig {
	return SandboxConfig{
		Image:               defaultImage,
		MemoryLimitMB:       defaultMemoryLimitMB,
		PidsLimit:           defaultPidsLimit,
		CPULimit:            defaultCPULimit,
		MaxExecutionSeconds: defaultMaxExecutionSeconds,
		MaxOutputChars:      defaultMaxOutputChars,
		DockerfilePath:      defaultDockerfilePath,
	}
}

// Load reads a YAML config file over the defaults, then applies
// environment overrides. An empty path skips the file step.
func Load(path string) (SandboxConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, appErr.Wrapf(err, appErr.InvalidParams, "read config file failed")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, appErr.Wrapf(err, appErr.InvalidParams, "parse config file failed")
		}
	}
	ApplyDefaults(&cfg)
	ApplyEnv(&cfg)
	return cfg, nil
}

// FromEnv builds the config from defaults plus environment overrides only.
func FromEnv() SandboxConfig {
	cfg := Default()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyDefaults fills zero or invalid fields with the built-in limits.
func ApplyDefaults(cfg *SandboxConfig) {
	if cfg.Image == "" {
		cfg.Image = defaultImage
	}
	if cfg.MemoryLimitMB <= 0 {
		cfg.MemoryLimitMB = defaultMemoryLimitMB
	}
	if cfg.PidsLimit <= 0 {
		cfg.PidsLimit = defaultPidsLimit
	}
	if cfg.CPULimit <= 0 {
		cfg.CPULimit = defaultCPULimit
	}
	if cfg.MaxExecutionSeconds <= 0 {
		cfg.MaxExecutionSeconds = defaultMaxExecutionSeconds
	}
	if cfg.MaxOutputChars <= 0 {
		cfg.MaxOutputChars = defaultMaxOutputChars
	}
	if cfg.DockerfilePath == "" {
		cfg.DockerfilePath = defaultDockerfilePath
	}
}

// ApplyEnv overrides fields from JUDGE_* environment variables.
func ApplyEnv(cfg *SandboxConfig) {
	if v := os.Getenv("JUDGE_SANDBOX_IMAGE"); v != "" {
		cfg.Image = v
	}
	if v, ok := envInt64("JUDGE_MEMORY_LIMIT_MB"); ok {
		cfg.MemoryLimitMB = v
	}
	if v, ok := envInt64("JUDGE_PIDS_LIMIT"); ok {
		cfg.PidsLimit = v
	}
	if v := os.Getenv("JUDGE_CPU_LIMIT"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			cfg.CPULimit = parsed
		}
	}
	if v, ok := envInt64("JUDGE_MAX_EXECUTION_SECONDS"); ok {
		cfg.MaxExecutionSeconds = int(v)
	}
	if v, ok := envInt64("JUDGE_MAX_OUTPUT_CHARS"); ok {
		cfg.MaxOutputChars = int(v)
	}
	if v := os.Getenv("JUDGE_DOCKERFILE_PATH"); v != "" {
		cfg.DockerfilePath = v
	}
}

func envInt64(key string) (int64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
