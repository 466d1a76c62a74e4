package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"codejudge/pkg/utils/logger"

	"codejudge/internal/judge/config"
)

// AppConfig holds judged settings.
type AppConfig struct {
	Logger  logger.Config        `yaml:"logger"`
	Sandbox config.SandboxConfig `yaml:"sandbox"`
}

func loadAppConfig(path string) (*AppConfig, error) {
	cfg := AppConfig{Sandbox: config.Default()}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	config.ApplyDefaults(&cfg.Sandbox)
	config.ApplyEnv(&cfg.Sandbox)
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "console"
	}
	return &cfg, nil
}
