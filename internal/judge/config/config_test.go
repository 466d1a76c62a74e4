package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.Image != "codejudge-sandbox:latest" {
		t.Fatalf("image = %q", cfg.Image)
	}
	if cfg.MemoryLimitMB != 256 || cfg.PidsLimit != 50 || cfg.MaxExecutionSeconds != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CPULimit != 1.0 || cfg.MaxOutputChars != 10000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	data := "image: custom:1\nmemoryLimitMb: 512\nmaxExecutionSeconds: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Image != "custom:1" || cfg.MemoryLimitMB != 512 || cfg.MaxExecutionSeconds != 3 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.PidsLimit != 50 || cfg.MaxOutputChars != 10000 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JUDGE_SANDBOX_IMAGE", "env:2")
	t.Setenv("JUDGE_MEMORY_LIMIT_MB", "128")
	t.Setenv("JUDGE_PIDS_LIMIT", "20")
	t.Setenv("JUDGE_CPU_LIMIT", "0.5")
	t.Setenv("JUDGE_MAX_EXECUTION_SECONDS", "5")
	t.Setenv("JUDGE_MAX_OUTPUT_CHARS", "2000")

	cfg := FromEnv()
	if cfg.Image != "env:2" || cfg.MemoryLimitMB != 128 || cfg.PidsLimit != 20 {
		t.Fatalf("env values not applied: %+v", cfg)
	}
	if cfg.CPULimit != 0.5 || cfg.MaxExecutionSeconds != 5 || cfg.MaxOutputChars != 2000 {
		t.Fatalf("env values not applied: %+v", cfg)
	}
}

func TestEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("JUDGE_MEMORY_LIMIT_MB", "lots")
	cfg := FromEnv()
	if cfg.MemoryLimitMB != 256 {
		t.Fatalf("invalid env value must keep the default, got %d", cfg.MemoryLimitMB)
	}
}
