package executor

import (
	"strings"
	"testing"

	"codejudge/internal/judge/config"
	"codejudge/internal/judge/language"
	"codejudge/internal/judge/model"
)

func mustPrepare(t *testing.T, lang model.Language, code string) language.Unit {
	t.Helper()
	adapter, err := language.NewRegistry().Get(lang)
	if err != nil {
		t.Fatal(err)
	}
	unit, err := adapter.Prepare(code)
	if err != nil {
		t.Fatal(err)
	}
	return unit
}

func TestBuildContainerScriptInterpreted(t *testing.T) {
	unit := mustPrepare(t, model.LanguagePython, "print(1)")

	script, err := buildContainerScript(unit, 10)
	if err != nil {
		t.Fatal(err)
	}

	steps := strings.Split(script, " && ")
	if len(steps) != 3 {
		t.Fatalf("steps = %d, script = %q", len(steps), script)
	}
	if steps[0] != "cp /sandbox/main.py /box/" {
		t.Fatalf("copy step = %q", steps[0])
	}
	if steps[1] != "cd /box" {
		t.Fatalf("cd step = %q", steps[1])
	}
	if !strings.HasPrefix(steps[2], "timeout -k 1s 10s ") {
		t.Fatalf("run step = %q", steps[2])
	}
	if !strings.HasSuffix(steps[2], "< /sandbox/input.txt") {
		t.Fatalf("stdin redirect missing: %q", steps[2])
	}
}

func TestBuildContainerScriptCompiled(t *testing.T) {
	unit := mustPrepare(t, model.LanguageCpp, "int main() { return 0; }")

	script, err := buildContainerScript(unit, 5)
	if err != nil {
		t.Fatal(err)
	}

	steps := strings.Split(script, " && ")
	if len(steps) != 4 {
		t.Fatalf("compiled language needs a compile step, script = %q", script)
	}
	if !strings.HasPrefix(steps[2], "g++ ") {
		t.Fatalf("compile step = %q", steps[2])
	}
	if !strings.Contains(steps[2], "/box/main.cpp") {
		t.Fatalf("compile step must target the scratch copy: %q", steps[2])
	}
	if !strings.Contains(steps[3], "timeout -k 1s 5s /box/main") {
		t.Fatalf("run step = %q", steps[3])
	}
}

func TestDockerArgvHardening(t *testing.T) {
	cfg := config.Default()
	cfg.MemoryLimitMB = 256
	cfg.PidsLimit = 50
	e := NewContainerExecutor(cfg, language.NewRegistry())

	argv := e.dockerArgv("judged-test", "/tmp/ws", "true")
	joined := strings.Join(argv, " ")

	if argv[0] != "docker" || argv[1] != "run" {
		t.Fatalf("argv = %v", argv)
	}
	for _, want := range []string{
		"--rm",
		"--network=none",
		"-m 256m",
		"--memory-swap 256m",
		"--pids-limit 50",
		"--read-only",
		"--security-opt no-new-privileges",
		"--cap-drop ALL",
		"--user nobody",
		"-v /tmp/ws:/sandbox:ro",
		"--name judged-test",
		"--tmpfs /box:rw,exec,nosuid,size=128m",
		"--tmpfs /tmp:rw,noexec,nosuid,size=16m",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("argv missing %q: %s", want, joined)
		}
	}

	// The script runs under sh -c as the trailing triplet.
	n := len(argv)
	if argv[n-3] != "/bin/sh" || argv[n-2] != "-c" || argv[n-1] != "true" {
		t.Fatalf("command tail = %v", argv[n-3:])
	}
}

func TestDockerArgvUsesConfiguredImage(t *testing.T) {
	cfg := config.Default()
	cfg.Image = "judge:test"
	e := NewContainerExecutor(cfg, language.NewRegistry())

	argv := e.dockerArgv("judged-test", "/tmp/ws", "true")
	found := false
	for _, a := range argv {
		if a == "judge:test" {
			found = true
		}
	}
	if !found {
		t.Fatalf("image not in argv: %v", argv)
	}
}
