// Command judged executes one source file in the sandbox and prints the
// result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"codejudge/pkg/utils/logger"

	"codejudge/internal/judge"
	"codejudge/internal/judge/executor"
	"codejudge/internal/judge/model"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	sourcePath := flag.String("file", "", "Path to the source file, or - for stdin")
	langName := flag.String("lang", "", "Language: python, javascript, java, c, cpp")
	stdinData := flag.String("stdin", "", "Data passed to the program on standard input")
	flag.Parse()

	if err := run(*configPath, *sourcePath, *langName, *stdinData); err != nil {
		fmt.Fprintf(os.Stderr, "judged: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, sourcePath, langName, stdinData string) error {
	appCfg, err := loadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(appCfg.Logger); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	lang, ok := model.ParseLanguage(langName)
	if !ok {
		return fmt.Errorf("unsupported language: %q", langName)
	}
	code, err := readSource(sourcePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	caps := executor.Probe(ctx, appCfg.Sandbox)
	j := judge.New(appCfg.Sandbox, caps)

	result := j.Execute(ctx, model.ExecutionRequest{
		Code:     code,
		Language: lang,
		Stdin:    stdinData,
	})
	logger.Info(ctx, "execution finished",
		zap.Bool("success", result.Success),
		zap.Float64("elapsed_ms", result.ExecutionTimeMs))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func readSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("-file is required")
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}
