// Package executor implements the two execution strategies: container
// isolation and the monitored-subprocess fallback.
package executor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	appErr "codejudge/pkg/errors"

	"codejudge/internal/judge/model"
)

const stdinFileName = "input.txt"

// Executor produces one raw outcome for one (code, language, stdin) tuple.
type Executor interface {
	Run(ctx context.Context, code string, lang model.Language, stdin string) (model.RawRunOutcome, error)
}

// newWorkspace creates a fresh per-execution directory. Directories are
// never shared between requests and must be removed via the returned
// cleanup on every exit path.
func newWorkspace() (string, func(), error) {
	dir := filepath.Join(os.TempDir(), "judged-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", func() {}, appErr.Wrapf(err, appErr.WorkspaceError, "create workspace failed")
	}
	cleanup := func() {
		_ = os.RemoveAll(dir)
	}
	return dir, cleanup, nil
}

func writeWorkspaceFile(dir, name, content string) error {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		return appErr.Wrapf(err, appErr.WorkspaceError, "write %s failed", name)
	}
	return nil
}
