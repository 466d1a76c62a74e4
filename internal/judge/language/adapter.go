// Package language defines per-language file layout, compile and run
// commands, and defensive source wrapping.
package language

import (
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	appErr "codejudge/pkg/errors"

	"codejudge/internal/judge/model"
)

// Adapter prepares one language for execution. The judge never branches
// on language outside the registry lookup.
type Adapter interface {
	ID() model.Language
	// Prepare applies the defensive source transform and resolves the
	// file layout and command templates for this piece of code.
	Prepare(code string) (Unit, error)
}

// Unit is a prepared execution unit: the wrapped source plus the
// command templates to compile and run it.
type Unit struct {
	FileName string
	Source   string
	// BinaryFile is the compile output name; empty for interpreted languages.
	BinaryFile string
	// CompileTpl is empty when no compile step is required.
	// Templates may use {src}, {bin} and {dir} placeholders.
	CompileTpl string
	RunTpl     string
}

// NeedsCompile reports whether the unit has a compile step.
func (u Unit) NeedsCompile() bool {
	return u.CompileTpl != ""
}

// CompileArgv expands the compile template against dir.
func (u Unit) CompileArgv(dir string) ([]string, error) {
	return buildCommand(u.CompileTpl, u, dir)
}

// RunArgv expands the run template against dir.
func (u Unit) RunArgv(dir string) ([]string, error) {
	return buildCommand(u.RunTpl, u, dir)
}

func buildCommand(tpl string, u Unit, dir string) ([]string, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, appErr.New(appErr.InvalidParams).WithMessage("command template is required")
	}
	expanded := tpl
	expanded = strings.ReplaceAll(expanded, "{src}", filepath.Join(dir, u.FileName))
	if u.BinaryFile != "" {
		expanded = strings.ReplaceAll(expanded, "{bin}", filepath.Join(dir, u.BinaryFile))
	}
	expanded = strings.ReplaceAll(expanded, "{dir}", dir)
	fields, err := shlex.Split(expanded)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidParams, "parse command template failed")
	}
	if len(fields) == 0 {
		return nil, appErr.New(appErr.InvalidParams).WithMessage("command is empty after expansion")
	}
	return fields, nil
}
