package language

import "codejudge/internal/judge/model"

// pythonGuard is injected ahead of user code. It intercepts import
// resolution for a deny-list of modules and replaces input() with a
// line-buffered shim over sys.stdin, so obfuscated imports and raw
// interpreter tricks fail even when the static scan missed them.
// The real import and the deny-list live in closure cells, and every
// top-level helper name is deleted afterwards, so user code finds no
// saved original to call.
const pythonGuard = `import builtins as _cj_builtins
import sys as _cj_sys

_CJ_BLOCKED = (
    "os", "subprocess", "shutil", "socket", "ctypes", "multiprocessing",
    "importlib", "signal", "resource", "pty", "fcntl", "mmap", "http",
    "urllib", "ftplib", "telnetlib",
)


def _cj_make_import_guard(real_import, denied):
    def guarded(name, *args, **kwargs):
        root = str(name).split(".")[0]
        if root in denied:
            raise ImportError("module '%s' is not allowed" % root)
        return real_import(name, *args, **kwargs)
    return guarded


def _cj_make_input(stdin):
    lines = iter(stdin.readline, "")

    def shim(*_prompt):
        line = next(lines, None)
        if line is None:
            raise EOFError("EOF when reading a line")
        return line.rstrip("\n")
    return shim


_cj_builtins.__import__ = _cj_make_import_guard(_cj_builtins.__import__, _CJ_BLOCKED)
_cj_builtins.input = _cj_make_input(_cj_sys.stdin)
del _cj_builtins, _cj_sys, _CJ_BLOCKED, _cj_make_import_guard, _cj_make_input
`

type pythonAdapter struct{}

func (pythonAdapter) ID() model.Language { return model.LanguagePython }

func (pythonAdapter) Prepare(code string) (Unit, error) {
	return Unit{
		FileName: "main.py",
		Source:   pythonGuard + "\n" + code,
		RunTpl:   "python3 {src}",
	}, nil
}
