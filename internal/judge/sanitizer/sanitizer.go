// Package sanitizer performs static pattern-based rejection of dangerous
// constructs before any execution is attempted. It is the single trust
// boundary shared by the container and fallback execution paths.
package sanitizer

import (
	"fmt"
	"regexp"

	"codejudge/internal/judge/model"
)

// Rule binds one dangerous-construct category to its detection pattern.
// Rules are evaluated in table order; the first match wins so rejection
// messages stay deterministic.
type Rule struct {
	Category string
	Message  string
	re       *regexp.Regexp
}

func rule(category, message, pattern string) Rule {
	return Rule{
		Category: category,
		Message:  message,
		re:       regexp.MustCompile(`(?i)` + pattern),
	}
}

var pythonRules = []Rule{
	rule("process-spawn", "process control modules are not allowed", `\bimport\s+(os|subprocess|multiprocessing|pty|signal)\b`),
	rule("process-spawn", "process control modules are not allowed", `\bfrom\s+(os|subprocess|multiprocessing|pty)\b`),
	rule("dynamic-eval", "dynamic code evaluation is not allowed", `\b(eval|exec|compile)\s*\(`),
	rule("dynamic-eval", "dynamic import is not allowed", `\b__import__\s*\(`),
	rule("dynamic-eval", "importlib is not allowed", `\bimportlib\b`),
	rule("low-level-os", "low-level OS access is not allowed", `\bimport\s+(ctypes|fcntl|resource|mmap)\b`),
	rule("network", "network access is not allowed", `\bimport\s+(socket|http|urllib|ftplib|telnetlib)\b`),
	rule("filesystem", "access to system paths is not allowed", `['"]/(etc|proc|sys|dev|root)(/|['"])`),
	rule("filesystem", "shutil is not allowed", `\bimport\s+shutil\b`),
	rule("introspection", "interpreter internals are not allowed", `\b(globals|locals|vars)\s*\(\s*\)`),
	rule("introspection", "builtins manipulation is not allowed", `\b__builtins__\b`),
	rule("introspection", "function internals are not allowed", `\b__(closure|globals|subclasses)__\b`),
	rule("introspection", "sandbox internals are not allowed", `\b_cj_\w+|\b_CJ_\w+`),
}

var javascriptRules = []Rule{
	rule("process-spawn", "child_process is not allowed", `\brequire\s*\(\s*['"](node:)?child_process['"]`),
	rule("process-spawn", "process internals are not allowed", `\bprocess\s*\.\s*(binding|dlopen|kill|exit)\b`),
	rule("dynamic-eval", "dynamic code evaluation is not allowed", `\beval\s*\(`),
	rule("dynamic-eval", "the Function constructor is not allowed", `\bnew\s+Function\s*\(`),
	rule("dynamic-eval", "dynamic import is not allowed", `\bimport\s*\(`),
	rule("filesystem", "filesystem modules are not allowed", `\brequire\s*\(\s*['"](node:)?(fs|path)['"]`),
	rule("filesystem", "access to system paths is not allowed", `['"]/(etc|proc|sys|dev|root)(/|['"])`),
	rule("network", "network modules are not allowed", `\brequire\s*\(\s*['"](node:)?(net|http|https|dgram|dns|tls)['"]`),
	rule("low-level-os", "os module is not allowed", `\brequire\s*\(\s*['"](node:)?os['"]`),
	rule("low-level-os", "native modules are not allowed", `\brequire\s*\(\s*['"](node:)?(vm|worker_threads|cluster|repl)['"]`),
}

var javaRules = []Rule{
	rule("process-spawn", "process execution is not allowed", `\bRuntime\s*\.\s*getRuntime\s*\(`),
	rule("process-spawn", "ProcessBuilder is not allowed", `\bProcessBuilder\b`),
	rule("network", "socket APIs are not allowed", `\bjava\s*\.\s*net\s*\.`),
	rule("reflection", "reflection is not allowed", `\bjava\s*\.\s*lang\s*\.\s*reflect\b`),
	rule("reflection", "class loading is not allowed", `\bClass\s*\.\s*forName\s*\(`),
	rule("filesystem", "access to system paths is not allowed", `["']/(etc|proc|sys|dev|root)(/|["'])`),
	rule("low-level-os", "System.exit is not allowed", `\bSystem\s*\.\s*exit\s*\(`),
	rule("low-level-os", "JNI loading is not allowed", `\bSystem\s*\.\s*(load|loadLibrary)\s*\(`),
}

var cRules = []Rule{
	rule("process-spawn", "process execution is not allowed", `\b(system|popen|fork|vfork)\s*\(`),
	rule("process-spawn", "exec calls are not allowed", `\bexec[lv][pe]?\s*\(`),
	rule("network", "socket APIs are not allowed", `\bsocket\s*\(`),
	rule("network", "socket headers are not allowed", `#\s*include\s*<\s*(sys/socket|netinet/in|arpa/inet)\.h\s*>`),
	rule("low-level-os", "system headers are not allowed", `#\s*include\s*<\s*(sys/ptrace|sys/mount|sys/reboot)\.h\s*>`),
	rule("low-level-os", "inline assembly is not allowed", `\b__asm__\b|\basm\s*(volatile)?\s*\(`),
	rule("filesystem", "access to system paths is not allowed", `"/(etc|proc|sys|dev|root)(/|")`),
	rule("filesystem", "file removal calls are not allowed", `\b(unlink|remove|rmdir)\s*\(\s*"`),
}

var tables = map[model.Language][]Rule{
	model.LanguagePython:     pythonRules,
	model.LanguageJavaScript: javascriptRules,
	model.LanguageJava:       javaRules,
	model.LanguageC:          cRules,
	model.LanguageCpp:        cRules,
}

// Sanitize scans code for dangerous constructs. It is pure: no side
// effects, immutable tables. A nil finding means the code passed.
func Sanitize(code string, lang model.Language) (bool, *model.SecurityFinding) {
	if len(code) > model.MaxSourceBytes {
		return false, &model.SecurityFinding{
			Pattern: "source-too-large",
			Message: fmt.Sprintf("source exceeds %d bytes", model.MaxSourceBytes),
		}
	}
	for _, r := range tables[lang] {
		if match := r.re.FindString(code); match != "" {
			return false, &model.SecurityFinding{
				Pattern:     r.Category,
				Message:     r.Message,
				MatchedText: match,
			}
		}
	}
	return true, nil
}
