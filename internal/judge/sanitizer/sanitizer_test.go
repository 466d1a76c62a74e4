package sanitizer

import (
	"strings"
	"testing"

	"codejudge/internal/judge/model"
)

func TestSanitizeRejectsDangerousConstructs(t *testing.T) {
	cases := []struct {
		name     string
		lang     model.Language
		code     string
		category string
	}{
		{"python import os", model.LanguagePython, "import os\nprint(os.getcwd())", "process-spawn"},
		{"python subprocess", model.LanguagePython, "import subprocess", "process-spawn"},
		{"python eval", model.LanguagePython, "eval('1+1')", "dynamic-eval"},
		{"python dunder import", model.LanguagePython, "__import__('os')", "dynamic-eval"},
		{"python ctypes", model.LanguagePython, "import ctypes", "low-level-os"},
		{"python socket", model.LanguagePython, "import socket", "network"},
		{"python etc path", model.LanguagePython, "open('/etc/passwd')", "filesystem"},
		{"python closure probing", model.LanguagePython, "f = print\nprint(f.__globals__)", "introspection"},
		{"python guard internals", model.LanguagePython, "m = _cj_real_import('o' + 's')\nprint(m.getcwd())", "introspection"},
		{"js child_process", model.LanguageJavaScript, "const cp = require('child_process');", "process-spawn"},
		{"js node prefix", model.LanguageJavaScript, "require('node:child_process')", "process-spawn"},
		{"js eval", model.LanguageJavaScript, "eval('1')", "dynamic-eval"},
		{"js fs", model.LanguageJavaScript, "const fs = require('fs');", "filesystem"},
		{"js net", model.LanguageJavaScript, "require('net')", "network"},
		{"java runtime", model.LanguageJava, "Runtime.getRuntime().exec(\"ls\");", "process-spawn"},
		{"java processbuilder", model.LanguageJava, "new ProcessBuilder(\"ls\").start();", "process-spawn"},
		{"java net", model.LanguageJava, "java.net.Socket s;", "network"},
		{"java reflect", model.LanguageJava, "import java.lang.reflect.Method;", "reflection"},
		{"c system", model.LanguageC, "int main(){system(\"ls\");}", "process-spawn"},
		{"c execve", model.LanguageC, "execve(path, argv, envp);", "process-spawn"},
		{"c socket", model.LanguageC, "int fd = socket(AF_INET, SOCK_STREAM, 0);", "network"},
		{"c socket header", model.LanguageC, "#include <sys/socket.h>", "network"},
		{"cpp fork", model.LanguageCpp, "pid_t p = fork();", "process-spawn"},
		{"cpp etc path", model.LanguageCpp, "std::ifstream f(\"/etc/shadow\");", "filesystem"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, finding := Sanitize(tc.code, tc.lang)
			if ok {
				t.Fatalf("expected rejection for %q", tc.code)
			}
			if finding == nil {
				t.Fatal("expected a finding")
			}
			if finding.Pattern != tc.category {
				t.Fatalf("category = %q, want %q", finding.Pattern, tc.category)
			}
			if finding.MatchedText == "" {
				t.Fatal("expected matched text")
			}
		})
	}
}

func TestSanitizeAcceptsCleanCode(t *testing.T) {
	cases := []struct {
		lang model.Language
		code string
	}{
		{model.LanguagePython, "n = int(input())\nprint(n * 2)"},
		{model.LanguageJavaScript, "process.stdin.on('data', d => process.stdout.write(d));"},
		{model.LanguageJava, "public class Main { public static void main(String[] a) { System.out.println(42); } }"},
		{model.LanguageC, "#include <stdio.h>\nint main(){int n;scanf(\"%d\",&n);printf(\"%d\\n\",n);return 0;}"},
		{model.LanguageCpp, "#include <iostream>\nint main(){int n;std::cin>>n;std::cout<<n;}"},
	}
	for _, tc := range cases {
		if ok, finding := Sanitize(tc.code, tc.lang); !ok {
			t.Fatalf("%s: clean code rejected: %+v", tc.lang, finding)
		}
	}
}

func TestSanitizeIsCaseInsensitive(t *testing.T) {
	ok, finding := Sanitize("IMPORT OS", model.LanguagePython)
	if ok || finding == nil {
		t.Fatal("expected case-insensitive rejection")
	}
}

func TestSanitizeFirstMatchWins(t *testing.T) {
	// Contains both a process-spawn import and an eval; the import
	// rule is earlier in the table and must win every time.
	code := "import os\neval('1')"
	for i := 0; i < 10; i++ {
		ok, finding := Sanitize(code, model.LanguagePython)
		if ok {
			t.Fatal("expected rejection")
		}
		if finding.Pattern != "process-spawn" {
			t.Fatalf("iteration %d: category = %q, want process-spawn", i, finding.Pattern)
		}
	}
}

func TestSanitizeSourceSizeCap(t *testing.T) {
	big := strings.Repeat("a", model.MaxSourceBytes+1)
	ok, finding := Sanitize(big, model.LanguagePython)
	if ok {
		t.Fatal("expected oversized source to be rejected")
	}
	if finding.Pattern != "source-too-large" {
		t.Fatalf("category = %q, want source-too-large", finding.Pattern)
	}
}
