// Package model defines the request, outcome and result types of the judge.
package model

// Language identifies a supported programming language.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
	LanguageC          Language = "c"
	LanguageCpp        Language = "cpp"
)

// MaxSourceBytes is the hard cap on submitted source size.
const MaxSourceBytes = 100 * 1024

// Languages returns all supported languages in a stable order.
func Languages() []Language {
	return []Language{LanguagePython, LanguageJavaScript, LanguageJava, LanguageC, LanguageCpp}
}

// Supported reports whether the language is in the supported set.
func (l Language) Supported() bool {
	switch l {
	case LanguagePython, LanguageJavaScript, LanguageJava, LanguageC, LanguageCpp:
		return true
	}
	return false
}

// ParseLanguage resolves a language identifier.
func ParseLanguage(s string) (Language, bool) {
	l := Language(s)
	return l, l.Supported()
}

// ExecutionRequest contains all data needed to execute one piece of code.
type ExecutionRequest struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
	Stdin    string   `json:"stdin"`
}

// SecurityFinding describes one sanitizer rejection.
// Immutable once created.
type SecurityFinding struct {
	Pattern     string `json:"pattern"`
	Message     string `json:"message"`
	MatchedText string `json:"matchedText"`
}

// RawRunOutcome captures raw executor data for one execution.
// Exactly one of {normal completion, TimedOut, MemoryExceeded} holds.
type RawRunOutcome struct {
	ExitCode       int
	Stdout         string
	Stderr         string
	ElapsedMs      float64
	MemoryMB       float64
	TimedOut       bool
	MemoryExceeded bool
	// CompileFailed marks a compile-step short circuit; Stderr then
	// carries the compiler diagnostics.
	CompileFailed bool
}

// ExecutionResult is the public, normalized outcome returned to the caller.
// Created once per request and never mutated afterwards.
type ExecutionResult struct {
	Success         bool    `json:"success"`
	Output          string  `json:"output"`
	Error           string  `json:"error,omitempty"`
	ExecutionTimeMs float64 `json:"executionTimeMs"`
	MemoryUsageMB   float64 `json:"memoryUsageMb,omitempty"`
}
