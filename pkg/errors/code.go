package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 11000-11999: Request validation errors
// 12000-12999: Security / sanitizer errors
// 13000-13999: Compile & run errors
// 14000-14999: Sandbox infrastructure errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002
	NotFound            ErrorCode = 10003
	Timeout             ErrorCode = 10004

	// Validation errors (10300-10399)
	ValidationFailed   ErrorCode = 10300
	RequiredFieldEmpty ErrorCode = 10301

	// ========== Request Validation Errors (11000-11999) ==========

	LanguageNotSupported ErrorCode = 11000
	CodeTooLarge         ErrorCode = 11001
	EmptySource          ErrorCode = 11002

	// ========== Security Errors (12000-12999) ==========

	SecurityViolation ErrorCode = 12000
	BlockedImport     ErrorCode = 12001
	BlockedSyscall    ErrorCode = 12002

	// ========== Compile & Run Errors (13000-13999) ==========

	CompilationError    ErrorCode = 13000
	RuntimeError        ErrorCode = 13001
	TimeLimitExceeded   ErrorCode = 13002
	MemoryLimitExceeded ErrorCode = 13003
	OutputLimitExceeded ErrorCode = 13004

	// ========== Sandbox Infrastructure Errors (14000-14999) ==========

	SandboxUnavailable    ErrorCode = 14000
	ContainerRuntimeError ErrorCode = 14001
	ToolchainMissing      ErrorCode = 14002
	JudgeSystemError      ErrorCode = 14003
	WorkspaceError        ErrorCode = 14004
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	NotFound:            "Resource not found",
	Timeout:             "Request timeout",

	// Validation
	ValidationFailed:   "Validation failed",
	RequiredFieldEmpty: "Required field is empty",

	// Request validation
	LanguageNotSupported: "Programming language not supported",
	CodeTooLarge:         "Source code is too large",
	EmptySource:          "Source code is empty",

	// Security
	SecurityViolation: "Code contains a forbidden construct",
	BlockedImport:     "Import of a blocked module",
	BlockedSyscall:    "Use of a blocked system call",

	// Compile & run
	CompilationError:    "Compilation error",
	RuntimeError:        "Runtime error",
	TimeLimitExceeded:   "Time limit exceeded",
	MemoryLimitExceeded: "Memory limit exceeded",
	OutputLimitExceeded: "Output limit exceeded",

	// Sandbox infrastructure
	SandboxUnavailable:    "Sandbox is unavailable",
	ContainerRuntimeError: "Container runtime error",
	ToolchainMissing:      "Language toolchain is missing",
	JudgeSystemError:      "Judge system error",
	WorkspaceError:        "Workspace setup failed",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}
