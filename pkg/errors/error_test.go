package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(TimeLimitExceeded)
	if GetCode(err) != TimeLimitExceeded {
		t.Fatalf("code = %d", GetCode(err))
	}
	if !strings.Contains(err.Error(), "Time limit exceeded") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(LanguageNotSupported, "language %q", "ruby")
	if !strings.Contains(err.Error(), `language "ruby"`) {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, WorkspaceError)
	if GetCode(err) != WorkspaceError {
		t.Fatalf("code = %d", GetCode(err))
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("cause must survive wrapping")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrapf(stderrors.New("exec: not found"), ToolchainMissing, "python3")
	if !Is(err, ToolchainMissing) {
		t.Fatal("Is must match the code")
	}
	if Is(err, SandboxUnavailable) {
		t.Fatal("Is must not match other codes")
	}
	if Is(nil, ToolchainMissing) {
		t.Fatal("nil never matches")
	}
}

func TestGetCodeOnForeignError(t *testing.T) {
	if GetCode(stderrors.New("plain")) != InternalServerError {
		t.Fatal("foreign errors map to the internal error code")
	}
	if GetCode(nil) != Success {
		t.Fatal("nil maps to success")
	}
}

func TestErrorCodeMessageFallback(t *testing.T) {
	if ErrorCode(99999).Message() != "Unknown error" {
		t.Fatal("unknown codes need a fallback message")
	}
}
