package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPoint, "invalid point format: %q", "1,2,3")

	if err.Code != ErrCodeInvalidPoint {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidPoint)
	}
	if !strings.Contains(err.Error(), "INVALID_POINT") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
	if !strings.Contains(err.Error(), `"1,2,3"`) {
		t.Errorf("Error() = %q, want formatted message", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := Wrap(ErrCodeInvalidImage, cause, "could not read %s", "plan.png")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNoSkeleton, "skeleton is empty")

	if !Is(err, ErrCodeNoSkeleton) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true, want false for different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("Is() = true, want false for non-structured error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidConfig, "bad radius")); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidConfig)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidPoint, "coordinates must be integers")
	if got := UserMessage(err); got != "coordinates must be integers" {
		t.Errorf("UserMessage() = %q, want message without code", got)
	}

	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want error string", got)
	}
}

func TestWrappedCodeMatching(t *testing.T) {
	inner := New(ErrCodeInvalidImage, "truncated PNG")
	outer := Wrap(ErrCodeInternal, inner, "pipeline init")

	// The outermost code wins for Is; the chain is still reachable via As.
	if !Is(outer, ErrCodeInternal) {
		t.Error("Is() should match the outermost code")
	}

	var e *Error
	if !stderrors.As(outer, &e) {
		t.Fatal("errors.As should find *Error")
	}
}
