package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidLogic, "parse %q failed", "a and")

	if got, want := err.Error(), `INVALID_LOGIC: parse "a and" failed`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInvalidDeck, cause, "decode %s", "deck.json")

	if got, want := err.Error(), "INVALID_DECK: decode deck.json: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "missing")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is() = true for a plain error")
	}
	if Is(nil, ErrCodeNotFound) {
		t.Error("Is(nil) = true")
	}

	// Codes survive another layer of fmt wrapping.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeNotFound) {
		t.Error("Is() = false through a fmt.Errorf wrapper")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFormat, "x")); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidFormat)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInternal, stderrors.New("io timeout"), "render failed")
	if got := UserMessage(err); got != "render failed" {
		t.Errorf("UserMessage = %q, want %q", got, "render failed")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
}
