package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "rule not found")
		if err.Error() != "[NOT_FOUND] rule not found" {
			t.Errorf("expected [NOT_FOUND] rule not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeParseFailed, "syntax tree unavailable")
		expected := "[PARSE_FAILED] syntax tree unavailable: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidationError, "invalid input")
		if !IsCode(err, CodeValidationError) {
			t.Error("expected IsCode to return true for CodeValidationError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		if !IsCode(err, CodeInternal) {
			t.Error("expected IsCode to return true for wrapped CodeInternal")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := AddContext(New(CodeParseFailed, "bad file"), CtxPath, "Widget.cs")
		if !IsCode(err, CodeParseFailed) {
			t.Error("expected code to survive AddContext")
		}
		if !strings.Contains(err.Error(), "Widget.cs") {
			t.Errorf("expected context in message, got %s", err.Error())
		}
	})

	t.Run("AddContextPlainError", func(t *testing.T) {
		err := AddContext(errors.New("plain"), CtxRule, "SA1400")
		if !IsCode(err, CodeInternal) {
			t.Error("expected plain error to be wrapped as internal")
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		original := errors.New("io failure")
		err := Wrap(original, CodeInternal, "read")
		if !errors.Is(err, original) {
			t.Error("expected errors.Is to reach the wrapped error")
		}
	})
}
