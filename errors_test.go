package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserError(t *testing.T) {
	t.Run("error without cause", func(t *testing.T) {
		err := &UserError{Message: "test error"}
		if err.Error() != "test error" {
			t.Errorf("Error() = %q, want %q", err.Error(), "test error")
		}
	})

	t.Run("error with cause", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &UserError{Message: "test error", Cause: cause}
		expected := "test error: underlying error"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &UserError{Message: "test error", Cause: cause}
		if err.Unwrap() != cause {
			t.Error("Unwrap() did not return the cause")
		}
	})
}

func TestFormatUserError(t *testing.T) {
	t.Run("formats UserError with suggestion", func(t *testing.T) {
		err := &UserError{
			Message:    "test error",
			Suggestion: "try this fix",
		}
		output := FormatUserError(err)
		if !strings.Contains(output, "test error") {
			t.Error("output should contain error message")
		}
		if !strings.Contains(output, "try this fix") {
			t.Error("output should contain suggestion")
		}
	})

	t.Run("formats generic error with auto-suggestion", func(t *testing.T) {
		err := errors.New("no valid credential sources")
		output := FormatUserError(err)
		if !strings.Contains(output, "no valid credential") {
			t.Error("output should contain error message")
		}
		if !strings.Contains(output, "aws configure") {
			t.Error("output should contain AWS credential suggestion")
		}
	})
}

func TestGetSuggestionForError(t *testing.T) {
	tests := []struct {
		name        string
		errStr      string
		shouldMatch string
	}{
		{
			name:        "AWS credentials error",
			errStr:      "no valid credential sources",
			shouldMatch: "aws configure",
		},
		{
			name:        "anthropic bad key",
			errStr:      "401 Unauthorized: invalid x-api-key",
			shouldMatch: "ANTHROPIC_API_KEY",
		},
		{
			name:        "openai quota",
			errStr:      "error, status code: 429, message: You exceeded your current quota",
			shouldMatch: "quota",
		},
		{
			name:        "unknown model",
			errStr:      "model gpt-9 not found",
			shouldMatch: "MIXAI_GPT_MODEL",
		},
		{
			name:        "access denied",
			errStr:      "Access Denied",
			shouldMatch: "IAM",
		},
		{
			name:        "throttling",
			errStr:      "throttled by service",
			shouldMatch: "rate-limited",
		},
		{
			name:        "timeout",
			errStr:      "context deadline exceeded (timeout)",
			shouldMatch: "timed out",
		},
		{
			name:        "network error",
			errStr:      "connection refused",
			shouldMatch: "network",
		},
		{
			name:        "unknown error",
			errStr:      "some random error",
			shouldMatch: "", // no suggestion
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestion := getSuggestionForError(tt.errStr)
			if tt.shouldMatch == "" {
				if suggestion != "" {
					t.Errorf("expected no suggestion, got %q", suggestion)
				}
			} else {
				if !strings.Contains(strings.ToLower(suggestion), strings.ToLower(tt.shouldMatch)) {
					t.Errorf("suggestion %q should contain %q", suggestion, tt.shouldMatch)
				}
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Run("ErrMissingAPIKey", func(t *testing.T) {
		err := ErrMissingAPIKey(ProviderGPT, "OPENAI_API_KEY")
		if err.Message != "GPT API key required" {
			t.Errorf("Message = %q", err.Message)
		}
		if !strings.Contains(err.Suggestion, "export OPENAI_API_KEY=") {
			t.Errorf("Suggestion = %q, should name the env var", err.Suggestion)
		}
	})

	t.Run("ErrProviderInit", func(t *testing.T) {
		cause := errors.New("dial failed")
		err := ErrProviderInit(ProviderGemini, cause)
		if !errors.Is(err, cause) {
			t.Error("should wrap cause")
		}
		if !strings.Contains(err.Message, "Gemini") {
			t.Error("should name the provider")
		}
	})

	t.Run("ErrAWSConfig", func(t *testing.T) {
		cause := errors.New("config error")
		err := ErrAWSConfig(cause)
		if err.Cause != cause {
			t.Error("should preserve cause")
		}
		if !strings.Contains(err.Suggestion, "aws configure") {
			t.Error("should suggest aws configure")
		}
	})
}

func TestDispatchError(t *testing.T) {
	cause := errors.New("upstream 500")
	err := error(&DispatchError{Provider: ProviderClaude, Cause: cause})

	if err.Error() != "Error processing message: Claude: upstream 500" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("should unwrap to cause")
	}

	var dErr *DispatchError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &dErr) || dErr.Provider != ProviderClaude {
		t.Error("errors.As should find the DispatchError")
	}
}
