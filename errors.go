package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorHeadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// ErrBusy is returned when a message is submitted while another is in flight
var ErrBusy = errors.New("a message is already being processed")

// UserError represents an error that should be displayed to the user with helpful context
type UserError struct {
	Message    string
	Cause      error
	Suggestion string
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// DispatchError reports the provider call that aborted a turn
type DispatchError struct {
	Provider ProviderKind
	Cause    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("Error processing message: %s: %v", e.Provider.Label(), e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}

// FormatUserError formats an error for user display with colors and suggestions
func FormatUserError(err error) string {
	var sb strings.Builder

	var userErr *UserError
	if errors.As(err, &userErr) {
		sb.WriteString(errorHeadStyle.Render("Error:") + " " + userErr.Message + "\n")
		if userErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("       Cause: %v\n", userErr.Cause))
		}
		if userErr.Suggestion != "" {
			sb.WriteString("\n" + suggestionStyle.Render("Suggestion:") + " " + userErr.Suggestion + "\n")
		}
		return sb.String()
	}

	errStr := err.Error()
	sb.WriteString(errorHeadStyle.Render("Error:") + " " + errStr + "\n")

	if suggestion := getSuggestionForError(errStr); suggestion != "" {
		sb.WriteString("\n" + suggestionStyle.Render("Suggestion:") + " " + suggestion + "\n")
	}

	return sb.String()
}

// getSuggestionForError returns a helpful suggestion based on error content
func getSuggestionForError(errStr string) string {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "401") ||
		strings.Contains(errLower, "invalid x-api-key") ||
		strings.Contains(errLower, "incorrect api key") ||
		strings.Contains(errLower, "api key not valid") ||
		strings.Contains(errLower, "authentication") {
		return "Check the API key for this provider (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY)."
	}

	if strings.Contains(errLower, "429") ||
		strings.Contains(errLower, "quota") ||
		strings.Contains(errLower, "rate limit") ||
		strings.Contains(errLower, "throttl") {
		return "You're being rate-limited or are out of quota. Wait a moment and try again, or check your plan limits."
	}

	if strings.Contains(errLower, "model") && strings.Contains(errLower, "not found") {
		return "The configured model may not exist or may not be available to your account. Set MIXAI_CLAUDE_MODEL, MIXAI_GPT_MODEL or MIXAI_GEMINI_MODEL."
	}

	// AWS/Bedrock related errors
	if strings.Contains(errLower, "no valid credential") ||
		strings.Contains(errLower, "unable to sign request") ||
		strings.Contains(errLower, "security token") {
		return "Check your AWS credentials. Run 'aws configure' or set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables."
	}

	if strings.Contains(errLower, "access denied") ||
		strings.Contains(errLower, "not authorized") ||
		strings.Contains(errLower, "403") {
		return "Your credentials may not have permission to use this model. For Bedrock, check IAM policies for bedrock:InvokeModel."
	}

	if strings.Contains(errLower, "timeout") || strings.Contains(errLower, "deadline exceeded") {
		return "The request timed out. Try again or check your connection."
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "network") {
		return "Check your network connection. You may be offline or behind a firewall."
	}

	return ""
}

// Common error constructors

// ErrMissingAPIKey creates an error for a provider without credentials
func ErrMissingAPIKey(kind ProviderKind, envVar string) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("%s API key required", kind.Label()),
		Suggestion: fmt.Sprintf("export %s=your_key", envVar),
	}
}

// ErrProviderInit creates an error for an SDK client that failed to start
func ErrProviderInit(kind ProviderKind, cause error) *UserError {
	return &UserError{
		Message: fmt.Sprintf("Failed to initialize %s client", kind.Label()),
		Cause:   cause,
	}
}

// ErrAWSConfig creates an error for AWS configuration issues
func ErrAWSConfig(cause error) *UserError {
	return &UserError{
		Message: "Failed to initialize AWS configuration",
		Cause:   cause,
		Suggestion: `Check your AWS credentials:
       1. Run 'aws configure' to set up credentials
       2. Or set environment variables:
          export AWS_ACCESS_KEY_ID=your_key
          export AWS_SECRET_ACCESS_KEY=your_secret
          export AWS_REGION=us-east-1
       3. Or use the direct API: export MIXAI_CLAUDE_BACKEND=anthropic`,
	}
}
