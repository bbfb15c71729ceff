package main

import (
	"os"
	"strconv"
	"strings"
)

// ProviderConfig holds what one adapter needs at construction time
type ProviderConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string
}

// Config holds runtime configuration
type Config struct {
	// Provider credentials and models
	Claude        ProviderConfig
	GPT           ProviderConfig
	Gemini        ProviderConfig
	ClaudeBackend ClaudeBackend
	Region        string // AWS region for the bedrock backend

	// Context assembly
	Window int // Number of previous exchanges each provider sees

	// Token budget
	MaxTotalTokens     int // Maximum total tokens per session (0 = unlimited)
	WarnTokenThreshold int // Warn when approaching limit (80% of max)

	// Display
	Theme    ThemePreset
	Markdown bool

	// Logging
	LogPath string // Empty discards logs

	// Settings is the file-backed layer the config was built from
	Settings *Settings
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return configFromSettings(DefaultSettings())
}

func configFromSettings(s *Settings) *Config {
	cfg := &Config{
		Claude: ProviderConfig{
			Model:     s.Providers.Claude.Model,
			MaxTokens: s.Providers.Claude.MaxTokens,
			BaseURL:   s.Providers.Claude.BaseURL,
		},
		GPT: ProviderConfig{
			Model:     s.Providers.GPT.Model,
			MaxTokens: s.Providers.GPT.MaxTokens,
			BaseURL:   s.Providers.GPT.BaseURL,
		},
		Gemini: ProviderConfig{
			Model:     s.Providers.Gemini.Model,
			MaxTokens: s.Providers.Gemini.MaxTokens,
			BaseURL:   s.Providers.Gemini.BaseURL,
		},
		ClaudeBackend:  ParseClaudeBackend(s.Providers.Claude.Backend),
		Region:         s.Providers.Claude.Region,
		Window:         s.Context.Window,
		MaxTotalTokens: s.Tokens.MaxPerSession,
		Theme:          LookupTheme(s.Theme.Name),
		Markdown:       s.Theme.Markdown,
		Settings:       s,
	}
	if cfg.Window <= 0 {
		cfg.Window = 3
	}
	if cfg.MaxTotalTokens > 0 {
		cfg.WarnTokenThreshold = cfg.MaxTotalTokens * 80 / 100
	}
	return cfg
}

// LoadConfig loads settings from disk and overlays environment variables.
// The returned config is always usable; a non-nil error reports a settings
// file that could not be read and was replaced by defaults.
func LoadConfig() (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		settings = DefaultSettings()
	}
	return applyEnv(settings), err
}

// applyEnv derives the runtime config from settings plus environment
// overrides. settings itself is left as loaded so that saving it back (as
// /theme does) never persists env values.
func applyEnv(settings *Settings) *Config {
	file := settings
	overlay := *settings
	settings = &overlay

	// Settings-level overrides first so derived config picks them up
	if val := os.Getenv("MIXAI_THEME"); val != "" {
		settings.Theme.Name = val
	}
	if val := os.Getenv("MIXAI_MARKDOWN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			settings.Theme.Markdown = b
		}
	}
	if val := os.Getenv("MIXAI_WINDOW"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			settings.Context.Window = n
		}
	}
	if val := os.Getenv("MIXAI_MAX_TOTAL_TOKENS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			settings.Tokens.MaxPerSession = n // 0 = unlimited
		}
	}
	if val := os.Getenv("MIXAI_CLAUDE_BACKEND"); val != "" {
		settings.Providers.Claude.Backend = val
	}
	if val := os.Getenv("AWS_REGION"); val != "" {
		settings.Providers.Claude.Region = val
	}
	if val := os.Getenv("MIXAI_CLAUDE_MODEL"); val != "" {
		settings.Providers.Claude.Model = val
	}
	if val := os.Getenv("MIXAI_GPT_MODEL"); val != "" {
		settings.Providers.GPT.Model = val
	}
	if val := os.Getenv("MIXAI_GEMINI_MODEL"); val != "" {
		settings.Providers.Gemini.Model = val
	}

	cfg := configFromSettings(settings)
	cfg.Settings = file

	// Credentials come only from the environment
	cfg.Claude.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.GPT.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Gemini.APIKey = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))

	// Bedrock has its own model IDs; swap the default if the user didn't pick one
	if cfg.ClaudeBackend == BackendBedrock && cfg.Claude.Model == DefaultModels[ProviderClaude] {
		cfg.Claude.Model = DefaultBedrockModel
	}

	cfg.LogPath = os.Getenv("MIXAI_LOG")

	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// TokenTracker tracks token usage across the session
type TokenTracker struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	MaxTokens    int
	WarnAt       int
	warned       bool
}

// NewTokenTracker creates a new token tracker with the given limits
func NewTokenTracker(maxTokens, warnAt int) *TokenTracker {
	return &TokenTracker{
		MaxTokens: maxTokens,
		WarnAt:    warnAt,
	}
}

// Add adds tokens to the tracker and returns (ok, warning message)
func (t *TokenTracker) Add(input, output int) (bool, string) {
	t.InputTokens += input
	t.OutputTokens += output
	t.TotalTokens = t.InputTokens + t.OutputTokens

	if t.MaxTokens == 0 {
		return true, ""
	}

	if t.TotalTokens > t.MaxTokens {
		return false, "Token budget exceeded. Use /clear to start a new conversation."
	}

	// Warn once
	if !t.warned && t.WarnAt > 0 && t.TotalTokens >= t.WarnAt {
		t.warned = true
		remaining := t.MaxTokens - t.TotalTokens
		return true, formatTokenWarning(remaining, t.MaxTokens)
	}

	return true, ""
}

// GetUsage returns current token usage
func (t *TokenTracker) GetUsage() (input, output, total int) {
	return t.InputTokens, t.OutputTokens, t.TotalTokens
}

// Reset resets the token tracker
func (t *TokenTracker) Reset() {
	t.InputTokens = 0
	t.OutputTokens = 0
	t.TotalTokens = 0
	t.warned = false
}

func formatTokenWarning(remaining, budget int) string {
	pct := (budget - remaining) * 100 / budget
	return "Warning: " + strconv.Itoa(pct) + "% of token budget used (" + strconv.Itoa(remaining) + " tokens remaining). Use /clear to reset."
}
