package main

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Ensure AnthropicAdapter implements Adapter
var _ Adapter = (*AnthropicAdapter)(nil)

// AnthropicAdapter speaks for Claude through the Anthropic Messages API
type AnthropicAdapter struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicAdapter creates the Claude adapter for the direct API
func NewAnthropicAdapter(cfg ProviderConfig, opts ...option.RequestOption) (*AnthropicAdapter, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey(ProviderClaude, "ANTHROPIC_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModels[ProviderClaude]
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	// A failed call fails the turn; the user retries by resending
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &AnthropicAdapter{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Kind returns ProviderClaude
func (a *AnthropicAdapter) Kind() ProviderKind { return ProviderClaude }

// Model returns the model ID
func (a *AnthropicAdapter) Model() string { return a.model }

// Invoke sends one prompt to Claude
func (a *AnthropicAdapter) Invoke(ctx context.Context, turn Turn) (*Reply, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt(ProviderClaude)}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(ProviderClaude, turn))),
		},
	})
	if err != nil {
		return nil, err
	}

	// Concatenate text blocks
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	if text == "" {
		return nil, fmt.Errorf("model returned no text content (stop_reason: %s)", msg.StopReason)
	}

	return &Reply{
		Text:         text,
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}, nil
}
