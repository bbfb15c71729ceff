package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Ensure BedrockAdapter implements Adapter
var _ Adapter = (*BedrockAdapter)(nil)

// BedrockInvoker is the slice of the Bedrock runtime client we use
type BedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockAdapter speaks for Claude through AWS Bedrock
type BedrockAdapter struct {
	client    BedrockInvoker
	model     string
	maxTokens int
}

// bedrockMessage represents a conversation message in the Claude body format
type bedrockMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// bedrockRequest represents the request body for Claude models
type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	Messages         []bedrockMessage `json:"messages"`
	System           string           `json:"system,omitempty"`
}

// bedrockResponse represents the response from Claude models
type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrockAdapter creates the Claude adapter using AWS credentials from the environment
func NewBedrockAdapter(ctx context.Context, cfg ProviderConfig, region string) (*BedrockAdapter, error) {
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region), config.WithRetryMaxAttempts(1))
	if err != nil {
		return nil, ErrAWSConfig(err)
	}

	return NewBedrockAdapterWithClient(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

// NewBedrockAdapterWithClient wraps an existing invoker
func NewBedrockAdapterWithClient(client BedrockInvoker, cfg ProviderConfig) *BedrockAdapter {
	model := cfg.Model
	if model == "" {
		model = DefaultBedrockModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &BedrockAdapter{client: client, model: model, maxTokens: maxTokens}
}

// Kind returns ProviderClaude
func (b *BedrockAdapter) Kind() ProviderKind { return ProviderClaude }

// Model returns the Bedrock model ID
func (b *BedrockAdapter) Model() string { return b.model }

// Invoke sends one prompt to Claude on Bedrock
func (b *BedrockAdapter) Invoke(ctx context.Context, turn Turn) (*Reply, error) {
	request := bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        b.maxTokens,
		Messages:         []bedrockMessage{{Role: "user", Content: BuildPrompt(ProviderClaude, turn)}},
		System:           SystemPrompt(ProviderClaude),
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.model),
		Body:        requestBody,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock invoke: %w", err)
	}

	var response bedrockResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var text string
	for _, content := range response.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}

	if text == "" {
		return nil, fmt.Errorf("model returned no text content (stop_reason: %s)", response.StopReason)
	}

	return &Reply{
		Text:         text,
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}, nil
}
