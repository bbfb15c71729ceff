package main

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Ensure GeminiAdapter implements Adapter
var _ Adapter = (*GeminiAdapter)(nil)

// GeminiAdapter speaks for Gemini through the Gemini API
type GeminiAdapter struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiAdapter creates the Gemini adapter
func NewGeminiAdapter(ctx context.Context, cfg ProviderConfig) (*GeminiAdapter, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey(ProviderGemini, "GEMINI_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModels[ProviderGemini]
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, ErrProviderInit(ProviderGemini, err)
	}

	return &GeminiAdapter{
		client:    client,
		model:     model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Kind returns ProviderGemini
func (g *GeminiAdapter) Kind() ProviderKind { return ProviderGemini }

// Model returns the model ID
func (g *GeminiAdapter) Model() string { return g.model }

// Invoke sends one prompt to Gemini
func (g *GeminiAdapter) Invoke(ctx context.Context, turn Turn) (*Reply, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(ProviderGemini), genai.RoleUser),
	}
	if g.maxTokens > 0 {
		genCfg.MaxOutputTokens = int32(g.maxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(ProviderGemini, turn)), genCfg)
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("model returned no candidates")
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("model returned empty content (finish_reason: %s)", resp.Candidates[0].FinishReason)
	}

	reply := &Reply{Text: text}
	if resp.UsageMetadata != nil {
		reply.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		reply.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return reply, nil
}
