package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "hello", "hello"},
		{"windows newlines", "a\r\nb\r\n", "a\nb"},
		{"tabs", "\tindented", "    indented"},
		{"trailing blank lines", "text\n\n\n  ", "text"},
		{"leading space kept", "  code", "  code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.input); got != tt.expected {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTranscriptText(t *testing.T) {
	exchanges := []Exchange{
		{
			Input:     "hi all",
			Target:    TargetAll,
			Responses: [numProviders]string{"c", "g", "m"},
		},
		{
			Input:     "just you",
			Target:    TargetGemini,
			Responses: [numProviders]string{NoResponse, NoResponse, "only me"},
		},
	}

	got := transcriptText(exchanges)
	want := "You: hi all\nClaude: c\nGPT: g\nGemini: m\n" +
		"\n" +
		"You (@gemini): just you\nClaude: " + NoResponse + "\nGPT: " + NoResponse + "\nGemini: only me\n"
	if got != want {
		t.Errorf("transcriptText() =\n%s\nwant\n%s", got, want)
	}
}

func TestSaveTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")
	exchanges := []Exchange{{Input: "q", Responses: [numProviders]string{"a", "b", "c"}}}

	if err := saveTranscript(path, exchanges); err != nil {
		t.Fatalf("saveTranscript() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# mixai transcript") {
		t.Errorf("missing header: %q", content)
	}
	if !strings.HasSuffix(content, transcriptText(exchanges)) {
		t.Errorf("transcript body missing: %q", content)
	}
}

func TestFormatTokenCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0k"},
		{15500, "15.5k"},
	}
	for _, tt := range tests {
		if got := formatTokenCount(tt.in); got != tt.want {
			t.Errorf("formatTokenCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
