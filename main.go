package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	plain := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Printf("mixai %s (built %s)\n", Version, BuildDate)
			fmt.Println("One conversation with Claude, GPT and Gemini")
			os.Exit(0)
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--plain", "-p":
			plain = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag: %s (try --help)\n", arg)
			os.Exit(2)
		}
	}

	if err := Run(plain); err != nil {
		fmt.Fprint(os.Stderr, FormatUserError(err))
		os.Exit(1)
	}
}

// Run wires configuration, providers and the chosen front end together
func Run(plain bool) error {
	ctx := context.Background()

	cfg, err := LoadConfig()
	if err != nil {
		// Broken settings file: carry on with defaults and env
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	logger, closer, err := NewLogger(cfg.LogPath)
	if err != nil {
		return &UserError{
			Message:    "Cannot open log file " + cfg.LogPath,
			Cause:      err,
			Suggestion: "Unset MIXAI_LOG or point it at a writable path",
		}
	}
	defer closer.Close()

	roster, err := NewRoster(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("session start",
		"claude", roster[ProviderClaude].Model(),
		"gpt", roster[ProviderGPT].Model(),
		"gemini", roster[ProviderGemini].Model(),
		"backend", cfg.ClaudeBackend,
		"window", cfg.Window)

	tokens := NewTokenTracker(cfg.MaxTotalTokens, cfg.WarnTokenThreshold)
	dispatcher := NewDispatcher(roster, tokens, logger)
	runner := NewRunner(dispatcher, NewConversation(cfg.Window))
	// Probe the background now; bubbletea owns stdin once it starts
	mdStyle := ""
	if cfg.Markdown {
		mdStyle = markdownStyle(lipgloss.HasDarkBackground())
	}

	// The TUI learns the terminal width from its first WindowSizeMsg
	renderer := NewRenderer(NewStyles(cfg.Theme), 0, cfg.Markdown, mdStyle, logger)

	if plain {
		return runREPL(ctx, runner, renderer, cfg.Settings, os.Stdin, os.Stdout, logger)
	}
	return runTUI(runner, renderer, cfg.Settings, logger)
}

func printHelp() {
	fmt.Println(`mixai - one conversation with Claude, GPT and Gemini

Usage:
  mixai [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information
  -p, --plain     Line mode without the full-screen input box

Addressing:
  hello everyone          All three assistants reply, in order
  @claude what do you     Only Claude replies (also @gpt, @gemini, @all)

Interactive Commands:
  /help           Show available commands
  /clear          Clear conversation history and token budget
  /save <file>    Save the session transcript
  /copy           Copy the last exchange to the clipboard
  /tokens         Show token usage
  /theme [name]   List themes or switch theme (saved to settings)
  /quit           Exit mixai

Environment Variables:
  ANTHROPIC_API_KEY        Claude API key (anthropic backend)
  OPENAI_API_KEY           GPT API key
  GEMINI_API_KEY           Gemini API key (GOOGLE_API_KEY also accepted)
  MIXAI_CLAUDE_BACKEND     anthropic (default) or bedrock
  AWS_REGION               AWS region for bedrock (default: us-east-1)
  MIXAI_CLAUDE_MODEL       Claude model ID
  MIXAI_GPT_MODEL          GPT model ID (default: gpt-4o)
  MIXAI_GEMINI_MODEL       Gemini model ID (default: gemini-2.0-flash)
  MIXAI_WINDOW             Previous exchanges each assistant sees (default: 3)
  MIXAI_MAX_TOTAL_TOKENS   Warn when a session nears this many tokens
  MIXAI_THEME              default, solarized, gruvbox, dracula, nord
  MIXAI_MARKDOWN           Render replies as markdown (true/false)
  MIXAI_LOG                Write a debug log to this file

Settings are read from ~/.mixai/settings.json; environment variables win.`)
}
