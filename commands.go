package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// CommandResult is what a slash command wants shown
type CommandResult struct {
	Lines []string
	Quit  bool
}

// IsCommand reports whether input is a slash command rather than a message
func IsCommand(input string) bool {
	return strings.HasPrefix(input, "/")
}

// HandleCommand executes a slash command against the session. settings is
// the file-backed layer /theme persists to; nil applies themes without saving.
func HandleCommand(input string, runner *Runner, renderer *Renderer, settings *Settings) CommandResult {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return CommandResult{}
	}
	styles := renderer.Styles()
	// Everything after the command word, spaces included
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))

	switch strings.ToLower(parts[0]) {
	case "/quit", "/exit", "/q":
		return CommandResult{Quit: true}

	case "/help", "/h":
		return CommandResult{Lines: strings.Split(commandHelp, "\n")}

	case "/clear", "/c":
		if err := runner.Reset(); err != nil {
			return CommandResult{Lines: []string{styles.Error.Render("Cannot clear: " + err.Error())}}
		}
		return CommandResult{Lines: []string{"Conversation and token budget cleared."}}

	case "/save", "/s":
		if arg == "" {
			return CommandResult{Lines: []string{styles.Error.Render("Usage:") + " /save <filename>"}}
		}
		if runner.Busy() {
			return CommandResult{Lines: []string{styles.Error.Render("Cannot save: " + ErrBusy.Error())}}
		}
		exchanges := runner.Conversation().Exchanges()
		if len(exchanges) == 0 {
			return CommandResult{Lines: []string{styles.Warning.Render("Nothing to save yet.")}}
		}
		if err := saveTranscript(arg, exchanges); err != nil {
			return CommandResult{Lines: []string{styles.Error.Render("Error saving: " + err.Error())}}
		}
		return CommandResult{Lines: []string{fmt.Sprintf("Saved %d exchanges to %s", len(exchanges), arg)}}

	case "/copy":
		if runner.Busy() {
			return CommandResult{Lines: []string{styles.Error.Render("Cannot copy: " + ErrBusy.Error())}}
		}
		last, ok := runner.Conversation().Last()
		if !ok {
			return CommandResult{Lines: []string{styles.Warning.Render("Nothing to copy yet.")}}
		}
		if err := writeClipboard(transcriptText([]Exchange{last})); err != nil {
			return CommandResult{Lines: []string{styles.Error.Render("Clipboard unavailable: " + err.Error())}}
		}
		return CommandResult{Lines: []string{"Last exchange copied to clipboard."}}

	case "/tokens", "/t":
		if runner.Busy() {
			return CommandResult{Lines: []string{styles.Error.Render("Cannot read usage: " + ErrBusy.Error())}}
		}
		in, out, total := runner.Dispatcher().Tokens().GetUsage()
		line := fmt.Sprintf("Tokens: %s in, %s out, %s total", formatTokenCount(in), formatTokenCount(out), formatTokenCount(total))
		if budget := runner.Dispatcher().Tokens().MaxTokens; budget > 0 {
			line += fmt.Sprintf(" (budget %s)", formatTokenCount(budget))
		}
		return CommandResult{Lines: []string{line}}

	case "/theme":
		return changeTheme(arg, renderer, settings)

	default:
		return CommandResult{Lines: []string{styles.Error.Render("Unknown command: " + parts[0]) + " (try /help)"}}
	}
}

// changeTheme lists themes, or switches to one and saves it to settings
func changeTheme(name string, renderer *Renderer, settings *Settings) CommandResult {
	styles := renderer.Styles()
	available := "Available themes: " + strings.Join(AvailableThemes(), ", ")

	if name == "" {
		current := "default"
		if settings != nil && settings.Theme.Name != "" {
			current = settings.Theme.Name
		}
		return CommandResult{Lines: []string{"Current theme: " + current, available}}
	}

	name = strings.ToLower(name)
	if _, ok := ThemePresets[name]; !ok {
		return CommandResult{Lines: []string{styles.Error.Render("Unknown theme: " + name), available}}
	}

	renderer.SetTheme(LookupTheme(name))
	if settings == nil {
		return CommandResult{Lines: []string{"Theme changed to " + name}}
	}

	settings.Theme.Name = name
	if err := SaveSettings(settings); err != nil {
		return CommandResult{Lines: []string{styles.Warning.Render("Theme changed to " + name + ", but could not save settings: " + err.Error())}}
	}
	return CommandResult{Lines: []string{"Theme changed to " + name + " (saved)"}}
}

const commandHelp = `Commands:
  /help           Show this help
  /clear          Clear conversation history and token budget
  /save <file>    Save this session's transcript to a text file
  /copy           Copy the last exchange to the clipboard
  /tokens         Show token usage
  /theme [name]   List themes or switch theme (saved to settings)
  /quit           Exit mixai

Address one assistant with a prefix: @claude, @gpt, @gemini (default @all)`
