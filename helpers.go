package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// normalizeText prepares reply text for terminal display: Windows line
// endings become \n, tabs become four spaces, trailing blank lines go away
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	return strings.TrimRight(text, " \n")
}

// transcriptText renders exchanges as plain text for /save and /copy
func transcriptText(exchanges []Exchange) string {
	var b strings.Builder
	for i, ex := range exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		if ex.Target != TargetAll {
			b.WriteString(fmt.Sprintf("You (%s): %s\n", ex.Target, ex.Input))
		} else {
			b.WriteString("You: " + ex.Input + "\n")
		}
		for _, kind := range DispatchOrder {
			b.WriteString(fmt.Sprintf("%s: %s\n", kind.Label(), normalizeText(ex.Responses[kind])))
		}
	}
	return b.String()
}

// saveTranscript writes the session transcript to a file
func saveTranscript(filename string, exchanges []Exchange) error {
	header := fmt.Sprintf("# mixai transcript, saved %s\n\n", time.Now().Format(time.RFC3339))
	return os.WriteFile(filename, []byte(header+transcriptText(exchanges)), 0600)
}

// formatTokenCount formats token count with k suffix for thousands
func formatTokenCount(tokens int) string {
	if tokens >= 1000 {
		return fmt.Sprintf("%.1fk", float64(tokens)/1000)
	}
	return fmt.Sprintf("%d", tokens)
}
