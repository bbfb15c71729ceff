package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	// PasteCollapseThreshold is the minimum number of lines before collapsing pasted text
	PasteCollapseThreshold = 5
	// PasteLineTimeout is max time between lines to consider it part of the same paste
	PasteLineTimeout = 150 * time.Millisecond
)

// errInputClosed is returned once stdin reaches EOF
var errInputClosed = errors.New("input closed")

// InputReader reads lines, joining a rapid burst of lines (a paste) into one
// message
type InputReader struct {
	scanner  *bufio.Scanner
	styles   *Styles
	pasteNum int
	lineChan chan string
	errChan  chan error
}

// NewInputReader creates a new input reader over r
func NewInputReader(r io.Reader, styles *Styles) *InputReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	ir := &InputReader{
		scanner:  scanner,
		styles:   styles,
		lineChan: make(chan string),
		errChan:  make(chan error, 1),
	}

	go ir.backgroundReader()

	return ir
}

// backgroundReader continuously reads lines and sends them to the channel
func (ir *InputReader) backgroundReader() {
	for ir.scanner.Scan() {
		ir.lineChan <- ir.scanner.Text()
	}
	if err := ir.scanner.Err(); err != nil {
		ir.errChan <- err
	}
	close(ir.lineChan)
}

// ReadInput blocks for the next message. It returns the full text and a
// display string, collapsed when the text was a long paste.
func (ir *InputReader) ReadInput() (fullText string, displayText string, err error) {
	var lines []string

	line, ok := <-ir.lineChan
	if !ok {
		select {
		case err := <-ir.errChan:
			return "", "", err
		default:
			return "", "", errInputClosed
		}
	}
	lines = append(lines, line)

	// Lines arriving in rapid succession belong to the same paste
collecting:
	for {
		select {
		case line, ok := <-ir.lineChan:
			if !ok {
				break collecting
			}
			lines = append(lines, line)
		case <-time.After(PasteLineTimeout):
			break collecting
		}
	}

	fullText = strings.Join(lines, "\n")

	switch {
	case len(lines) > PasteCollapseThreshold:
		ir.pasteNum++
		displayText = ir.formatCollapsedPaste(lines)
	case len(lines) > 1:
		displayText = fmt.Sprintf("%s %s", lines[0], ir.styles.Dim.Render(fmt.Sprintf("+%d lines", len(lines)-1)))
	default:
		displayText = fullText
	}

	return fullText, displayText, nil
}

// formatCollapsedPaste formats a collapsed paste display
func (ir *InputReader) formatCollapsedPaste(lines []string) string {
	// Cut by display width so multi-byte and wide characters stay whole
	firstLine := runewidth.Truncate(lines[0], 50, "...")

	return fmt.Sprintf("%s %s %s",
		ir.styles.Accent.Render(fmt.Sprintf("[Pasted text #%d]", ir.pasteNum)),
		firstLine,
		ir.styles.Dim.Render(fmt.Sprintf("+%d lines", len(lines)-1)),
	)
}
