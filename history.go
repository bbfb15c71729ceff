package main

import "strings"

// NoResponse is stored for providers that were not addressed in a turn
const NoResponse = "[No response required.]"

// Exchange is one recorded turn. It is stored by value and never modified
// after it has been recorded.
type Exchange struct {
	ID        string
	Input     string
	Target    Selector
	Responses [numProviders]string
}

// Response returns the provider's text or the NoResponse sentinel
func (e Exchange) Response(kind ProviderKind) string {
	return e.Responses[kind]
}

// Responded reports whether the provider produced real content this turn
func (e Exchange) Responded(kind ProviderKind) bool {
	r := e.Responses[kind]
	return r != "" && r != NoResponse
}

// Conversation is the append-only history of exchanges for one session.
// It is not safe for concurrent use; the Runner serializes access.
type Conversation struct {
	exchanges []Exchange
	window    int
}

// NewConversation creates an empty conversation whose context window is the
// given number of trailing exchanges (values < 1 mean 3)
func NewConversation(window int) *Conversation {
	if window < 1 {
		window = 3
	}
	return &Conversation{window: window}
}

// Window returns the configured context window size
func (c *Conversation) Window() int {
	return c.window
}

// Record appends an exchange
func (c *Conversation) Record(ex Exchange) {
	c.exchanges = append(c.exchanges, ex)
}

// Len returns the number of recorded exchanges
func (c *Conversation) Len() int {
	return len(c.exchanges)
}

// Exchanges returns a copy of the history in chronological order
func (c *Conversation) Exchanges() []Exchange {
	out := make([]Exchange, len(c.exchanges))
	copy(out, c.exchanges)
	return out
}

// Last returns the most recent exchange, if any
func (c *Conversation) Last() (Exchange, bool) {
	if len(c.exchanges) == 0 {
		return Exchange{}, false
	}
	return c.exchanges[len(c.exchanges)-1], true
}

// Reset drops all history
func (c *Conversation) Reset() {
	c.exchanges = nil
}

// BuildContext renders the configured trailing window
func (c *Conversation) BuildContext() string {
	return BuildContext(c.exchanges, c.window)
}

// BuildContext renders the last window exchanges as User/Provider lines in
// chronological order. Providers that recorded no response are omitted.
func BuildContext(history []Exchange, window int) string {
	if window <= 0 || len(history) == 0 {
		return ""
	}

	start := len(history) - window
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, ex := range history[start:] {
		b.WriteString("User: ")
		b.WriteString(ex.Input)
		b.WriteString("\n")
		for _, kind := range DispatchOrder {
			if !ex.Responded(kind) {
				continue
			}
			b.WriteString(kind.Label())
			b.WriteString(": ")
			b.WriteString(ex.Responses[kind])
			b.WriteString("\n")
		}
	}
	return b.String()
}
