package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullExchange(i int) Exchange {
	return Exchange{
		Input:  fmt.Sprintf("q%d", i),
		Target: TargetAll,
		Responses: [numProviders]string{
			fmt.Sprintf("c%d", i),
			fmt.Sprintf("g%d", i),
			fmt.Sprintf("m%d", i),
		},
	}
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil, 3))
	assert.Equal(t, "", NewConversation(3).BuildContext())
}

func TestBuildContextWindow(t *testing.T) {
	conv := NewConversation(3)
	for i := 1; i <= 5; i++ {
		conv.Record(fullExchange(i))
	}

	ctx := conv.BuildContext()
	want := "User: q3\nClaude: c3\nGPT: g3\nGemini: m3\n" +
		"User: q4\nClaude: c4\nGPT: g4\nGemini: m4\n" +
		"User: q5\nClaude: c5\nGPT: g5\nGemini: m5\n"
	assert.Equal(t, want, ctx)
	assert.NotContains(t, ctx, "q1")
	assert.NotContains(t, ctx, "q2")
}

func TestBuildContextRoundTrip(t *testing.T) {
	for n := 3; n <= 6; n++ {
		history := make([]Exchange, n)
		for i := range history {
			history[i] = fullExchange(i)
		}

		// Each exchange with three responses produces four lines
		lines := strings.Split(strings.TrimSuffix(BuildContext(history, 3), "\n"), "\n")
		require.Len(t, lines, 12, "n=%d", n)

		var inputs []string
		for _, line := range lines {
			if after, ok := strings.CutPrefix(line, "User: "); ok {
				inputs = append(inputs, after)
			}
		}
		assert.Equal(t, []string{
			fmt.Sprintf("q%d", n-3),
			fmt.Sprintf("q%d", n-2),
			fmt.Sprintf("q%d", n-1),
		}, inputs)
	}
}

func TestBuildContextOmitsSentinel(t *testing.T) {
	history := []Exchange{{
		Input:     "only you",
		Target:    TargetGPT,
		Responses: [numProviders]string{NoResponse, "sure", NoResponse},
	}}

	ctx := BuildContext(history, 3)
	assert.Equal(t, "User: only you\nGPT: sure\n", ctx)
	assert.NotContains(t, ctx, NoResponse)
}

func TestNewConversationWindowDefault(t *testing.T) {
	assert.Equal(t, 3, NewConversation(0).Window())
	assert.Equal(t, 3, NewConversation(-2).Window())
	assert.Equal(t, 5, NewConversation(5).Window())
}

func TestConversationExchangesIsCopy(t *testing.T) {
	conv := NewConversation(3)
	conv.Record(fullExchange(1))

	got := conv.Exchanges()
	got[0].Input = "mutated"

	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, "q1", last.Input)

	conv.Reset()
	assert.Equal(t, 0, conv.Len())
	_, ok = conv.Last()
	assert.False(t, ok)
}

func TestExchangeResponded(t *testing.T) {
	ex := Exchange{Responses: [numProviders]string{"yes", NoResponse, ""}}
	assert.True(t, ex.Responded(ProviderClaude))
	assert.False(t, ex.Responded(ProviderGPT))
	assert.False(t, ex.Responded(ProviderGemini))
	assert.Equal(t, NoResponse, ex.Response(ProviderGPT))
}
