package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var errNotConfigured = errors.New("provider not configured")

// Dispatcher fans a user message out to the roster in fixed order
type Dispatcher struct {
	roster Roster
	tokens *TokenTracker
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given adapters.
// A nil tracker disables token accounting; a nil logger discards logs.
func NewDispatcher(roster Roster, tokens *TokenTracker, logger *slog.Logger) *Dispatcher {
	if tokens == nil {
		tokens = NewTokenTracker(0, 0)
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Dispatcher{roster: roster, tokens: tokens, logger: logger}
}

// Tokens returns the session token tracker
func (d *Dispatcher) Tokens() *TokenTracker {
	return d.tokens
}

// Roster returns the adapters in use
func (d *Dispatcher) Roster() Roster {
	return d.roster
}

// Dispatch runs one turn. On success the exchange is recorded in conv and
// returned with any token budget warning the turn triggered. If any
// addressed provider fails, conv is left untouched and a *DispatchError
// wrapping the cause is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, conv *Conversation, raw string) (Exchange, string, error) {
	target, text := ParseTarget(raw)

	ex := Exchange{
		ID:     uuid.NewString(),
		Input:  text,
		Target: target,
	}
	log := d.logger.With("turn", ex.ID, "target", target.String())
	log.Info("dispatch start", "history", conv.Len())

	var prior []PriorReply
	var inTokens, outTokens int

	for _, kind := range DispatchOrder {
		if !target.Includes(kind) {
			ex.Responses[kind] = NoResponse
			log.Debug("dispatch skip", "provider", kind.Key())
			continue
		}

		adapter := d.roster[kind]
		if adapter == nil {
			return Exchange{}, "", &DispatchError{Provider: kind, Cause: errNotConfigured}
		}

		// Rebuilt per call; history doesn't change mid-turn
		turn := Turn{
			Context: conv.BuildContext(),
			Message: text,
			Prior:   append([]PriorReply(nil), prior...),
		}

		started := time.Now()
		reply, err := adapter.Invoke(ctx, turn)
		if err != nil {
			log.Error("dispatch failed", "provider", kind.Key(), "err", err, "latency", time.Since(started))
			return Exchange{}, "", &DispatchError{Provider: kind, Cause: err}
		}
		log.Info("provider replied", "provider", kind.Key(),
			"in", reply.InputTokens, "out", reply.OutputTokens, "latency", time.Since(started))

		ex.Responses[kind] = reply.Text
		prior = append(prior, PriorReply{Speaker: kind, Text: reply.Text})
		inTokens += reply.InputTokens
		outTokens += reply.OutputTokens
	}

	conv.Record(ex)

	_, warning := d.tokens.Add(inTokens, outTokens)
	log.Info("dispatch done", "history", conv.Len(), "in", inTokens, "out", outTokens)

	return ex, warning, nil
}
