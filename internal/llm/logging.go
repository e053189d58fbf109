package llm

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/cardiz/internal/store"
)

// EventSink stores LLM request events. store.EventRepo implements it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// loggingProvider records every request as an event and a log line.
type loggingProvider struct {
	Provider
	sink   EventSink
	logger *log.Logger
}

// WithLogging wraps p so each request is appended to sink, when non-nil,
// and logged to logger.
func WithLogging(p Provider, sink EventSink, logger *log.Logger) Provider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &loggingProvider{Provider: p, sink: sink, logger: logger}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.Provider.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.Name(),
		Model:     l.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", "provider", data.Provider, "purpose", data.Purpose, "err", err)
	} else {
		l.logger.Debug("llm request", "provider", data.Provider, "model", data.Model,
			"purpose", data.Purpose, "latency_ms", data.LatencyMs, "tokens", resp.Usage.Total())
	}

	if l.sink != nil {
		if logErr := l.sink.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.Warn("record llm request", "err", logErr)
		}
	}
	return resp, err
}
