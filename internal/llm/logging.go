package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mathbuddy/internal/store"
)

// LoggingProvider records every call as an LLM request event so prompts and
// raw replies can be inspected with `mathbuddy llm view`. Failures are also
// logged at warn level since each one ends in a fallback answer.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *slog.Logger
}

// WithLogging wraps p. name is the configured provider ("openai", "mock", ...).
func WithLogging(p Provider, name string, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: name, events: events, logger: slog.Default()}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	attrs := []any{"purpose", ev.Purpose, "provider", ev.Provider, "model", ev.Model, "latency_ms", ev.LatencyMs}
	if err != nil {
		ev.ErrorMessage = err.Error()
		l.logger.Warn("llm call failed", append(attrs, "kind", Kind(err), "error", err)...)
	} else {
		l.logger.Debug("llm call", append(attrs, "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)...)
	}

	// The caller may already have given up; the event is still worth keeping.
	if recErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
		l.logger.Warn("recording llm event", "purpose", ev.Purpose, "error", recErr)
	}
	return resp, err
}

// transcript renders a request the way it reads in `mathbuddy llm view`.
func transcript(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		b.WriteString("[" + label + "]\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			block("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
