package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// fanout forwards log records to several handlers
type fanout struct {
	handlers []slog.Handler
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &fanout{handlers: handlers}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &fanout{handlers: handlers}
}

// ParseLevel accepts debug, info, warn or error and falls back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Setup builds the service logger and returns a function that flushes it.
// Records go to w and, when seqURL is not empty, to a Seq server as well.
func Setup(w io.Writer, level, seqURL string) (*slog.Logger, func()) {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	console := slog.NewTextHandler(w, opts)

	if seqURL == "" {
		return slog.New(console), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		seqURL,
		slogseq.WithBatchSize(50),
		slogseq.WithFlushInterval(2*time.Second),
		slogseq.WithHandlerOptions(opts),
	)
	if seqHandler == nil {
		return slog.New(console), func() {}
	}

	logger := slog.New(&fanout{handlers: []slog.Handler{console, seqHandler}})
	return logger, func() { seqHandler.Close() }
}
