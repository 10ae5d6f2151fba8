package helper

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	qh "github.com/siherrmann/queuer/helper"
	slogseq "github.com/sokkalf/slog-seq"
)

// LogBuffer keeps the last lines logged, for the log pane of the web shell.
type LogBuffer struct {
	mu    sync.Mutex
	lines []string
	next  int
	full  bool
}

// NewLogBuffer creates a ring buffer holding at most size lines.
func NewLogBuffer(size int) *LogBuffer {
	if size < 1 {
		size = 1
	}
	return &LogBuffer{lines: make([]string, size)}
}

// Add appends a line, overwriting the oldest one when the buffer is full.
func (b *LogBuffer) Add(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines[b.next] = line
	b.next = (b.next + 1) % len(b.lines)
	if b.next == 0 {
		b.full = true
	}
}

// Lines returns the buffered lines, oldest first.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.full {
		lines := make([]string, b.next)
		copy(lines, b.lines[:b.next])
		return lines
	}
	lines := make([]string, 0, len(b.lines))
	lines = append(lines, b.lines[b.next:]...)
	lines = append(lines, b.lines[:b.next]...)
	return lines
}

// bufferHandler renders records as text lines into a LogBuffer.
type bufferHandler struct {
	buffer *LogBuffer
	level  slog.Leveler
	// ops replays WithAttrs and WithGroup calls in the order they were made.
	ops []func(slog.Handler) slog.Handler
}

func (h *bufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *bufferHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	var handler slog.Handler = slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	})
	for _, op := range h.ops {
		handler = op(handler)
	}
	if err := handler.Handle(context.Background(), r); err != nil {
		return err
	}
	h.buffer.Add(strings.TrimRight(buf.String(), "\n"))
	return nil
}

func (h *bufferHandler) with(op func(slog.Handler) slog.Handler) *bufferHandler {
	next := *h
	next.ops = append(append([]func(slog.Handler) slog.Handler{}, h.ops...), op)
	return &next
}

func (h *bufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	attrs = append([]slog.Attr{}, attrs...)
	return h.with(func(handler slog.Handler) slog.Handler {
		return handler.WithAttrs(attrs)
	})
}

func (h *bufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(handler slog.Handler) slog.Handler {
		return handler.WithGroup(name)
	})
}

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// LoggerConfig selects the log sinks of NewLogger.
type LoggerConfig struct {
	Level slog.Level
	// Writer receives the console output, os.Stdout if nil.
	Writer io.Writer
	// Buffer receives every record as a text line if set.
	Buffer *LogBuffer
	// SeqURL ships records to a Seq server if set.
	SeqURL string
}

// NewLogger creates the pretty console logger, fanned out to the log buffer and Seq
// when configured. The returned function flushes and closes the Seq sink.
func NewLogger(cfg LoggerConfig) (*slog.Logger, func()) {
	opts := qh.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: cfg.Level,
		},
	}
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}
	handlers := []slog.Handler{qh.NewPrettyHandler(writer, opts)}

	if cfg.Buffer != nil {
		handlers = append(handlers, &bufferHandler{buffer: cfg.Buffer, level: cfg.Level})
	}

	closeFn := func() {}
	if cfg.SeqURL != "" {
		_, seqHandler := slogseq.NewLogger(
			cfg.SeqURL,
			slogseq.WithBatchSize(10),
			slogseq.WithFlushInterval(time.Second),
			slogseq.WithHandlerOptions(&slog.HandlerOptions{
				Level: cfg.Level,
			}),
		)
		if seqHandler != nil {
			handlers = append(handlers, seqHandler)
			closeFn = func() {
				seqHandler.Close()
			}
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn
	}
	return slog.New(&multiHandler{handlers: handlers}), closeFn
}

// ParseLogLevel maps "debug", "info", "warn" and "error" to slog levels, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
