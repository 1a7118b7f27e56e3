// Package logger provides a compact, colorized slog.Handler for console output.
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Options struct {
	Level   slog.Leveler
	NoColor bool
}

var DefaultOptions = Options{Level: slog.LevelInfo}

// Handler writes one line per record: time, level, message, then key=value attributes.
type Handler struct {
	opts   Options
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func NewHandler(w io.Writer, opts Options) *Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &Handler{opts: opts, mu: &sync.Mutex{}, w: w}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ts.Format("2006-01-02 15:04:05.000"))
	buf.WriteByte(' ')
	buf.WriteString(h.level(r.Level))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&buf, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *Handler) level(l slog.Level) string {
	label := fmt.Sprintf("%-5s", l.String())
	if h.opts.NoColor {
		return label
	}
	switch {
	case l >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case l >= slog.LevelWarn:
		return color.New(color.FgYellow).Sprint(label)
	case l >= slog.LevelInfo:
		return color.New(color.FgGreen).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}

func writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(buf, group, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(prefix + a.Key)
	buf.WriteByte('=')
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\"=") || val == "" {
		val = fmt.Sprintf("%q", val)
	}
	buf.WriteString(val)
}

// Err wraps an error as a slog attribute under the "error" key.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// ParseLevel maps a LOG_LEVEL value onto a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
