package helper

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
)

// PrettyHandlerOptions holds the options of a PrettyHandler
type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PrettyHandler is a slog handler printing colored, human readable records
type PrettyHandler struct {
	slog.Handler
	l      *log.Logger
	attrs  []groupedAttr
	groups []string
}

// groupedAttr is an attribute added with WithAttrs inside the groups open at that time
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// WithAttrs returns a PrettyHandler printing attrs with every record
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := h.clone()
	c.Handler = h.Handler.WithAttrs(attrs)
	for _, a := range attrs {
		c.attrs = append(c.attrs, groupedAttr{groups: h.groups, attr: a})
	}
	return c
}

// WithGroup returns a PrettyHandler nesting later attributes under name
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.Handler = h.Handler.WithGroup(name)
	c.groups = append(slices.Clone(h.groups), name)
	return c
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		Handler: h.Handler,
		l:       h.l,
		attrs:   slices.Clone(h.attrs),
		groups:  h.groups,
	}
}

// Handle prints a record as "[time] LEVEL: message {attrs}"
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := make(map[string]interface{}, r.NumAttrs()+len(h.attrs))
	for _, ga := range h.attrs {
		addField(fields, ga.groups, ga.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		addField(fields, h.groups, a)
		return true
	})

	b, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return err
	}

	timeStr := r.Time.Format("[15:04:05.000]")
	msg := color.CyanString(r.Message)

	h.l.Println(timeStr, level, msg, color.WhiteString(string(b)))

	return nil
}

// addField sets a in fields, nested under groups. Group values become nested maps.
func addField(fields map[string]interface{}, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	for _, group := range groups {
		next, ok := fields[group].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			fields[group] = next
		}
		fields = next
	}

	if a.Value.Kind() == slog.KindGroup {
		var inner []string
		if a.Key != "" {
			inner = []string{a.Key}
		}
		for _, member := range a.Value.Group() {
			addField(fields, inner, member)
		}
		return
	}
	fields[a.Key] = a.Value.Any()
}

// NewPrettyHandler creates a new PrettyHandler writing to out
func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{
		Handler: slog.NewJSONHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}
}

// NewLogger creates a stdout logger with a PrettyHandler.
// Unknown levels fall back to info.
func NewLogger(level string) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: ParseLevel(level),
		},
	}
	return slog.New(NewPrettyHandler(os.Stdout, opts))
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
