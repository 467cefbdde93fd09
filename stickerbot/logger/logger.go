package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand  LogType = "CMD"
	TypeDB       LogType = "DB"
	TypeSystem   LogType = "SYS"
	TypeError    LogType = "ERR"
	TypeHTTP     LogType = "HTTP"
	TypeWhatsApp LogType = "WA"
)

type CustomHandler struct {
	name      string
	opts      *slog.HandlerOptions
	out       io.Writer
	mu        *sync.Mutex
	startTime time.Time
	attrs     []slog.Attr
	groups    []string
}

// NewHandler builds the console handler. The name is printed as a prefix on
// every line so several processes can share a terminal.
func NewHandler(name string, level slog.Leveler) *CustomHandler {
	return NewHandlerWithWriter(os.Stdout, name, level)
}

func NewHandlerWithWriter(out io.Writer, name string, level slog.Leveler) *CustomHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &CustomHandler{
		name:      name,
		opts:      &slog.HandlerOptions{Level: level},
		out:       out,
		mu:        &sync.Mutex{},
		startTime: time.Now(),
		attrs:     make([]slog.Attr, 0),
		groups:    make([]string, 0),
	}
}

// WithSource makes every line end with the caller's file:line.
func (h *CustomHandler) WithSource(on bool) *CustomHandler {
	opts := *h.opts
	opts.AddSource = on
	c := *h
	c.opts = &opts
	return &c
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CustomHandler{
		name:      h.name,
		opts:      h.opts,
		out:       h.out,
		mu:        h.mu,
		startTime: h.startTime,
		attrs:     merged,
		groups:    h.groups,
	}
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	return &CustomHandler{
		name:      h.name,
		opts:      h.opts,
		out:       h.out,
		mu:        h.mu,
		startTime: h.startTime,
		attrs:     h.attrs,
		groups:    append(groups, name),
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	timestamp := r.Time.Format("15:04:05")
	if r.Time.IsZero() {
		timestamp = time.Now().Format("15:04:05")
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor = colorRed
		levelText = "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor = colorYellow
		levelText = "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor = colorGreen
		levelText = "INFO"
	default:
		levelColor = colorPurple
		levelText = "DEBUG"
	}

	logType := getLogType(&r)
	status := getAttr(&r, "status")
	userName := getAttr(&r, "user_name")
	cmdName := getAttr(&r, "name")

	message := r.Message
	if r.Level >= slog.LevelError {
		if location := getErrorLocation(&r); location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := getAttr(&r, "error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}

	if cmdName != "" && userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, cmdName, userName)
	}

	if status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}

	var attrs strings.Builder
	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}
	for _, attr := range h.attrs {
		if !isInternalAttr(attr.Key) {
			fmt.Fprintf(&attrs, " %s%s=%v", prefix, attr.Key, attr.Value)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if !isInternalAttr(a.Key) && a.Key != "error" {
			fmt.Fprintf(&attrs, " %s%s=%v", prefix, a.Key, a.Value)
		}
		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			fmt.Fprintf(&attrs, " source=%s:%d", filepath.Base(frame.File), frame.Line)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		h.name,
		timestamp,
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		attrs.String(),
		colorReset,
	)
	return err
}

func shouldSkipLog(r *slog.Record) bool {
	skippedMessages := []string{
		"connection pool stat",
		"health check ok",
	}

	for _, skip := range skippedMessages {
		if strings.Contains(strings.ToLower(r.Message), skip) {
			return true
		}
	}

	return false
}

func getLogType(r *slog.Record) LogType {
	var logType LogType = TypeSystem
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "type" {
			switch a.Value.String() {
			case "cmd":
				logType = TypeCommand
			case "db":
				logType = TypeDB
			case "error":
				logType = TypeError
			case "http":
				logType = TypeHTTP
			case "wa":
				logType = TypeWhatsApp
			}
			return false
		}
		return true
	})
	return logType
}

func getSourceLocation() (string, int) {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return "", 0
	}
	return filepath.Base(file), line
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status", "error_location":
		return true
	}
	return false
}

func getAttr(r *slog.Record, key string) string {
	var value string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})
	return value
}

func getErrorLocation(r *slog.Record) string {
	location := getAttr(r, "error_location")
	if location == "" {
		if file, line := getSourceLocation(); file != "" {
			location = fmt.Sprintf("%s:%d", file, line)
		}
	}
	return location
}
