package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/shared"
	"github.com/andrescamacho/gridstock/internal/infrastructure/config"
)

var levelRank = map[string]int{
	common.LevelDebug: 0,
	common.LevelInfo:  1,
	common.LevelWarn:  2,
	common.LevelError: 3,
}

// Logger is the engine's CycleLogger. Lines below the minimum level are
// dropped; the rest are written as text or JSON through a standard log.Logger.
type Logger struct {
	mu        sync.Mutex
	out       *log.Logger
	closer    io.Closer
	minLevel  int
	json      bool
	component string
	clock     shared.Clock
}

var _ common.CycleLogger = (*Logger)(nil)

// New creates a logger from cfg. When cfg.Output is "file" the file is
// opened for append and closed by Close.
func New(cfg config.LoggingConfig, component string) (*Logger, error) {
	var w io.Writer
	var closer io.Closer
	switch cfg.Output {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging output is file but no file_path is set")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, fmt.Errorf("unsupported logging output: %s", cfg.Output)
	}

	l, err := NewWithWriter(w, cfg.Level, cfg.Format, component)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	l.closer = closer
	return l, nil
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level, format, component string) (*Logger, error) {
	rank, ok := levelRank[strings.ToUpper(level)]
	if level == "" {
		rank, ok = levelRank[common.LevelInfo], true
	}
	if !ok {
		return nil, fmt.Errorf("unknown log level: %s", level)
	}
	if format != "" && format != "text" && format != "json" {
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
	return &Logger{
		out:       log.New(w, "", 0),
		minLevel:  rank,
		json:      format == "json",
		component: component,
		clock:     shared.NewRealClock(),
	}, nil
}

// WithClock replaces the timestamp source.
func (l *Logger) WithClock(clock shared.Clock) *Logger {
	l.clock = clock
	return l
}

// Log implements common.CycleLogger.
func (l *Logger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank[common.LevelInfo]
	}
	if rank < l.minLevel {
		return
	}

	now := l.clock.Now().UTC()
	var line string
	if l.json {
		line = l.jsonLine(now, level, message, metadata)
	} else {
		line = l.textLine(now, level, message, metadata)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Println(line)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) textLine(now time.Time, level, message string, metadata map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s: %s", now.Format(time.RFC3339), l.component, level, message)
	for _, k := range sortedKeys(metadata) {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	return b.String()
}

func (l *Logger) jsonLine(now time.Time, level, message string, metadata map[string]interface{}) string {
	entry := map[string]interface{}{
		"time":      now.Format(time.RFC3339),
		"level":     level,
		"component": l.component,
		"message":   message,
	}
	if len(metadata) > 0 {
		entry["metadata"] = metadata
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return l.textLine(now, level, message, map[string]interface{}{"marshal_error": err.Error()})
	}
	return string(data)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
