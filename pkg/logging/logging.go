// Package logging routes the standard logger to stdout and, optionally, an
// append-only log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
)

var (
	mu      sync.Mutex
	logFile *os.File
	console io.Writer = os.Stdout
)

// Init tees log output to the console and to logPath when it is non-empty.
// Calling Init again replaces the previous file.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	writers := []io.Writer{console}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to create log directory").
					WithContext("path", dir)
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to open log file").
				WithContext("path", logPath)
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent logs a message under a component prefix, e.g. "[report] ...".
func LogEvent(component, format string, args ...any) {
	log.Println(buildEventMessage(component, fmt.Sprintf(format, args...)))
}

// LogFields logs a message followed by key=value pairs in the given order.
// Non-string values are JSON encoded.
func LogFields(component, msg string, kv ...any) {
	parts := []string{msg}
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%s", kv[i], formatValue(kv[i+1])))
	}
	log.Println(buildEventMessage(component, strings.Join(parts, " ")))
}

func buildEventMessage(component, msg string) string {
	c := strings.TrimSpace(component)
	if c == "" {
		return msg
	}
	return fmt.Sprintf("[%s] %s", strings.ToLower(c), msg)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(val) == "" {
			return `""`
		}
		return val
	case fmt.Stringer:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
