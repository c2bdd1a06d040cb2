// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "TREECMP_LOG"

const tracePrefix = "TRACE: "

var traceEnabled bool

// InitLogger sets up Apex with a custom handler writing to stderr and a log
// level from the TREECMP_LOG env variable.
func InitLogger() {
	level, trace := ParseLevel(os.Getenv(EnvLevel))
	traceEnabled = trace
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevel(level)
}

// ParseLevel maps a level name to an Apex level. Trace is Apex's debug level
// with Tracef output switched on. Unknown names mean error.
func ParseLevel(name string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.DebugLevel, true
	case "debug":
		return log.DebugLevel, false
	case "info":
		return log.InfoLevel, false
	case "warn":
		return log.WarnLevel, false
	case "fatal":
		return log.FatalLevel, false
	}
	return log.ErrorLevel, false
}

// CustomHandler writes one "timestamp L message key=value..." line per
// entry.
type CustomHandler struct {
	Writer io.Writer
	// Now is used for timestamps when set.
	Now func() time.Time

	mu sync.Mutex
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	timestamp := now().Format("2006-01-02 15:04:05")

	message := e.Message
	level := "?"
	if strings.HasPrefix(message, tracePrefix) {
		level = "T"
		message = message[len(tracePrefix):]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s", timestamp, level, message)
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, e.Fields[k])
	}
	sb.WriteByte('\n')

	w := h.Writer
	if w == nil {
		w = os.Stderr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(w, sb.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
