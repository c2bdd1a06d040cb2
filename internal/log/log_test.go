// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in        string
		wantLevel log.Level
		wantTrace bool
	}{
		{"", log.ErrorLevel, false},
		{"TRACE", log.DebugLevel, true},
		{"debug", log.DebugLevel, false},
		{" info ", log.InfoLevel, false},
		{"warn", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"fatal", log.FatalLevel, false},
		{"chatty", log.ErrorLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, trace := ParseLevel(tt.in)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantTrace, trace)
		})
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{
		Writer: &buf,
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}

	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	logger.Debug("plain")
	logger.Debug(tracePrefix + "fine grained")
	logger.WithError(errors.New("boom")).WithField("path", "a/b").Warn("careful")

	assert.Equal(t,
		"2026-01-02 03:04:05 D plain\n"+
			"2026-01-02 03:04:05 T fine grained\n"+
			"2026-01-02 03:04:05 W careful error=boom path=a/b\n",
		buf.String())
}

func TestInitLogger(t *testing.T) {
	t.Setenv(EnvLevel, "trace")
	InitLogger()
	t.Cleanup(func() {
		traceEnabled = false
		log.SetLevel(log.ErrorLevel)
	})

	assert.True(t, traceEnabled)
	h, ok := log.Log.(*log.Logger)
	if assert.True(t, ok) {
		assert.Equal(t, log.DebugLevel, h.Level)
		assert.IsType(t, &CustomHandler{}, h.Handler)
	}
}
