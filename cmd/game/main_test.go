package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := newLogger(io.Discard, tt.in).GetLevel(); got != tt.want {
			t.Errorf("newLogger(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
}
