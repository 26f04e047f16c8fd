package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level)
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.level, err)
			}
			if !l.Core().Enabled(tt.want) {
				t.Errorf("New(%q) does not log at %s", tt.level, tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Errorf("New(%q) logs below %s", tt.level, tt.want)
			}
		})
	}
}

func TestNamedUsesGlobalLogger(t *testing.T) {
	if Named("seed") == nil {
		t.Fatal("Named() returned nil")
	}
}
