package interfaces

import (
	"bytes"
	"testing"
)

func TestWriterLogger(t *testing.T) {
	tests := []struct {
		name string
		min  Level
		want string
	}{
		{
			name: "debug shows everything",
			min:  LevelDebug,
			want: "DEBUG: fetched platforms=3\nINFO: selected version=120.1.10\nWARN: skipping version=121.0.1 reason=beta\nERROR: failed\n",
		},
		{
			name: "warn drops debug and info",
			min:  LevelWarn,
			want: "WARN: skipping version=121.0.1 reason=beta\nERROR: failed\n",
		},
		{
			name: "error only",
			min:  LevelError,
			want: "ERROR: failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWriterLogger(&buf, tt.min)

			logger.Debug("fetched", F("platforms", 3))
			logger.Info("selected", F("version", "120.1.10"))
			logger.Warn("skipping", F("version", "121.0.1"), F("reason", "beta"))
			logger.Error("failed")

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	for level, want := range map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
	} {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
