package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{LogInfo, false},
		{LogDebug, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := newLogger(&buf, tt.level)
		l.Debug("resolve batch", "indices", 4)
		l.Info("built chain graph")

		out := buf.String()
		if got := strings.Contains(out, "resolve batch"); got != tt.wantDebug {
			t.Errorf("level %v: debug line present = %v, want %v", tt.level, got, tt.wantDebug)
		}
		if !strings.Contains(out, "built chain graph") {
			t.Errorf("level %v: info line missing:\n%s", tt.level, out)
		}
		if !regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{2}`).MatchString(out) {
			t.Errorf("timestamp missing:\n%s", out)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Resolved 3 chains")

	if !regexp.MustCompile(`Resolved 3 chains \(\d+(\.\d+)?[µm]?s\)`).MatchString(buf.String()) {
		t.Errorf("progress line = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}
	l := newLogger(&bytes.Buffer{}, LogInfo)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("logger lost in context round trip")
	}
}
