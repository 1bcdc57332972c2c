package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := New(level, "stderr")
		if err != nil {
			t.Fatalf("New(%q): %v", level, err)
		}
		want, _ := zapcore.ParseLevel(level)
		if !log.Desugar().Core().Enabled(want) {
			t.Fatalf("level %s not enabled", level)
		}
		if want > zapcore.DebugLevel && log.Desugar().Core().Enabled(want-1) {
			t.Fatalf("level below %s should be disabled", level)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", "stderr"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c4.log")
	log, err := New("info", path)
	if err != nil {
		t.Fatal(err)
	}
	log.Infof("[SESSION] Started in mode %d", 1)
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[SESSION] Started in mode 1") {
		t.Fatalf("log file = %q", data)
	}
}

func TestEmptyOutputDiscards(t *testing.T) {
	log, err := New("debug", "")
	if err != nil {
		t.Fatal(err)
	}
	if log.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("discarding logger should not enable any level")
	}
}
