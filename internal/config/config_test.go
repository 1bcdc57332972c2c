package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return fs
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t), noEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || cfg.Transport != "tcp" || cfg.SearchDepth != 6 || cfg.SearchWorkers != 1 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.CacheTTL != 24*time.Hour || cfg.CacheEnabled() {
		t.Fatalf("cache defaults %+v", cfg)
	}
	if cfg.BotDifficulty() != domain.Hard || cfg.RemoteBotDifficulty() != domain.Hard {
		t.Fatalf("difficulties %v %v", cfg.BotDifficulty(), cfg.RemoteBotDifficulty())
	}
	if cfg.Markers() != domain.DefaultMarkers {
		t.Fatalf("markers %+v", cfg.Markers())
	}
}

func TestFlagBeatsEnvBeatsFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "CONNECT4_PORT=9100\nCONNECT4_SEARCH_DEPTH=4\nCONNECT4_LOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("CONNECT4_PORT")
		os.Unsetenv("CONNECT4_SEARCH_DEPTH")
		os.Unsetenv("CONNECT4_LOG_LEVEL")
	})
	t.Setenv("CONNECT4_SEARCH_DEPTH", "5")
	t.Setenv("CONNECT4_DIFFICULTY", "easy")

	cfg, err := Load(newFlags(t, "--port", "9200"), envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9200 {
		t.Fatalf("port = %d, want flag value 9200", cfg.Port)
	}
	if cfg.SearchDepth != 5 {
		t.Fatalf("search depth = %d, want env value 5", cfg.SearchDepth)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q, want file value", cfg.LogLevel)
	}
	if cfg.BotDifficulty() != domain.Easy {
		t.Fatalf("difficulty = %v", cfg.BotDifficulty())
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"port", []string{"--port", "0"}},
		{"transport", []string{"--transport", "udp"}},
		{"difficulty", []string{"--difficulty", "7"}},
		{"remote difficulty", []string{"--remote-difficulty", "impossible"}},
		{"depth", []string{"--search-depth", "0"}},
		{"workers", []string{"--search-workers", "0"}},
		{"same markers", []string{"--marker-a", "O"}},
		{"empty marker", []string{"--marker-b", "."}},
		{"long marker", []string{"--marker-a", "XX"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(newFlags(t, tc.args...), noEnvFile(t)); err == nil {
				t.Fatalf("expected %v to be rejected", tc.args)
			}
		})
	}
}

func TestLogOutput(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{nil, "stderr"},
		{[]string{"--tui"}, ""},
		{[]string{"--tui", "--log-file", "c4.log"}, "c4.log"},
		{[]string{"--log-file", "c4.log"}, "c4.log"},
	}
	for _, tc := range cases {
		cfg, err := Load(newFlags(t, tc.args...), noEnvFile(t))
		if err != nil {
			t.Fatal(err)
		}
		if got := cfg.LogOutput(); got != tc.want {
			t.Fatalf("%v: LogOutput = %q, want %q", tc.args, got, tc.want)
		}
	}
}

func TestCustomMarkers(t *testing.T) {
	cfg, err := Load(newFlags(t, "--marker-a", "R", "--marker-b", "Y", "--redis-url", "localhost:6379"), noEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Markers(); got.A != 'R' || got.B != 'Y' {
		t.Fatalf("markers = %+v", got)
	}
	if !cfg.CacheEnabled() {
		t.Fatal("cache should be enabled when redis_url is set")
	}
}
