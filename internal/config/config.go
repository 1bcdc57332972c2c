package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

const (
	EnvPrefix   = "CONNECT4"
	DefaultPort = 9000
)

type Config struct {
	Port             int           `mapstructure:"port"`
	Transport        string        `mapstructure:"transport"`
	Difficulty       string        `mapstructure:"difficulty"`
	RemoteDifficulty string        `mapstructure:"remote_difficulty"`
	AuthorityBot     bool          `mapstructure:"authority_bot"`
	SearchDepth      int           `mapstructure:"search_depth"`
	SearchWorkers    int           `mapstructure:"search_workers"`
	RedisURL         string        `mapstructure:"redis_url"`
	RedisPassword    string        `mapstructure:"redis_password"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFile          string        `mapstructure:"log_file"`
	TUI              bool          `mapstructure:"tui"`
	MarkerA          string        `mapstructure:"marker_a"`
	MarkerB          string        `mapstructure:"marker_b"`
}

var defaults = map[string]interface{}{
	"port":              DefaultPort,
	"transport":         "tcp",
	"difficulty":        "3",
	"remote_difficulty": "3",
	"authority_bot":     false,
	"search_depth":      6,
	"search_workers":    1,
	"redis_url":         "",
	"redis_password":    "",
	"cache_ttl":         24 * time.Hour,
	"log_level":         "info",
	"log_file":          "",
	"tui":               false,
	"marker_a":          "X",
	"marker_b":          "O",
}

// RegisterFlags declares one flag per key, spelled with dashes.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("port", DefaultPort, "port to listen on or connect to")
	fs.String("transport", "tcp", "byte stream between peers: tcp or ws")
	fs.String("difficulty", "3", "bot difficulty for local games and the server bot (1-3 or easy/medium/hard)")
	fs.String("remote-difficulty", "3", "bot difficulty used by the joining peer when the server picks mode 2")
	fs.Bool("authority-bot", false, "let the engine play the server side")
	fs.Int("search-depth", 6, "hard tier search depth in plies")
	fs.Int("search-workers", 1, "goroutines used for the hard tier root moves")
	fs.String("redis-url", "", "redis address for the move cache, empty disables it")
	fs.String("redis-password", "", "redis password")
	fs.Duration("cache-ttl", 24*time.Hour, "lifetime of cached moves")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-file", "", "write logs to this file instead of stderr")
	fs.Bool("tui", false, "full-screen board instead of line prompts (needs a terminal)")
	fs.String("marker-a", "X", "marker for the first player")
	fs.String("marker-b", "O", "marker for the second player")
}

// Load resolves the configuration: flags, then CONNECT4_* variables, then
// .env files, then defaults. Missing .env files are skipped.
func Load(flags *pflag.FlagSet, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for key := range defaults {
			f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Transport {
	case "tcp", "ws":
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if _, err := domain.ParseDifficulty(c.Difficulty); err != nil {
		return err
	}
	if _, err := domain.ParseDifficulty(c.RemoteDifficulty); err != nil {
		return err
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("search depth must be positive, got %d", c.SearchDepth)
	}
	if c.SearchWorkers < 1 {
		return fmt.Errorf("search workers must be positive, got %d", c.SearchWorkers)
	}
	if len(c.MarkerA) != 1 || len(c.MarkerB) != 1 {
		return fmt.Errorf("markers must be single characters")
	}
	return c.Markers().Validate()
}

func (c *Config) Markers() domain.Markers {
	m := domain.DefaultMarkers
	if len(c.MarkerA) == 1 {
		m.A = c.MarkerA[0]
	}
	if len(c.MarkerB) == 1 {
		m.B = c.MarkerB[0]
	}
	return m
}

// BotDifficulty is the tier for local games and the authority's bot.
func (c *Config) BotDifficulty() domain.Difficulty {
	d, err := domain.ParseDifficulty(c.Difficulty)
	if err != nil {
		return domain.Hard
	}
	return d
}

// RemoteBotDifficulty is the tier the joining peer plays with in mode 2.
func (c *Config) RemoteBotDifficulty() domain.Difficulty {
	d, err := domain.ParseDifficulty(c.RemoteDifficulty)
	if err != nil {
		return domain.Hard
	}
	return d
}

// LogOutput is where logs go. The full-screen board owns the terminal, so
// logs are dropped there unless a file is configured.
func (c *Config) LogOutput() string {
	switch {
	case c.LogFile != "":
		return c.LogFile
	case c.TUI:
		return ""
	}
	return "stderr"
}

func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
