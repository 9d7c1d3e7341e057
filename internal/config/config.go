// Package config loads langbuddy settings from defaults, an optional
// langbuddy.yaml, .env files and LANGBUDDY_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/langbuddy/internal/llm"
	"github.com/abhisek/langbuddy/internal/logging"
	"github.com/abhisek/langbuddy/internal/prompt"
	"github.com/abhisek/langbuddy/internal/store"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "LANGBUDDY"

// Config is the full application configuration.
type Config struct {
	LLM   llm.Config     `mapstructure:"llm"`
	Chat  ChatConfig     `mapstructure:"chat"`
	Store store.Config   `mapstructure:"store"`
	Relay RelayConfig    `mapstructure:"relay"`
	Log   logging.Config `mapstructure:"log"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// ChatConfig tunes tutor requests.
type ChatConfig struct {
	HistoryWindow int     `mapstructure:"history_window"`
	MaxTokens     int     `mapstructure:"max_tokens"`
	Temperature   float64 `mapstructure:"temperature"`
}

// RelayConfig configures `langbuddy serve`.
type RelayConfig struct {
	Addr        string  `mapstructure:"addr"`
	CORSOrigins string  `mapstructure:"cors_origins"`
	RateLimit   int     `mapstructure:"rate_limit"` // requests per minute per IP, 0 disables
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// Options control where configuration is read from.
type Options struct {
	// File is an explicit config file. When set it must exist.
	File string

	// EnvFiles are dotenv files to load. Missing files are ignored.
	// Defaults to ".env".
	EnvFiles []string
}

// Load reads configuration. Missing files and unset keys fall back to
// defaults; only malformed input is an error.
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := New()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("langbuddy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.LLM.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = discovered
		}
	}
	cfg.normalize()
	return &cfg, nil
}

// New returns a viper instance with every key defaulted and bound to its
// LANGBUDDY_* environment variable.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.gateway.url", "")
	v.SetDefault("llm.gateway.api_key", "")
	v.SetDefault("llm.gateway.model", "")
	v.SetDefault("llm.gateway.timeout", d.Gateway.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.groq.api_key", "")
	v.SetDefault("llm.groq.model", d.Groq.Model)
	v.SetDefault("llm.groq.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("chat.history_window", prompt.DefaultHistoryWindow)
	v.SetDefault("chat.max_tokens", 800)
	v.SetDefault("chat.temperature", 0.8)

	v.SetDefault("store.backend", store.BackendSQLite)
	v.SetDefault("store.sqlite.path", "")
	v.SetDefault("store.redis.addr", "")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "langbuddy:")
	v.SetDefault("store.mongo.uri", "")
	v.SetDefault("store.mongo.database", "langbuddy")
	v.SetDefault("store.mongo.collection", "kv")
	v.SetDefault("store.postgres.dsn", "")

	v.SetDefault("relay.addr", ":8080")
	v.SetDefault("relay.cors_origins", "*")
	v.SetDefault("relay.rate_limit", 60)
	v.SetDefault("relay.max_tokens", 800)
	v.SetDefault("relay.temperature", 0.8)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	return v
}

func (c *Config) normalize() {
	if c.Chat.HistoryWindow < 0 {
		c.Chat.HistoryWindow = prompt.DefaultHistoryWindow
	}
	if c.Chat.MaxTokens <= 0 {
		c.Chat.MaxTokens = 800
	}
	if c.Chat.Temperature <= 0 {
		c.Chat.Temperature = 0.8
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 30 * time.Second
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
}

// DBPath returns the sqlite path, resolving the default location when
// none is configured.
func (c *Config) DBPath() (string, error) {
	if c.Store.SQLite.Path != "" {
		return c.Store.SQLite.Path, store.EnsureDir(c.Store.SQLite.Path)
	}
	return store.DefaultDBPath()
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "langbuddy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "langbuddy")
}
