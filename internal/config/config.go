// Package config resolves runtime settings from flags, HEALTHBOT_* env
// vars, an optional YAML file and .env files, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/healthaibot/healthbot/internal/llm"
	"github.com/healthaibot/healthbot/internal/search"
)

// EnvPrefix namespaces environment overrides, e.g. HEALTHBOT_PROVIDER.
const EnvPrefix = "HEALTHBOT"

// Config is the resolved application configuration.
type Config struct {
	// Provider is empty when the provider should be discovered from
	// standard API key env vars.
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`

	DB        string `mapstructure:"db"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	NoColor   bool   `mapstructure:"no_color"`

	// LogBodies stores LLM prompt and completion text in the event log.
	LogBodies bool `mapstructure:"log_bodies"`

	Tavily     TavilyConfig `mapstructure:"tavily"`
	OpenAI     KeyConfig    `mapstructure:"openai"`
	Anthropic  KeyConfig    `mapstructure:"anthropic"`
	Gemini     KeyConfig    `mapstructure:"gemini"`
	OpenRouter KeyConfig    `mapstructure:"openrouter"`
	Ollama     OllamaConfig `mapstructure:"ollama"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// KeyConfig carries a hosted provider's credentials.
type KeyConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// OllamaConfig points at a local Ollama server.
type OllamaConfig struct {
	URL string `mapstructure:"url"`
}

// TavilyConfig configures the web search backend.
type TavilyConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	MaxResults  int           `mapstructure:"max_results"`
	SearchDepth string        `mapstructure:"search_depth"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Flags are bound by name: provider, model, temperature, db, log-level,
	// log-format, no-color. Unknown or missing flags are skipped.
	Flags *pflag.FlagSet

	// ConfigFile is read when set; it is an error if it cannot be read.
	ConfigFile string

	// ConfigPaths are searched for healthbot.yaml when ConfigFile is empty.
	ConfigPaths []string

	// EnvFiles are loaded into the process environment first. Missing files
	// are ignored and variables already set are never overwritten.
	EnvFiles []string
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"provider":    "provider",
	"model":       "model",
	"temperature": "temperature",
	"db":          "db",
	"log-level":   "log_level",
	"log-format":  "log_format",
	"no-color":    "no_color",
}

// standardEnv binds keys to the env vars other tools already use.
var standardEnv = map[string]string{
	"tavily.api_key":     "TAVILY_API_KEY",
	"openai.api_key":     "OPENAI_API_KEY",
	"anthropic.api_key":  "ANTHROPIC_API_KEY",
	"gemini.api_key":     "GEMINI_API_KEY",
	"openrouter.api_key": "OPENROUTER_API_KEY",
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	tavily := search.DefaultTavilyConfig()

	v.SetDefault("provider", "")
	v.SetDefault("model", "")
	v.SetDefault("temperature", llmDefaults.Temperature)
	v.SetDefault("timeout", llmDefaults.Timeout)
	v.SetDefault("db", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("no_color", false)
	v.SetDefault("log_bodies", false)

	v.SetDefault("tavily.api_key", "")
	v.SetDefault("tavily.base_url", tavily.BaseURL)
	v.SetDefault("tavily.max_results", tavily.MaxResults)
	v.SetDefault("tavily.search_depth", tavily.SearchDepth)
	v.SetDefault("tavily.timeout", tavily.Timeout)

	for _, p := range []string{"openai", "anthropic", "gemini", "openrouter"} {
		v.SetDefault(p+".api_key", "")
		v.SetDefault(p+".base_url", "")
	}
	v.SetDefault("ollama.url", llmDefaults.Ollama.ServerURL)
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	for _, f := range opts.EnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range standardEnv {
		if err := v.BindEnv(key, prefixed(key), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return &cfg, nil
}

func prefixed(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
}

func readConfigFile(v *viper.Viper, opts LoadOptions) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
		return nil
	}
	if len(opts.ConfigPaths) == 0 {
		return nil
	}

	v.SetConfigName("healthbot")
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// DefaultConfigPaths returns the working directory and the user config dir.
func DefaultConfigPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "healthbot"))
	}
	return paths
}

// LLM builds the provider configuration. With no explicit provider the
// first API key found wins, falling back to the local Ollama model.
func (c *Config) LLM() llm.Config {
	cfg := llm.DefaultConfig()

	if c.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(c.apiKey); ok {
			cfg = discovered
		}
	} else {
		cfg.Provider = c.Provider
	}

	cfg.OpenAI.APIKey = c.OpenAI.APIKey
	if c.OpenAI.BaseURL != "" {
		cfg.OpenAI.BaseURL = c.OpenAI.BaseURL
	}
	cfg.Anthropic.APIKey = c.Anthropic.APIKey
	cfg.Gemini.APIKey = c.Gemini.APIKey
	cfg.Gemini.BaseURL = c.Gemini.BaseURL
	cfg.OpenRouter.APIKey = c.OpenRouter.APIKey
	if c.OpenRouter.BaseURL != "" {
		cfg.OpenRouter.BaseURL = c.OpenRouter.BaseURL
	}
	if c.Ollama.URL != "" {
		cfg.Ollama.ServerURL = c.Ollama.URL
	}

	cfg.SetModel(c.Model)
	cfg.Temperature = c.Temperature
	cfg.Timeout = c.Timeout
	cfg.LogBodies = c.LogBodies
	return cfg
}

// apiKey answers standard key variable names from the resolved config, so
// keys from a config file or .env count as well as the environment.
func (c *Config) apiKey(name string) string {
	switch name {
	case "GEMINI_API_KEY":
		return c.Gemini.APIKey
	case "OPENAI_API_KEY":
		return c.OpenAI.APIKey
	case "ANTHROPIC_API_KEY":
		return c.Anthropic.APIKey
	case "OPENROUTER_API_KEY":
		return c.OpenRouter.APIKey
	}
	return ""
}

// Search builds the Tavily client configuration.
func (c *Config) Search() search.TavilyConfig {
	cfg := search.DefaultTavilyConfig()
	cfg.APIKey = c.Tavily.APIKey
	if c.Tavily.BaseURL != "" {
		cfg.BaseURL = c.Tavily.BaseURL
	}
	if c.Tavily.MaxResults > 0 {
		cfg.MaxResults = c.Tavily.MaxResults
	}
	if c.Tavily.SearchDepth != "" {
		cfg.SearchDepth = c.Tavily.SearchDepth
	}
	if c.Tavily.Timeout > 0 {
		cfg.Timeout = c.Tavily.Timeout
	}
	return cfg
}
