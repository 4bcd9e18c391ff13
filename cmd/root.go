package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthaibot/healthbot/internal/config"
	"github.com/healthaibot/healthbot/internal/logging"
	"github.com/healthaibot/healthbot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "healthbot",
	Short: "Health-education assistant with quizzes",
	Long: "HealthBot searches trusted medical sites (NIH, Mayo Clinic, WebMD) for a health topic,\n" +
		"summarizes what it finds, and quizzes you on the summary.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

// Execute runs the command tree. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("provider", "", "LLM provider: openai, anthropic, gemini, openrouter, ollama, mock (default: discovered from API keys, else ollama)")
	pf.String("model", "", "Model name for the selected provider")
	pf.Float64("temperature", 0.3, "Sampling temperature")
	pf.String("db", "", "Path to SQLite database file (overrides HEALTHBOT_DB env var)")
	pf.String("config", "", "Path to a YAML config file (default: ./healthbot.yaml or the user config dir)")
	pf.String("log-level", "warn", "Diagnostics log level: debug, info, warn, error")
	pf.String("log-format", "text", "Diagnostics log format: text or json")
	pf.Bool("no-color", false, "Disable styled output (also honored: NO_COLOR)")

	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration for cmd: flags, then HEALTHBOT_* env,
// then the config file, then defaults. A .env in the working directory is
// loaded first.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{
		Flags:       cmd.Flags(),
		ConfigFile:  file,
		ConfigPaths: config.DefaultConfigPaths(),
		EnvFiles:    []string{".env"},
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}
	return logger, nil
}

// openStore opens the event database using --db (highest priority), then
// HEALTHBOT_DB, then the default XDG path.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DB
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	} else {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
