package cmd

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/studyflow/internal/config"
	"github.com/abhisek/studyflow/internal/logging"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "studyflow",
	Short:        "Adaptive study session planner",
	Long:         "studyflow decides how hard to study each day, schedules spaced reviews and tracks XP, levels, streaks and badges.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYFLOW_DB env var and db.path)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/studyflow/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides log.level)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYFLOW_DB env var, then db.path from config, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB.Path != "" && os.Getenv("STUDYFLOW_DB") == "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// openService wires config, logger, store and session service for a
// command. The returned func releases them.
func openService(cmd *cobra.Command) (*session.Service, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("database opened", zap.String("path", dbPath))

	svc, err := session.NewService(session.Options{Store: st, Config: cfg, Logger: log})
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := st.Close(); err != nil {
			log.Warn("close database", zap.Error(err))
		}
		_ = log.Sync()
	}
	return svc, closeFn, nil
}

// addDateFlag registers --date on commands that act on a calendar day.
func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Day to act on as YYYY-MM-DD (default today)")
}

// dateFlag returns --date, or today when unset.
func dateFlag(cmd *cobra.Command, svc *session.Service) (civil.Date, error) {
	s, _ := cmd.Flags().GetString("date")
	if s == "" {
		return svc.Today(), nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid --date %q: %w", s, err)
	}
	return d, nil
}
