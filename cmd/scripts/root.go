package main

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ArowuTest/lottery-insights/internal/config"
	"github.com/ArowuTest/lottery-insights/internal/logger"
	"github.com/ArowuTest/lottery-insights/internal/services"
	"github.com/ArowuTest/lottery-insights/internal/storage"
	"github.com/ArowuTest/lottery-insights/pkg/fdj"
)

// app holds what the subcommands share once the root command has run
type app struct {
	cfg         *config.Config
	store       *storage.Store
	draws       services.DrawService
	predictions services.PredictionService
	sync        services.SyncService
}

type rootOptions struct {
	configDir  string
	driver     string
	sqlitePath string
	logLevel   string
}

// skipStore marks commands that never touch the draw store
const skipStore = "skip-store"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:           "lottoctl",
		Short:         "Manage the Loto and EuroMillions draw history",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return err
			}
			if opts.driver != "" {
				cfg.Storage.Driver = opts.driver
			}
			if opts.sqlitePath != "" {
				cfg.Storage.SQLitePath = opts.sqlitePath
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			logger.Init(&logger.Options{Level: logger.ParseLevel(cfg.LogLevel), Writer: cmd.ErrOrStderr()})
			a.cfg = cfg

			if cmd.Annotations[skipStore] == "true" {
				return nil
			}
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store == nil {
				return nil
			}
			return a.store.Close(context.Background())
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config", config.ConfigDir(), "directory holding config.yaml")
	root.PersistentFlags().StringVar(&opts.driver, "storage", "", "storage driver: sqlite, mongodb or memory (overrides config)")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "sqlite database file (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(syncCmd(a), importCmd(a), predictCmd(a), historyCmd(a), hashPasswordCmd())
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := storage.Open(ctx, a.cfg)
	if err != nil {
		return err
	}
	a.store = store

	source := fdj.NewClient(a.cfg.Sources.LotoURL, a.cfg.Sources.EuroMillionsURL, a.cfg.Sources.Timeout)
	a.draws = services.NewDrawService(store.Draws)
	a.predictions = services.NewPredictionService(store.Draws, services.PredictionOptions{
		RecentWindow: a.cfg.Prediction.RecentWindow,
		Seed:         a.cfg.Prediction.Seed,
	})
	a.sync = services.NewSyncService(source, store.Draws)
	slog.Debug("Draw store opened", "driver", store.Driver)
	return nil
}
