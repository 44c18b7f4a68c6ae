// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the batch and homepage rewrite on an interval until interrupted",
	Long: `Schedule runs the FAQ batch every schedule.batch_interval and the
homepage rewrite every schedule.rewrite_interval (zero disables it). Both run
once at startup. A run still in progress when its next tick arrives is not
overlapped. Edits to the config file are picked up before the next run.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	s, err := schedule.New(logger)
	if err != nil {
		return err
	}
	if _, err := s.Every("batch", cfg.Schedule.BatchInterval, true, func(ctx context.Context) error {
		_, err := a.batch(ctx)
		return err
	}); err != nil {
		return err
	}
	if cfg.Schedule.RewriteInterval > 0 {
		if _, err := s.Every("rewrite", cfg.Schedule.RewriteInterval, true, func(ctx context.Context) error {
			_, err := a.rewrite(ctx)
			return err
		}); err != nil {
			return err
		}
	}

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			c, err := loadConfig()
			if err == nil {
				err = a.reload(c)
			}
			if err != nil {
				logger.Error("config reload failed", zap.String("file", e.Name), zap.Error(err))
				return
			}
			logger.Info("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		})
		viper.WatchConfig()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}
