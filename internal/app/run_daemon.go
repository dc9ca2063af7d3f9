package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/zhangzhishan/cleanpkgcache/internal/config"
)

// RunDaemon runs the cleanup on the configured cron schedule until ctx is
// canceled. Per-run failures are logged and do not stop the daemon; only a
// missing or invalid schedule is fatal.
func RunDaemon(ctx context.Context, cfg *config.Config, fs afero.Fs, dryRun bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	spec := strings.TrimSpace(cfg.Daemon.Schedule)
	if spec == "" {
		return fmt.Errorf("daemon: daemon.schedule is required")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("daemon: invalid schedule %q: %w", spec, err)
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		runScheduled(ctx, cfg, fs, dryRun)
	}); err != nil {
		return fmt.Errorf("daemon: schedule job: %w", err)
	}

	log := logrus.WithFields(logrus.Fields{
		"schedule":          spec,
		"clean_checkpoints": cfg.Daemon.CleanCheckpoints,
		"dry_run":           dryRun,
	})
	log.Info("daemon started")

	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Info("daemon stopped")
	return nil
}

func runScheduled(ctx context.Context, cfg *config.Config, fs afero.Fs, dryRun bool) {
	if _, err := RunClean(ctx, cfg, fs, CleanOptions{DryRun: dryRun}); err != nil {
		logrus.WithField("root", cfg.Cache.Root).Errorf("scheduled clean failed: %v", err)
	}

	if !cfg.Daemon.CleanCheckpoints {
		return
	}
	if _, err := RunCheckpointClean(ctx, cfg, fs, time.Now().UTC(), dryRun); err != nil {
		logrus.Errorf("scheduled checkpoint clean failed: %v", err)
	}
}
