package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	boltInfra "github.com/RaushanShrivastwa/todo-app/internal/infrastructure/bolt"
)

// SnapshotConfig controls how often the bolt file is copied aside.
type SnapshotConfig struct {
	Path     string
	Interval time.Duration
}

// Snapshotter periodically writes a consistent backup of the BoltDB todo
// collection. It only runs when the bolt driver is active.
type Snapshotter struct {
	store  *boltInfra.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SnapshotConfig
}

func NewSnapshotter(store *boltInfra.Store, logger *zap.Logger, cfg SnapshotConfig) *Snapshotter {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Snapshotter{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = s.cron.AddFunc(schedule, func() {
		if err := s.Run(); err != nil {
			s.logger.Error("snapshot failed", zap.Error(err))
		}
	})

	return s
}

// Start launches the cron scheduler.
func (s *Snapshotter) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("snapshot job started", zap.String("path", s.cfg.Path))
}

// Stop gracefully stops the scheduler, waiting for a running snapshot.
func (s *Snapshotter) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("snapshot job stopped")
}

// Run takes one snapshot synchronously.
func (s *Snapshotter) Run() error {
	if s == nil || s.store == nil {
		return nil
	}
	start := time.Now()
	if err := s.store.Snapshot(s.cfg.Path); err != nil {
		return err
	}
	s.logger.Info("snapshot written",
		zap.String("path", s.cfg.Path),
		zap.Duration("took", time.Since(start)))
	return nil
}
