// Package maintenance runs periodic housekeeping against the store.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
)

// Scheduler purges expired album links on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	links     repositories.MagicLinkRepository
	retention time.Duration
	now       func() time.Time
}

// NewScheduler parses spec (standard five fields or descriptors such as
// "@hourly"). Links are kept for retention after they expire.
func NewScheduler(links repositories.MagicLinkRepository, spec string, retention time.Duration) (*Scheduler, error) {
	if spec == "" {
		spec = config.LinkPurgeSchedule
	}
	if retention < 0 {
		retention = 0
	}

	s := &Scheduler{
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		links:     links,
		retention: retention,
		now:       time.Now,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid purge schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Maintenance scheduler started", slog.String("type", "sys"))
}

// Stop prevents new runs and waits for a running purge to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()
	_, _ = s.PurgeExpiredLinks(ctx)
}

// PurgeExpiredLinks deletes links whose expiry is older than the retention.
func (s *Scheduler) PurgeExpiredLinks(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.links.DeleteExpired(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to purge expired album links",
			slog.String("type", "db"),
			slog.Any("error", err))
		return 0, err
	}
	if n > 0 {
		slog.Info("Purged expired album links",
			slog.String("type", "db"),
			slog.Int("count", n),
			slog.Time("before", cutoff))
	}
	return n, nil
}
