package service

import (
	"context"
	"fmt"
	"time"

	"github.com/reosaurous172214/xnote-server/internal/logger"
	"github.com/reosaurous172214/xnote-server/internal/metrics"
	"github.com/reosaurous172214/xnote-server/internal/model"
)

// TrashPurger permanently deletes notes whose trash retention has expired.
// It runs once per day at a fixed local time, independently of request
// traffic. A failed run is logged and the next scheduled run proceeds.
type TrashPurger struct {
	noteStore model.NoteStore
	clock     model.Clock
	retention time.Duration
	purgeHour int
	purgeMin  int
	logger    *logger.Logger
}

func NewTrashPurger(
	noteStore model.NoteStore,
	clock model.Clock,
	retentionDays int,
	purgeAt string,
	logger *logger.Logger,
) (*TrashPurger, error) {
	if retentionDays <= 0 {
		retentionDays = 7
	}

	at, err := time.Parse("15:04", purgeAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse purge time %q: %w", purgeAt, err)
	}

	return &TrashPurger{
		noteStore: noteStore,
		clock:     clock,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		purgeHour: at.Hour(),
		purgeMin:  at.Minute(),
		logger:    logger,
	}, nil
}

// LogEligible counts notes already eligible for purge and logs the result.
// Read-only: exists purely as an operational signal at startup.
func (p *TrashPurger) LogEligible(ctx context.Context) {
	cutoff := p.clock.Now().Add(-p.retention)

	count, err := p.noteStore.CountTrashedBefore(ctx, cutoff)
	if err != nil {
		p.logger.Error("Trash purger: failed to count eligible notes",
			"error", err.Error())
		return
	}

	metrics.SetTrashEligible(count)

	p.logger.Info("Trash purger: notes eligible for purge at startup",
		"count", count,
		"cutoff", cutoff)
}

// Run executes the daily purge loop until ctx is cancelled.
func (p *TrashPurger) Run(ctx context.Context) {
	p.logger.Info("Trash purger: started",
		"retention", p.retention.String(),
		"purge_at", fmt.Sprintf("%02d:%02d", p.purgeHour, p.purgeMin))

	for {
		wait := p.nextRun(p.clock.Now()).Sub(p.clock.Now())
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("Trash purger: stopped")
			return
		case <-timer.C:
		}

		count, err := p.RunOnce(ctx)
		if err != nil {
			// No retry within the same tick.
			p.logger.Error("Trash purger: run failed",
				"error", err.Error())
			continue
		}

		p.logger.Info("Trash purger: run completed",
			"purged", count)
	}
}

// RunOnce purges every note trashed longer ago than the retention window
// and returns the number of purged records.
func (p *TrashPurger) RunOnce(ctx context.Context) (int64, error) {
	cutoff := p.clock.Now().Add(-p.retention)

	count, err := p.noteStore.PurgeTrashedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge trashed notes: %w", err)
	}

	metrics.AddNotesPurged(count)

	return count, nil
}

// nextRun returns the next daily purge time strictly after now.
func (p *TrashPurger) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), p.purgeHour, p.purgeMin, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
