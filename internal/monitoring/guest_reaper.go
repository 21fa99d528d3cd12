package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/scribehq/scribe-be/internal/services"
)

// GuestReaper periodically deletes guest accounts past their expiry.
type GuestReaper struct {
	db       *sqlx.DB
	users    services.UserServiceProvider
	events   services.EventServiceProvider
	schedule cron.Schedule
	nextRun  time.Time
	ticker   *time.Ticker
	done     chan bool
}

// NewGuestReaper parses the cron expression and builds a reaper.
func NewGuestReaper(db *sqlx.DB, users services.UserServiceProvider, events services.EventServiceProvider, cronExpr string) (*GuestReaper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid reaper schedule %q: %w", cronExpr, err)
	}
	return &GuestReaper{
		db:       db,
		users:    users,
		events:   events,
		schedule: schedule,
		nextRun:  schedule.Next(time.Now()),
		done:     make(chan bool),
	}, nil
}

// Run starts the reaper's ticking loop.
func (r *GuestReaper) Run() {
	log.Info().Msg("Starting guest account reaper...")
	r.ticker = time.NewTicker(30 * time.Second)
	defer r.ticker.Stop()

	for {
		select {
		case <-r.done:
			log.Info().Msg("Stopping guest account reaper.")
			return
		case <-r.ticker.C:
			now := time.Now()
			if now.After(r.nextRun) {
				r.reap(now)
				r.nextRun = r.schedule.Next(now)
			}
		}
	}
}

// Stop halts the reaper.
func (r *GuestReaper) Stop() {
	r.done <- true
}

func (r *GuestReaper) reap(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := r.users.DeleteExpiredGuests(ctx, r.db, now.UTC())
	if err != nil {
		log.Error().Err(err).Msg("Reaper: failed to delete expired guests")
		return
	}
	if deleted == 0 {
		return
	}

	log.Info().Int64("deleted", deleted).Msg("Reaper: purged expired guest accounts")
	msg := fmt.Sprintf("Purged %d expired guest account(s)", deleted)
	if err := r.events.Record(ctx, r.db, "auth.guest.purged", "info", msg, nil); err != nil {
		log.Error().Err(err).Msg("Reaper: failed to record purge event")
	}
}
