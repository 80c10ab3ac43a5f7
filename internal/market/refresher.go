package market

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/logging"
)

const refreshTimeout = 30 * time.Second

// Refresher re-fetches market data on a cron schedule so requests are
// served from a warm cache
type Refresher struct {
	cron     *cron.Cron
	service  *Service
	schedule string
	log      *logrus.Entry
}

// NewRefresher schedules service refreshes. schedule accepts standard cron
// expressions and descriptors such as "@every 1h".
func NewRefresher(service *Service, schedule string, logger *logrus.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		service:  service,
		schedule: schedule,
		log:      logging.Component(logger, "market-refresher"),
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	snap := r.service.Refresh(ctx)
	r.log.WithFields(logrus.Fields{
		"status":   snap.Status,
		"duration": time.Since(start).String(),
	}).Info("Scheduled market refresh completed")
}

// Start begins running the schedule
func (r *Refresher) Start() {
	r.log.WithField("schedule", r.schedule).Info("Starting market refresher")
	r.cron.Start()
}

// Stop halts the schedule and returns a context done when a running refresh finishes
func (r *Refresher) Stop() context.Context {
	r.log.Info("Stopping market refresher")
	return r.cron.Stop()
}
