package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reminderRunTimeout = 2 * time.Minute

// ReminderScheduler periodically reminds customers whose laundry is ready
// but not yet collected.
type ReminderScheduler struct {
	cron     *cron.Cron
	service  *LaundryService
	schedule string
	logger   *zap.Logger
}

func NewReminderScheduler(service *LaundryService, schedule string, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		cron:     cron.New(),
		service:  service,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the reminder job and starts the cron loop. schedule uses
// the standard five-field cron syntax or descriptors such as "@daily".
func (r *ReminderScheduler) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, r.run); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("reminder scheduler started", zap.String("schedule", r.schedule))
	return nil
}

// Stop stops scheduling and returns a context that is done once a running
// job has finished.
func (r *ReminderScheduler) Stop() context.Context {
	return r.cron.Stop()
}

func (r *ReminderScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderRunTimeout)
	defer cancel()

	sent, err := r.service.RemindReadyPickups(ctx)
	if err != nil {
		r.logger.Error("pickup reminders failed", zap.Error(err))
		return
	}
	r.logger.Info("pickup reminders sent", zap.Int("sent", sent))
}
