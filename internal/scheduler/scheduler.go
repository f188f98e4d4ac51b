package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher re-fetches whatever the application currently displays.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the current forecast so the offline cache stays warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	idle      func(error) bool
}

// New creates a new Scheduler. idle reports errors that only mean "nothing to
// refresh yet"; it may be nil.
func New(interval time.Duration, refresher Refresher, idle func(error) bool) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	if idle == nil {
		idle = func(error) bool { return false }
	}
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
		timeout:   30 * time.Second,
		idle:      idle,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables refreshing.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh interval not set; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("scheduler: refreshing current forecast every %s", s.interval)
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.refresher.Refresh(ctx)
	switch {
	case err == nil:
		log.Println("scheduler: refreshed current forecast")
	case s.idle(err):
		log.Printf("DEBUG: scheduler: %v", err)
	default:
		log.Printf("scheduler: refresh failed: %v", err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
