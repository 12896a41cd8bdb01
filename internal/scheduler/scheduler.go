package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weather-lookup-service/internal/session"
)

// Janitor periodically reclaims sessions that have been idle past their TTL.
type Janitor struct {
	scheduler *gocron.Scheduler
	registry  *session.Registry
	interval  time.Duration
}

// New creates a Janitor sweeping the registry at the given interval.
func New(registry *session.Registry, interval time.Duration) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		registry:  registry,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (j *Janitor) Start() error {
	minutes := int(j.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	_, err := j.scheduler.Every(minutes).Minutes().Do(func() {
		if evicted := j.registry.EvictIdle(time.Now()); evicted > 0 {
			log.Printf("janitor: evicted %d idle sessions (%d remaining)", evicted, j.registry.Len())
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
