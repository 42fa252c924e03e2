package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Refresher is anything that can re-fetch its current data. View controllers
// satisfy it.
type Refresher interface {
	Name() string
	Refresh()
}

// Scheduler periodically refreshes the registered views.
type Scheduler struct {
	Cron *cron.Cron

	mu      sync.Mutex
	targets []Refresher
}

// NewScheduler creates a new Scheduler. Cron expressions carry a seconds field.
func NewScheduler() *Scheduler {
	return &Scheduler{Cron: cron.New(cron.WithSeconds())}
}

// Register adds targets refreshed on every tick of spec. Each call gets its own
// cron entry; a bad spec registers nothing.
func (s *Scheduler) Register(spec string, targets ...Refresher) error {
	batch := append([]Refresher(nil), targets...)
	if _, err := s.Cron.AddFunc(spec, func() { refresh(batch) }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}

	s.mu.Lock()
	s.targets = append(s.targets, batch...)
	s.mu.Unlock()
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow refreshes every successfully registered target immediately.
func (s *Scheduler) RunNow() {
	s.mu.Lock()
	targets := append([]Refresher(nil), s.targets...)
	s.mu.Unlock()
	refresh(targets)
}

func refresh(targets []Refresher) {
	log.Printf("[INFO] refreshing %d view(s)", len(targets))
	for _, t := range targets {
		t.Refresh()
	}
}
