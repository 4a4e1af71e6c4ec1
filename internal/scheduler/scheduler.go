// Package scheduler owns refresh timing: a fetch on startup, on category
// change, and on a fixed wall-clock interval. It holds no article data.
package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// ErrRefreshInFlight is returned when a refresh for the same category is
// already running. Overlapping cycles for one category would duplicate
// network calls without adding data.
var ErrRefreshInFlight = errors.New("refresh already in flight")

// Runner executes one fetch-and-merge cycle for a category.
type Runner interface {
	Refresh(ctx context.Context, category model.Category) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, category model.Category) error

func (f RunnerFunc) Refresh(ctx context.Context, category model.Category) error {
	return f(ctx, category)
}

type Scheduler struct {
	interval time.Duration
	runner   Runner

	mu       sync.Mutex
	active   model.Category
	inflight map[model.Category]bool
}

func New(interval time.Duration, runner Runner, start model.Category) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		interval: interval,
		runner:   runner,
		active:   start,
		inflight: make(map[model.Category]bool),
	}
}

// Start launches the periodic loop: one immediate cycle for the active
// category, then one per interval, until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		if err := s.Run(ctx, s.Category()); err != nil && err != ErrRefreshInFlight {
			log.Printf("scheduler: startup refresh: %v", err)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Run(ctx, s.Category()); err != nil && err != ErrRefreshInFlight {
					log.Printf("scheduler: periodic refresh: %v", err)
				}
			}
		}
	}()
}

// Run executes one cycle for the category, guarded so two cycles for the
// same category never overlap.
func (s *Scheduler) Run(ctx context.Context, category model.Category) error {
	s.mu.Lock()
	if s.inflight[category] {
		s.mu.Unlock()
		return ErrRefreshInFlight
	}
	s.inflight[category] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, category)
		s.mu.Unlock()
	}()

	return s.runner.Refresh(ctx, category)
}

// SetCategory switches the active category and reports whether it
// changed; a change is the caller's cue to trigger Run.
func (s *Scheduler) SetCategory(c model.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == c {
		return false
	}
	s.active = c
	return true
}

func (s *Scheduler) Category() model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
