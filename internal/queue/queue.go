// Package queue serializes work per user. Each user identifier owns a lane
// that executes tasks one at a time in arrival order, while lanes for
// different users run in parallel, so one user's slow inference call never
// stalls anyone else. The lane slot is held for the full task, inference
// included: two calls for the same session never overlap.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is one unit of per-user work
type Task func(ctx context.Context) error

type record struct {
	task       Task
	enqueuedAt time.Time
}

type lane struct {
	mu      sync.Mutex
	pending []*record
	running bool
}

// Lanes dispatches tasks into per-user lanes
type Lanes struct {
	logger zerolog.Logger

	mu    sync.Mutex
	lanes map[int64]*lane

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an empty lane set
func New(logger zerolog.Logger) *Lanes {
	ctx, cancel := context.WithCancel(context.Background())

	return &Lanes{
		logger: logger.With().Str("component", "queue").Logger(),
		lanes:  make(map[int64]*lane),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit enqueues a task on the user's lane and returns immediately. Tasks on
// one lane run strictly in submission order.
func (l *Lanes) Submit(userID int64, task Task) {
	l.mu.Lock()
	ln, ok := l.lanes[userID]
	if !ok {
		ln = &lane{}
		l.lanes[userID] = ln
	}
	l.mu.Unlock()

	ln.mu.Lock()
	ln.pending = append(ln.pending, &record{task: task, enqueuedAt: time.Now()})
	shouldStart := !ln.running
	if shouldStart {
		ln.running = true
	}
	ln.mu.Unlock()

	if shouldStart {
		l.wg.Add(1)
		go l.drain(userID, ln)
	}
}

// drain runs the lane until its queue is empty
func (l *Lanes) drain(userID int64, ln *lane) {
	defer l.wg.Done()

	for {
		ln.mu.Lock()
		if len(ln.pending) == 0 {
			ln.running = false
			ln.mu.Unlock()
			return
		}
		rec := ln.pending[0]
		ln.pending = ln.pending[1:]
		ln.mu.Unlock()

		wait := time.Since(rec.enqueuedAt)
		if err := rec.task(l.ctx); err != nil {
			l.logger.Error().
				Int64("user_id", userID).
				Dur("waited", wait).
				Err(err).
				Msg("Task failed")
		}
	}
}

// Pending returns the number of queued (not yet started) tasks for a user
func (l *Lanes) Pending(userID int64) int {
	l.mu.Lock()
	ln, ok := l.lanes[userID]
	l.mu.Unlock()

	if !ok {
		return 0
	}

	ln.mu.Lock()
	defer ln.mu.Unlock()
	return len(ln.pending)
}

// Close cancels the task context and waits for running lanes to finish
func (l *Lanes) Close() error {
	l.cancel()
	l.wg.Wait()
	return nil
}
