package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/cbodonnell/trivia/pkg/queue"
	"github.com/cbodonnell/trivia/pkg/repositories"
)

type ArchiveWorker struct {
	repository repositories.Repository
	eventQueue queue.Queue
	interval   time.Duration
}

type NewArchiveWorkerOptions struct {
	Repository repositories.Repository
	EventQueue queue.Queue
	Interval   time.Duration
}

// NewArchiveWorker creates a new ArchiveWorker.
// The worker drains game events emitted by the session and
// periodically appends them to the repository history.
func NewArchiveWorker(opts NewArchiveWorkerOptions) *ArchiveWorker {
	return &ArchiveWorker{
		repository: opts.Repository,
		eventQueue: opts.EventQueue,
		interval:   opts.Interval,
	}
}

// Start runs until ctx is done, then flushes whatever is still queued.
func (w *ArchiveWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// the parent context is gone, give the final flush its own deadline
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if _, err := w.Flush(flushCtx); err != nil {
				log.Error("Failed to flush game events on shutdown: %v", err)
			}
			cancel()
			return
		case <-ticker.C:
			if _, err := w.Flush(ctx); err != nil {
				log.Error("Failed to archive game events: %v", err)
			}
		}
	}
}

// Flush writes every pending event to the repository and returns how many were written.
func (w *ArchiveWorker) Flush(ctx context.Context) (int, error) {
	pending, err := w.eventQueue.ReadAllMessages()
	if err != nil {
		return 0, fmt.Errorf("failed to read game events: %v", err)
	}

	events := make([]types.GameEvent, 0, len(pending))
	for _, item := range pending {
		switch event := item.(type) {
		case types.GameEvent:
			events = append(events, event)
		case *types.GameEvent:
			events = append(events, *event)
		default:
			log.Warn("Unknown item of type %T in game event queue", item)
		}
	}
	if len(events) == 0 {
		return 0, nil
	}

	if err := w.repository.SaveEvents(ctx, events); err != nil {
		return 0, fmt.Errorf("failed to save %d game events: %v", len(events), err)
	}
	log.Debug("Archived %d game events", len(events))
	return len(events), nil
}
