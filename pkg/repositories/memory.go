package repositories

import (
	"context"
	"sort"
	"sync"

	gametypes "github.com/cbodonnell/trivia/pkg/game/types"
)

var _ Repository = &InMemoryRepository{}

// InMemoryRepository keeps the question bank and event history in process memory.
type InMemoryRepository struct {
	lock      sync.RWMutex
	questions []gametypes.Question
	events    []gametypes.GameEvent
}

func NewInMemoryRepository(questions []gametypes.Question) *InMemoryRepository {
	r := &InMemoryRepository{}
	for _, q := range questions {
		r.questions = append(r.questions, q.Copy())
	}
	return r
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) LoadQuestions(ctx context.Context) ([]gametypes.Question, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if len(r.questions) == 0 {
		return nil, &ErrNotFound{What: "questions"}
	}
	questions := make([]gametypes.Question, 0, len(r.questions))
	for _, q := range r.questions {
		questions = append(questions, q.Copy())
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Round < questions[j].Round
	})
	return questions, nil
}

func (r *InMemoryRepository) SaveQuestions(ctx context.Context, questions []gametypes.Question) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, q := range questions {
		r.questions = append(r.questions, q.Copy())
	}
	return nil
}

func (r *InMemoryRepository) CountQuestions(ctx context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.questions), nil
}

func (r *InMemoryRepository) SaveEvents(ctx context.Context, events []gametypes.GameEvent) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *InMemoryRepository) ListEvents(ctx context.Context, limit int) ([]gametypes.GameEvent, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	start := 0
	if limit >= 0 && len(r.events) > limit {
		start = len(r.events) - limit
	}
	events := make([]gametypes.GameEvent, len(r.events)-start)
	copy(events, r.events[start:])
	return events, nil
}
