package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	queuemocks "github.com/cbodonnell/trivia/mocks/github.com/cbodonnell/trivia/pkg/queue"
	repomocks "github.com/cbodonnell/trivia/mocks/github.com/cbodonnell/trivia/pkg/repositories"
	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/queue"
	"github.com/cbodonnell/trivia/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchiveWorker_Flush(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	started := types.GameEvent{Type: types.GameEventTypeGameStarted, Round: 1, Timestamp: now}
	registered := types.GameEvent{Type: types.GameEventTypePlayerRegistered, Player: "ana", Timestamp: now}

	tests := []struct {
		name    string
		setup   func(q *queuemocks.Queue, r *repomocks.Repository)
		want    int
		wantErr bool
	}{
		{
			name: "saves pending events in order",
			setup: func(q *queuemocks.Queue, r *repomocks.Repository) {
				q.EXPECT().ReadAllMessages().Return([]interface{}{registered, &started}, nil).Once()
				r.EXPECT().SaveEvents(mock.Anything, []types.GameEvent{registered, started}).Return(nil).Once()
			},
			want: 2,
		},
		{
			name: "skips unknown items",
			setup: func(q *queuemocks.Queue, r *repomocks.Repository) {
				q.EXPECT().ReadAllMessages().Return([]interface{}{"garbage", started}, nil).Once()
				r.EXPECT().SaveEvents(mock.Anything, []types.GameEvent{started}).Return(nil).Once()
			},
			want: 1,
		},
		{
			name: "nothing pending",
			setup: func(q *queuemocks.Queue, r *repomocks.Repository) {
				q.EXPECT().ReadAllMessages().Return([]interface{}{}, nil).Once()
			},
			want: 0,
		},
		{
			name: "queue error",
			setup: func(q *queuemocks.Queue, r *repomocks.Repository) {
				q.EXPECT().ReadAllMessages().Return(nil, errors.New("broken")).Once()
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setup: func(q *queuemocks.Queue, r *repomocks.Repository) {
				q.EXPECT().ReadAllMessages().Return([]interface{}{started}, nil).Once()
				r.EXPECT().SaveEvents(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueue := queuemocks.NewQueue(t)
			mockRepository := repomocks.NewRepository(t)
			tt.setup(mockQueue, mockRepository)

			w := NewArchiveWorker(NewArchiveWorkerOptions{
				Repository: mockRepository,
				EventQueue: mockQueue,
				Interval:   time.Second,
			})
			got, err := w.Flush(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArchiveWorker_StartFlushesOnShutdown(t *testing.T) {
	repository := repositories.NewInMemoryRepository(nil)
	eventQueue := queue.NewInMemoryQueue(10)
	require.NoError(t, eventQueue.Enqueue(types.GameEvent{Type: types.GameEventTypeServerActivated, Timestamp: time.Now()}))

	w := NewArchiveWorker(NewArchiveWorkerOptions{
		Repository: repository,
		EventQueue: eventQueue,
		Interval:   time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}

	events, err := repository.ListEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.GameEventTypeServerActivated, events[0].Type)
}

func TestArchiveWorker_StartFlushesOnTick(t *testing.T) {
	repository := repositories.NewInMemoryRepository(nil)
	eventQueue := queue.NewInMemoryQueue(10)

	w := NewArchiveWorker(NewArchiveWorkerOptions{
		Repository: repository,
		EventQueue: eventQueue,
		Interval:   10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, eventQueue.Enqueue(types.GameEvent{Type: types.GameEventTypeGameReset, Timestamp: time.Now()}))

	assert.Eventually(t, func() bool {
		events, err := repository.ListEvents(context.Background(), 10)
		return err == nil && len(events) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
