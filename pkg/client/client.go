package client

import (
	"context"

	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/rpc"
)

// Client calls a trivia server. Operation failures come back in the
// returned result; the error is only set when the call itself failed.
type Client interface {
	SetServerStatus(ctx context.Context, active bool) (*rpc.Result, error)
	RegisterPlayer(ctx context.Context, name string, position string) (*rpc.RegisterPlayerResult, error)
	GetQuestions(ctx context.Context, position string) (*rpc.QuestionsResult, error)
	GetStatus(ctx context.Context) (*rpc.StatusResult, error)
	StartGame(ctx context.Context) (*rpc.Result, error)
	NextRound(ctx context.Context) (*rpc.Result, error)
	RecordFinalResults(ctx context.Context, results types.FinalResults) (*rpc.Result, error)
	ResetGame(ctx context.Context) (*rpc.Result, error)
	ResetAll(ctx context.Context) (*rpc.Result, error)
	GetLeaderboard(ctx context.Context) (*rpc.LeaderboardResult, error)
	ListEvents(ctx context.Context, limit int) (*rpc.ListEventsResult, error)
	Close() error
}
