package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cbodonnell/trivia/pkg/game"
	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/log"
)

const (
	DefaultEventsLimit = 50
	MaxEventsLimit     = 500
)

// ErrUnknownMethod is returned by Dispatch for a method it does not serve.
var ErrUnknownMethod = errors.New("unknown method")

// Session is the set of game operations exposed remotely.
type Session interface {
	SetServerStatus(ctx context.Context, active bool) (string, error)
	RegisterPlayer(ctx context.Context, name string, position string) (*types.Player, error)
	QuestionsForPosition(ctx context.Context, position string) ([]types.PlayerQuestion, error)
	Status(ctx context.Context) (*types.StatusSnapshot, error)
	StartGame(ctx context.Context) (string, error)
	NextRound(ctx context.Context) (string, error)
	RecordFinalResults(ctx context.Context, results types.FinalResults) (string, error)
	ResetGame(ctx context.Context) (string, error)
	ResetAll(ctx context.Context) (string, error)
	Leaderboard(ctx context.Context) ([]*types.Player, error)
}

// EventSource lists archived game events.
type EventSource interface {
	ListEvents(ctx context.Context, limit int) ([]types.GameEvent, error)
}

// Service adapts a Session to request and result records.
// Operation failures never surface as Go errors; they are reported in the Result.
type Service struct {
	session Session
	events  EventSource
}

type NewServiceOptions struct {
	Session Session
	// Events backs ListEvents. Optional.
	Events EventSource
}

func NewService(opts NewServiceOptions) *Service {
	return &Service{
		session: opts.Session,
		events:  opts.Events,
	}
}

func (s *Service) SetServerStatus(ctx context.Context, req SetServerStatusRequest) Result {
	msg, err := s.session.SetServerStatus(ctx, req.Active)
	if err != nil {
		return failure(MethodSetServerStatus, err)
	}
	return Result{Success: true, Message: msg}
}

func (s *Service) RegisterPlayer(ctx context.Context, req RegisterPlayerRequest) RegisterPlayerResult {
	player, err := s.session.RegisterPlayer(ctx, req.Name, req.Position)
	if err != nil {
		if errors.Is(err, game.ErrServerInactive) {
			return RegisterPlayerResult{Result: Result{Success: false, Message: "The server is not active. You cannot join.", Code: CodeFailedPrecondition}}
		}
		return RegisterPlayerResult{Result: failure(MethodRegisterPlayer, err)}
	}
	return RegisterPlayerResult{
		Result:     Result{Success: true, Message: fmt.Sprintf("Welcome, %s!", player.Name)},
		PlayerName: player.Name,
		Position:   player.Position,
		Score:      player.Score,
	}
}

func (s *Service) GetQuestions(ctx context.Context, req QuestionsRequest) QuestionsResult {
	questions, err := s.session.QuestionsForPosition(ctx, req.Position)
	if err != nil {
		return QuestionsResult{Result: failure(MethodGetQuestions, err), Questions: []types.PlayerQuestion{}}
	}
	return QuestionsResult{Result: Result{Success: true}, Questions: questions}
}

func (s *Service) GetStatus(ctx context.Context) StatusResult {
	status, err := s.session.Status(ctx)
	if err != nil {
		return StatusResult{Result: failure(MethodGetStatus, err)}
	}
	return StatusResult{Result: Result{Success: true}, StatusSnapshot: *status}
}

func (s *Service) StartGame(ctx context.Context) Result {
	msg, err := s.session.StartGame(ctx)
	if err != nil {
		return failure(MethodStartGame, err)
	}
	return Result{Success: true, Message: msg}
}

func (s *Service) NextRound(ctx context.Context) Result {
	msg, err := s.session.NextRound(ctx)
	if err != nil {
		return failure(MethodNextRound, err)
	}
	return Result{Success: true, Message: msg}
}

func (s *Service) RecordFinalResults(ctx context.Context, req RecordFinalResultsRequest) Result {
	msg, err := s.session.RecordFinalResults(ctx, req)
	if err != nil {
		return failure(MethodRecordFinalResults, err)
	}
	return Result{Success: true, Message: msg}
}

func (s *Service) ResetGame(ctx context.Context) Result {
	msg, err := s.session.ResetGame(ctx)
	if err != nil {
		return failure(MethodResetGame, err)
	}
	return Result{Success: true, Message: msg}
}

func (s *Service) ResetAll(ctx context.Context) Result {
	msg, err := s.session.ResetAll(ctx)
	if err != nil {
		return failure(MethodResetAll, err)
	}
	return Result{Success: true, Message: msg}
}

func (s *Service) GetLeaderboard(ctx context.Context) LeaderboardResult {
	players, err := s.session.Leaderboard(ctx)
	if err != nil {
		return LeaderboardResult{Result: failure(MethodGetLeaderboard, err), Players: []*types.Player{}}
	}
	return LeaderboardResult{Result: Result{Success: true}, Players: players}
}

func (s *Service) ListEvents(ctx context.Context, req ListEventsRequest) ListEventsResult {
	if s.events == nil {
		return ListEventsResult{Result: Result{Success: false, Message: "Event history is not available.", Code: CodeUnavailable}, Events: []types.GameEvent{}}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultEventsLimit
	}
	if limit > MaxEventsLimit {
		limit = MaxEventsLimit
	}
	events, err := s.events.ListEvents(ctx, limit)
	if err != nil {
		return ListEventsResult{Result: failure(MethodListEvents, err), Events: []types.GameEvent{}}
	}
	return ListEventsResult{Result: Result{Success: true}, Events: events}
}

// Dispatch decodes payload for method, runs it and returns the result record.
// An error is returned only for unknown methods or undecodable payloads.
func (s *Service) Dispatch(ctx context.Context, method Method, payload json.RawMessage) (interface{}, error) {
	switch method {
	case MethodSetServerStatus:
		req := SetServerStatusRequest{}
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return s.SetServerStatus(ctx, req), nil
	case MethodRegisterPlayer:
		req := RegisterPlayerRequest{}
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return s.RegisterPlayer(ctx, req), nil
	case MethodGetQuestions:
		req := QuestionsRequest{}
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return s.GetQuestions(ctx, req), nil
	case MethodGetStatus:
		return s.GetStatus(ctx), nil
	case MethodStartGame:
		return s.StartGame(ctx), nil
	case MethodNextRound:
		return s.NextRound(ctx), nil
	case MethodRecordFinalResults:
		req := RecordFinalResultsRequest{}
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return s.RecordFinalResults(ctx, req), nil
	case MethodResetGame:
		return s.ResetGame(ctx), nil
	case MethodResetAll:
		return s.ResetAll(ctx), nil
	case MethodGetLeaderboard:
		return s.GetLeaderboard(ctx), nil
	case MethodListEvents:
		req := ListEventsRequest{}
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return s.ListEvents(ctx, req), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func decode(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %v", err)
	}
	return nil
}

// failure converts an operation error into a failed Result.
func failure(method Method, err error) Result {
	if msg, code, ok := DescribeError(err); ok {
		log.Debug("%s failed: %v", method, err)
		return Result{Success: false, Message: msg, Code: code}
	}
	log.Error("%s failed: %v", method, err)
	return Result{Success: false, Message: "Internal server error.", Code: CodeInternal}
}

// DescribeError returns the user-facing message and code of a known game error.
func DescribeError(err error) (string, Code, bool) {
	switch {
	case errors.Is(err, game.ErrServerInactive):
		return "The server is not active.", CodeFailedPrecondition, true
	case errors.Is(err, game.ErrMissingPlayerFields):
		return "Name and position are required.", CodeInvalidArgument, true
	case errors.Is(err, game.ErrPlayerExists):
		return "Player name already registered.", CodeAlreadyExists, true
	case errors.Is(err, game.ErrMissingPosition):
		return "Position not specified.", CodeInvalidArgument, true
	case errors.Is(err, game.ErrGameInProgress):
		return "The game is already in progress.", CodeFailedPrecondition, true
	case errors.Is(err, game.ErrGameNotInProgress):
		return "The game is not in progress.", CodeFailedPrecondition, true
	case errors.Is(err, game.ErrNoMoreQuestions):
		return "No more questions. The game is over.", CodeFailedPrecondition, true
	case errors.Is(err, game.ErrIncompleteResults):
		return "Incomplete data to record results.", CodeInvalidArgument, true
	case errors.Is(err, game.ErrPlayerNotFound):
		return "Player not registered.", CodeNotFound, true
	default:
		return "", "", false
	}
}
