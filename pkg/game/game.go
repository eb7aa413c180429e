package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/cbodonnell/trivia/pkg/queue"
	"github.com/cbodonnell/trivia/pkg/repositories"
	"github.com/cbodonnell/trivia/pkg/state"
)

// QuestionSource supplies the question bank loaded when the server is activated.
type QuestionSource interface {
	LoadQuestions(ctx context.Context) ([]types.Question, error)
}

// Session owns one trivia game and applies host and player operations to it.
type Session struct {
	stateManager   state.StateManager
	questionSource QuestionSource
	eventQueue     queue.Queue
	clock          func() time.Time
}

// NewSessionOptions contains options for creating a new Session.
type NewSessionOptions struct {
	StateManager   state.StateManager
	QuestionSource QuestionSource
	// EventQueue receives a GameEvent for every successful state change. Optional.
	EventQueue queue.Queue
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func NewSession(opts NewSessionOptions) *Session {
	stateManager := opts.StateManager
	if stateManager == nil {
		stateManager = state.NewInMemoryStateManager()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		stateManager:   stateManager,
		questionSource: opts.QuestionSource,
		eventQueue:     opts.EventQueue,
		clock:          clock,
	}
}

// SetServerStatus turns the server on or off.
// Turning it on resets the round and loads the question bank if none is loaded.
func (s *Session) SetServerStatus(ctx context.Context, active bool) (string, error) {
	var questions []types.Question
	if active {
		current, err := s.stateManager.Get(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get game state: %v", err)
		}
		if len(current.Questions) == 0 {
			questions, err = s.loadQuestions(ctx)
			if err != nil {
				return "", err
			}
		}
	}

	err := s.stateManager.Update(ctx, func(gs *types.GameState) error {
		gs.Active = active
		gs.Status = types.GameStatusWaiting
		if active {
			gs.CurrentRound = 0
			if len(gs.Questions) == 0 {
				gs.Questions = questions
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if active {
		log.Info("Server activated with %d questions", len(questions))
		s.emit(types.GameEvent{Type: types.GameEventTypeServerActivated})
		return "Server activated.", nil
	}
	log.Info("Server deactivated")
	s.emit(types.GameEvent{Type: types.GameEventTypeServerDeactivated})
	return "Server deactivated.", nil
}

func (s *Session) loadQuestions(ctx context.Context) ([]types.Question, error) {
	if s.questionSource == nil {
		log.Warn("No question source configured, starting with an empty bank")
		return []types.Question{}, nil
	}
	questions, err := s.questionSource.LoadQuestions(ctx)
	if err != nil {
		if repositories.IsNotFound(err) {
			log.Warn("Question bank is empty")
			return []types.Question{}, nil
		}
		return nil, fmt.Errorf("failed to load questions: %v", err)
	}
	return questions, nil
}

// RegisterPlayer adds a player to the game. Names are unique and case-sensitive.
func (s *Session) RegisterPlayer(ctx context.Context, name string, position string) (*types.Player, error) {
	name = strings.TrimSpace(name)
	position = strings.TrimSpace(position)

	var player *types.Player
	err := s.stateManager.Update(ctx, func(gs *types.GameState) error {
		if !gs.Active {
			return ErrServerInactive
		}
		if name == "" || position == "" {
			return ErrMissingPlayerFields
		}
		if _, exists := gs.Players[name]; exists {
			return ErrPlayerExists
		}
		player = types.NewPlayer(name, position, s.clock())
		gs.AddPlayer(player)
		player = player.Copy()
		return nil
	})
	if err != nil {
		log.Debug("Failed to register player %q: %v", name, err)
		return nil, err
	}

	log.Info("Player %s registered at position %s", name, position)
	s.emit(types.GameEvent{Type: types.GameEventTypePlayerRegistered, Player: name, Detail: position})
	return player, nil
}

// QuestionsForPosition returns every question assigned to a position, in bank order.
func (s *Session) QuestionsForPosition(ctx context.Context, position string) ([]types.PlayerQuestion, error) {
	gs, err := s.stateManager.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %v", err)
	}
	if !gs.Active {
		return nil, ErrServerInactive
	}
	position = strings.TrimSpace(position)
	if position == "" {
		return nil, ErrMissingPosition
	}
	return gs.QuestionsForPosition(position), nil
}

// Status returns a snapshot of the game for players and the host.
func (s *Session) Status(ctx context.Context) (*types.StatusSnapshot, error) {
	gs, err := s.stateManager.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %v", err)
	}
	return &types.StatusSnapshot{
		ServerActive:          gs.Active,
		GameStatus:            gs.Status,
		CurrentRound:          gs.CurrentRound,
		Players:               gs.PlayersByRegistration(),
		CurrentRoundResponses: gs.RoundResponses(gs.CurrentRound),
	}, nil
}

// StartGame moves the game to round 1 and clears previous answers and scores.
func (s *Session) StartGame(ctx context.Context) (string, error) {
	err := s.stateManager.Update(ctx, func(gs *types.GameState) error {
		if !gs.Active {
			return ErrServerInactive
		}
		if gs.Status == types.GameStatusInProgress {
			return ErrGameInProgress
		}
		gs.Status = types.GameStatusInProgress
		gs.CurrentRound = 1
		gs.Responses = make(map[int][]types.AnswerRecord)
		gs.ResetScores()
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Info("Game started")
	s.emit(types.GameEvent{Type: types.GameEventTypeGameStarted, Round: 1})
	return "Game started. Round 1 active.", nil
}

// NextRound advances to the next round that has questions.
// When there is none the game is over and ErrNoMoreQuestions is returned.
func (s *Session) NextRound(ctx context.Context) (string, error) {
	var nextRound int
	err := s.stateManager.Update(ctx, func(gs *types.GameState) error {
		if !gs.Active {
			return ErrServerInactive
		}
		if gs.Status != types.GameStatusInProgress {
			return ErrGameNotInProgress
		}
		nextRound = gs.CurrentRound + 1
		if !gs.HasQuestionsForRound(nextRound) {
			gs.Status = types.GameStatusGameOver
			return ErrNoMoreQuestions
		}
		gs.CurrentRound = nextRound
		gs.Responses[nextRound] = []types.AnswerRecord{}
		return nil
	})
	if errors.Is(err, ErrNoMoreQuestions) {
		log.Info("Game over after round %d", nextRound-1)
		s.emit(types.GameEvent{Type: types.GameEventTypeGameOver, Round: nextRound - 1})
		return "", err
	}
	if err != nil {
		return "", err
	}

	log.Info("Round %d started", nextRound)
	s.emit(types.GameEvent{Type: types.GameEventTypeRoundStarted, Round: nextRound})
	return fmt.Sprintf("Round %d started.", nextRound), nil
}

// RecordFinalResults stores a player's final score and appends their answers
// to the per-round responses. It does not depend on the game status.
func (s *Session) RecordFinalResults(ctx context.Context, results types.FinalResults) (string, error) {
	playerName := strings.TrimSpace(results.PlayerName)
	if playerName == "" || results.Responses == nil {
		return "", ErrIncompleteResults
	}

	err := s.stateManager.Update(ctx, func(gs *types.GameState) error {
		player, ok := gs.Players[playerName]
		if !ok {
			return ErrPlayerNotFound
		}
		player.Score = results.FinalScore
		player.RoundsCompleted = results.RoundsCompleted
		for _, resp := range results.Responses {
			gs.Responses[resp.Round] = append(gs.Responses[resp.Round], types.AnswerRecord{
				Player:    playerName,
				Position:  player.Position,
				Answer:    resp.SelectedAnswer,
				IsCorrect: resp.IsCorrect,
			})
		}
		return nil
	})
	if err != nil {
		log.Debug("Failed to record results for %q: %v", playerName, err)
		return "", err
	}

	log.Info("Recorded %d responses for %s with score %d", len(results.Responses), playerName, results.FinalScore)
	s.emit(types.GameEvent{
		Type:   types.GameEventTypeResultsRecorded,
		Player: playerName,
		Round:  results.RoundsCompleted,
		Detail: fmt.Sprintf("score=%d responses=%d", results.FinalScore, len(results.Responses)),
	})
	return "Results recorded for " + playerName, nil
}

// ResetGame returns to the waiting stage, keeping players but clearing answers and scores.
func (s *Session) ResetGame(ctx context.Context) (string, error) {
	err := s.stateManager.Update(ctx, func(gs *types.GameState) error {
		gs.Status = types.GameStatusWaiting
		gs.CurrentRound = 0
		gs.Responses = make(map[int][]types.AnswerRecord)
		gs.ResetScores()
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Info("Game reset")
	s.emit(types.GameEvent{Type: types.GameEventTypeGameReset})
	return "Game reset. Players kept.", nil
}

// ResetAll deactivates the server and clears players, answers and questions.
func (s *Session) ResetAll(ctx context.Context) (string, error) {
	if err := s.stateManager.Set(ctx, types.NewGameState()); err != nil {
		return "", err
	}

	log.Info("Server and players reset")
	s.emit(types.GameEvent{Type: types.GameEventTypeServerReset})
	return "Server and players reset. Everything cleared.", nil
}

// Leaderboard lists players by score, highest first.
func (s *Session) Leaderboard(ctx context.Context) ([]*types.Player, error) {
	gs, err := s.stateManager.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %v", err)
	}
	return gs.PlayersByScore(), nil
}

func (s *Session) emit(event types.GameEvent) {
	if s.eventQueue == nil {
		return
	}
	event.Timestamp = s.clock()
	if err := s.eventQueue.Enqueue(event); err != nil {
		log.Warn("Failed to enqueue %s event: %v", event.Type, err)
	}
}
