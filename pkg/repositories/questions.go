package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	gametypes "github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/log"
)

// DefaultQuestions is the built-in bank: two rounds, one question per position.
func DefaultQuestions() []gametypes.Question {
	return []gametypes.Question{
		{Round: 1, Number: 1, Position: "A", Prompt: "What is the capital of Mexico?", Options: []string{"Mexico City", "Guadalajara", "Monterrey", "Puebla"}, CorrectAnswer: "A"},
		{Round: 1, Number: 1, Position: "B", Prompt: "What is the capital of France?", Options: []string{"Paris", "Lyon", "Marseille", "Nice"}, CorrectAnswer: "A"},
		{Round: 1, Number: 1, Position: "C", Prompt: "What is the capital of Spain?", Options: []string{"Madrid", "Barcelona", "Valencia", "Seville"}, CorrectAnswer: "A"},
		{Round: 2, Number: 2, Position: "A", Prompt: "What is 2 + 2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "B"},
		{Round: 2, Number: 2, Position: "B", Prompt: "What is 3 * 3?", Options: []string{"6", "7", "8", "9"}, CorrectAnswer: "D"},
		{Round: 2, Number: 2, Position: "C", Prompt: "What is 10 / 2?", Options: []string{"2", "3", "4", "5"}, CorrectAnswer: "D"},
	}
}

// ReadQuestionsFile reads a JSON array of questions.
func ReadQuestionsFile(path string) ([]gametypes.Question, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %v", err)
	}
	var questions []gametypes.Question
	if err := json.Unmarshal(b, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions file %s: %v", path, err)
	}
	return questions, nil
}

// SeedQuestions saves questions only when the repository bank is empty.
// It returns the number of questions written.
func SeedQuestions(ctx context.Context, repository Repository, questions []gametypes.Question) (int, error) {
	count, err := repository.CountQuestions(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Debug("Question bank already holds %d questions, skipping seed", count)
		return 0, nil
	}
	if err := repository.SaveQuestions(ctx, questions); err != nil {
		return 0, fmt.Errorf("failed to seed questions: %v", err)
	}
	return len(questions), nil
}

// Open creates a repository from a connection string.
// Supported schemes are memory://, sqlite://<path> and postgres(ql)://...
func Open(ctx context.Context, connStr string) (Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "memory":
		return NewInMemoryRepository(nil), nil
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			path = ":memory:"
		}
		return NewSQLiteRepository(ctx, path)
	case "postgres", "postgresql":
		return NewPostgresRepository(ctx, u.String())
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
