package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	gametypes "github.com/cbodonnell/trivia/pkg/game/types"
	_ "github.com/mattn/go-sqlite3"
)

var _ Repository = &SQLiteRepository{}

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	migrations, err := readMigrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) LoadQuestions(ctx context.Context) ([]gametypes.Question, error) {
	q := `
	SELECT round, question_number, position, prompt, options, correct_answer
	FROM questions ORDER BY round, id;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %v", err)
	}
	defer rows.Close()

	var questions []gametypes.Question
	for rows.Next() {
		var question gametypes.Question
		var options string
		if err := rows.Scan(&question.Round, &question.Number, &question.Position, &question.Prompt, &options, &question.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %v", err)
		}
		if err := json.Unmarshal([]byte(options), &question.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options of question %d/%s: %v", question.Round, question.Position, err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %v", err)
	}

	if len(questions) == 0 {
		return nil, &ErrNotFound{What: "questions"}
	}
	return questions, nil
}

func (r *SQLiteRepository) SaveQuestions(ctx context.Context, questions []gametypes.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT INTO questions (round, question_number, position, prompt, options, correct_answer)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	for _, question := range questions {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("failed to encode options: %v", err)
		}
		if _, err := tx.ExecContext(ctx, q, question.Round, question.Number, question.Position, question.Prompt, string(options), question.CorrectAnswer); err != nil {
			return fmt.Errorf("failed to insert question: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions;").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %v", err)
	}
	return count, nil
}

func (r *SQLiteRepository) SaveEvents(ctx context.Context, events []gametypes.GameEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT INTO game_events (type, player, round, detail, created_at)
	VALUES (?, ?, ?, ?, ?);
	`
	for _, event := range events {
		if _, err := tx.ExecContext(ctx, q, string(event.Type), event.Player, event.Round, event.Detail, event.Timestamp.UnixMilli()); err != nil {
			return fmt.Errorf("failed to insert event: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, limit int) ([]gametypes.GameEvent, error) {
	q := `
	SELECT type, player, round, detail, created_at FROM (
		SELECT id, type, player, round, detail, created_at
		FROM game_events ORDER BY id DESC LIMIT ?
	) ORDER BY id ASC;
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %v", err)
	}
	defer rows.Close()

	events := []gametypes.GameEvent{}
	for rows.Next() {
		var event gametypes.GameEvent
		var eventType string
		var createdAt int64
		if err := rows.Scan(&eventType, &event.Player, &event.Round, &event.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %v", err)
		}
		event.Type = gametypes.GameEventType(eventType)
		event.Timestamp = time.UnixMilli(createdAt).UTC()
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %v", err)
	}

	return events, nil
}
