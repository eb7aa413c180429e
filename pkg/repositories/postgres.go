package repositories

import (
	"context"
	"fmt"

	gametypes "github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repository = &PostgresRepository{}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	migrations, err := readMigrations("postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}
	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) LoadQuestions(ctx context.Context) ([]gametypes.Question, error) {
	q := `
	SELECT round, question_number, position, prompt, options, correct_answer
	FROM questions ORDER BY round, id;
	`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %v", err)
	}
	defer rows.Close()

	var questions []gametypes.Question
	for rows.Next() {
		var question gametypes.Question
		if err := rows.Scan(&question.Round, &question.Number, &question.Position, &question.Prompt, &question.Options, &question.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %v", err)
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

func (r *PostgresRepository) SaveQuestions(ctx context.Context, questions []gametypes.Question) error {
	batch := &pgx.Batch{}
	for _, question := range questions {
		batch.Queue(`
		INSERT INTO questions (round, question_number, position, prompt, options, correct_answer)
		VALUES ($1, $2, $3, $4, $5, $6);
		`, question.Round, question.Number, question.Position, question.Prompt, question.Options, question.CorrectAnswer)
	}

	return r.sendBatch(ctx, batch, "question")
}

func (r *PostgresRepository) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %v", err)
	}
	return count, nil
}

func (r *PostgresRepository) SaveEvents(ctx context.Context, events []gametypes.GameEvent) error {
	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(`
		INSERT INTO game_events (type, player, round, detail, created_at)
		VALUES ($1, $2, $3, $4, $5);
		`, string(event.Type), event.Player, event.Round, event.Detail, event.Timestamp)
	}

	return r.sendBatch(ctx, batch, "event")
}

func (r *PostgresRepository) ListEvents(ctx context.Context, limit int) ([]gametypes.GameEvent, error) {
	q := `
	SELECT type, player, round, detail, created_at FROM (
		SELECT id, type, player, round, detail, created_at
		FROM game_events ORDER BY id DESC LIMIT $1
	) recent ORDER BY id ASC;
	`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %v", err)
	}
	defer rows.Close()

	events := []gametypes.GameEvent{}
	for rows.Next() {
		var event gametypes.GameEvent
		var eventType string
		if err := rows.Scan(&eventType, &event.Player, &event.Round, &event.Detail, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %v", err)
		}
		event.Type = gametypes.GameEventType(eventType)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %v", err)
	}

	return events, nil
}

// sendBatch runs all queued statements in one transaction.
func (r *PostgresRepository) sendBatch(ctx context.Context, batch *pgx.Batch, kind string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert %s: %v", kind, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
