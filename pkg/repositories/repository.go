package repositories

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	gametypes "github.com/cbodonnell/trivia/pkg/game/types"
)

//go:embed migrations
var migrationsFS embed.FS

// Repository stores the question bank and the append-only game event history.
type Repository interface {
	Close(ctx context.Context) error
	// LoadQuestions returns the question bank ordered by round, then insertion order.
	// It returns ErrNotFound when the bank is empty.
	LoadQuestions(ctx context.Context) ([]gametypes.Question, error)
	// SaveQuestions appends questions to the bank.
	SaveQuestions(ctx context.Context, questions []gametypes.Question) error
	CountQuestions(ctx context.Context) (int, error)
	// SaveEvents appends a batch of events to the history.
	SaveEvents(ctx context.Context, events []gametypes.GameEvent) error
	// ListEvents returns up to limit of the most recent events, oldest first.
	ListEvents(ctx context.Context, limit int) ([]gametypes.GameEvent, error)
}

// readMigrations returns the migration scripts of a dialect in file name order.
func readMigrations(dialect string) ([]string, error) {
	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	scripts := make([]string, 0, len(names))
	for _, name := range names {
		migrationPath := path.Join(dir, name)
		migration, err := fs.ReadFile(migrationsFS, migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}
		scripts = append(scripts, string(migration))
	}
	return scripts, nil
}
