package state

import (
	"context"

	gametypes "github.com/cbodonnell/trivia/pkg/game/types"
)

// StateManager provides shared access to the game state.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current game state.
	Get(ctx context.Context) (*gametypes.GameState, error)
	// Set sets the current game state.
	Set(ctx context.Context, gameState *gametypes.GameState) error
	// Update applies fn to the current game state while holding exclusive access.
	// Changes made by fn are kept even when fn returns an error.
	Update(ctx context.Context, fn func(gameState *gametypes.GameState) error) error
}
