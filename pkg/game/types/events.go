package types

import "time"

type GameEventType string

const (
	GameEventTypeServerActivated   GameEventType = "server_activated"
	GameEventTypeServerDeactivated GameEventType = "server_deactivated"
	GameEventTypePlayerRegistered  GameEventType = "player_registered"
	GameEventTypeGameStarted       GameEventType = "game_started"
	GameEventTypeRoundStarted      GameEventType = "round_started"
	GameEventTypeGameOver          GameEventType = "game_over"
	GameEventTypeResultsRecorded   GameEventType = "results_recorded"
	GameEventTypeGameReset         GameEventType = "game_reset"
	GameEventTypeServerReset       GameEventType = "server_reset"
)

// GameEvent is an entry of the append-only session history.
type GameEvent struct {
	Type      GameEventType `json:"type"`
	Player    string        `json:"player,omitempty"`
	Round     int           `json:"round"`
	Detail    string        `json:"detail,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
