package types

import "time"

// Player is a registered participant. Players are keyed by name.
type Player struct {
	Name            string    `json:"name"`
	Position        string    `json:"position"`
	Score           int       `json:"score"`
	RoundsCompleted int       `json:"roundsCompleted"`
	RegisteredAt    time.Time `json:"registeredAt"`
}

func NewPlayer(name string, position string, registeredAt time.Time) *Player {
	return &Player{
		Name:         name,
		Position:     position,
		Score:        0,
		RegisteredAt: registeredAt,
	}
}

// Copy returns a copy of the player
func (p *Player) Copy() *Player {
	cp := *p
	return &cp
}
