package types

import "sort"

type GameState struct {
	// Active is true while the server accepts players
	Active bool
	// Status is the current lifecycle stage
	Status GameStatus
	// CurrentRound is 0 before the game starts
	CurrentRound int
	// Players maps player names to players
	Players map[string]*Player
	// Questions is the loaded question bank in bank order
	Questions []Question
	// Responses maps round numbers to the answers recorded for that round
	Responses map[int][]AnswerRecord
}

func NewGameState() *GameState {
	return &GameState{
		Active:       false,
		Status:       GameStatusWaiting,
		CurrentRound: 0,
		Players:      make(map[string]*Player),
		Questions:    []Question{},
		Responses:    make(map[int][]AnswerRecord),
	}
}

// Copy returns a deep copy of the game state.
func (g *GameState) Copy() *GameState {
	newGameState := &GameState{
		Active:       g.Active,
		Status:       g.Status,
		CurrentRound: g.CurrentRound,
		Players:      make(map[string]*Player, len(g.Players)),
		Questions:    make([]Question, 0, len(g.Questions)),
		Responses:    make(map[int][]AnswerRecord, len(g.Responses)),
	}
	for name, player := range g.Players {
		newGameState.Players[name] = player.Copy()
	}
	for _, q := range g.Questions {
		newGameState.Questions = append(newGameState.Questions, q.Copy())
	}
	for round, records := range g.Responses {
		cp := make([]AnswerRecord, len(records))
		copy(cp, records)
		newGameState.Responses[round] = cp
	}
	return newGameState
}

func (g *GameState) AddPlayer(player *Player) {
	g.Players[player.Name] = player
}

func (g *GameState) ResetScores() {
	for _, player := range g.Players {
		player.Score = 0
		player.RoundsCompleted = 0
	}
}

// HasQuestionsForRound reports whether any question belongs to the round.
func (g *GameState) HasQuestionsForRound(round int) bool {
	for _, q := range g.Questions {
		if q.Round == round {
			return true
		}
	}
	return false
}

// QuestionsForPosition returns the questions of a position in bank order.
func (g *GameState) QuestionsForPosition(position string) []PlayerQuestion {
	questions := []PlayerQuestion{}
	for _, q := range g.Questions {
		if q.Position == position {
			questions = append(questions, NewPlayerQuestion(q))
		}
	}
	return questions
}

// RoundResponses returns a copy of the answers recorded for a round, never nil.
func (g *GameState) RoundResponses(round int) []AnswerRecord {
	records := g.Responses[round]
	cp := make([]AnswerRecord, len(records))
	copy(cp, records)
	return cp
}

// PlayersByRegistration lists players ordered by registration time, then name.
func (g *GameState) PlayersByRegistration() []*Player {
	players := g.playerList()
	sort.SliceStable(players, func(i, j int) bool {
		if !players[i].RegisteredAt.Equal(players[j].RegisteredAt) {
			return players[i].RegisteredAt.Before(players[j].RegisteredAt)
		}
		return players[i].Name < players[j].Name
	})
	return players
}

// PlayersByScore lists players ordered by score descending, then name.
func (g *GameState) PlayersByScore() []*Player {
	players := g.playerList()
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Name < players[j].Name
	})
	return players
}

func (g *GameState) playerList() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, player := range g.Players {
		players = append(players, player.Copy())
	}
	return players
}
