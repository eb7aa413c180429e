package types

// GameStatus is the lifecycle stage of the game.
type GameStatus string

const (
	GameStatusWaiting    GameStatus = "WAITING"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
	GameStatusGameOver   GameStatus = "GAME_OVER"
)

// Question is a single entry of the question bank.
// Questions sharing a round are split between positions.
type Question struct {
	Round         int      `json:"round"`
	Number        int      `json:"questionNumber"`
	Position      string   `json:"position"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Copy returns a copy of the question that does not share its options slice.
func (q Question) Copy() Question {
	cp := q
	if q.Options != nil {
		cp.Options = make([]string, len(q.Options))
		copy(cp.Options, q.Options)
	}
	return cp
}

// PlayerQuestion is the view of a question handed to a player.
type PlayerQuestion struct {
	Round         int      `json:"round"`
	Number        int      `json:"questionNumber"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// NewPlayerQuestion strips the position from a question.
func NewPlayerQuestion(q Question) PlayerQuestion {
	cp := q.Copy()
	return PlayerQuestion{
		Round:         cp.Round,
		Number:        cp.Number,
		Prompt:        cp.Prompt,
		Options:       cp.Options,
		CorrectAnswer: cp.CorrectAnswer,
	}
}

// AnswerRecord is one player's answer for a round.
type AnswerRecord struct {
	Player    string `json:"player"`
	Position  string `json:"position"`
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"isCorrect"`
}

// SubmittedResponse is a per-round answer reported by a player at the end of the game.
type SubmittedResponse struct {
	Round          int    `json:"round"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// StatusSnapshot is the view of the game shared with players and the host.
type StatusSnapshot struct {
	ServerActive          bool           `json:"serverActive"`
	GameStatus            GameStatus     `json:"gameStatus"`
	CurrentRound          int            `json:"currentRound"`
	Players               []*Player      `json:"players"`
	CurrentRoundResponses []AnswerRecord `json:"currentRoundResponses"`
}

// FinalResults is what a player reports after answering every round.
type FinalResults struct {
	PlayerName      string              `json:"playerName"`
	Responses       []SubmittedResponse `json:"responses"`
	FinalScore      int                 `json:"finalScore"`
	RoundsCompleted int                 `json:"roundsCompleted"`
}
