package rpc

import "github.com/cbodonnell/trivia/pkg/game/types"

// Method names a remote-callable operation.
type Method string

const (
	MethodSetServerStatus    Method = "setServerStatus"
	MethodRegisterPlayer     Method = "registerPlayer"
	MethodGetQuestions       Method = "getQuestions"
	MethodGetStatus          Method = "getStatus"
	MethodStartGame          Method = "startGame"
	MethodNextRound          Method = "nextRound"
	MethodRecordFinalResults Method = "recordFinalResults"
	MethodResetGame          Method = "resetGame"
	MethodResetAll           Method = "resetAll"
	MethodGetLeaderboard     Method = "getLeaderboard"
	MethodListEvents         Method = "listEvents"
)

// Code classifies a failed Result.
type Code string

const (
	CodeInvalidArgument    Code = "invalid_argument"
	CodeAlreadyExists      Code = "already_exists"
	CodeNotFound           Code = "not_found"
	CodeFailedPrecondition Code = "failed_precondition"
	CodeUnavailable        Code = "unavailable"
	CodeInternal           Code = "internal"
)

// Result is the outcome shared by every response.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    Code   `json:"code,omitempty"`
}

// Outcome returns the shared part of a response, including when r is embedded.
func (r Result) Outcome() Result {
	return r
}

type SetServerStatusRequest struct {
	Active bool `json:"active"`
}

type RegisterPlayerRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type RegisterPlayerResult struct {
	Result
	PlayerName string `json:"playerName,omitempty"`
	Position   string `json:"position,omitempty"`
	Score      int    `json:"score"`
}

type QuestionsRequest struct {
	Position string `json:"position"`
}

type QuestionsResult struct {
	Result
	Questions []types.PlayerQuestion `json:"questions"`
}

type StatusResult struct {
	Result
	types.StatusSnapshot
}

type RecordFinalResultsRequest = types.FinalResults

type LeaderboardResult struct {
	Result
	Players []*types.Player `json:"players"`
}

type ListEventsRequest struct {
	Limit int `json:"limit"`
}

type ListEventsResult struct {
	Result
	Events []types.GameEvent `json:"events"`
}
