package messages

import (
	"encoding/json"

	"github.com/cbodonnell/trivia/pkg/rpc"
)

const (
	// MaxMessageSize is the largest compressed message a peer will read.
	MaxMessageSize = 1 << 20
)

type MessageType byte

// Request types mirror rpc methods. Result and Error are only sent by the server.
const (
	MessageTypeSetServerStatus MessageType = iota + 1
	MessageTypeRegisterPlayer
	MessageTypeGetQuestions
	MessageTypeGetStatus
	MessageTypeStartGame
	MessageTypeNextRound
	MessageTypeRecordFinalResults
	MessageTypeResetGame
	MessageTypeResetAll
	MessageTypeGetLeaderboard
	MessageTypeListEvents
	MessageTypeResult
	MessageTypeError
)

var methodsByType = map[MessageType]rpc.Method{
	MessageTypeSetServerStatus:    rpc.MethodSetServerStatus,
	MessageTypeRegisterPlayer:     rpc.MethodRegisterPlayer,
	MessageTypeGetQuestions:       rpc.MethodGetQuestions,
	MessageTypeGetStatus:          rpc.MethodGetStatus,
	MessageTypeStartGame:          rpc.MethodStartGame,
	MessageTypeNextRound:          rpc.MethodNextRound,
	MessageTypeRecordFinalResults: rpc.MethodRecordFinalResults,
	MessageTypeResetGame:          rpc.MethodResetGame,
	MessageTypeResetAll:           rpc.MethodResetAll,
	MessageTypeGetLeaderboard:     rpc.MethodGetLeaderboard,
	MessageTypeListEvents:         rpc.MethodListEvents,
}

var typesByMethod = func() map[rpc.Method]MessageType {
	m := make(map[rpc.Method]MessageType, len(methodsByType))
	for t, method := range methodsByType {
		m[method] = t
	}
	return m
}()

// Method returns the rpc method a request type invokes.
func (t MessageType) Method() (rpc.Method, bool) {
	method, ok := methodsByType[t]
	return method, ok
}

// TypeForMethod returns the request type that invokes method.
func TypeForMethod(method rpc.Method) (MessageType, bool) {
	t, ok := typesByMethod[method]
	return t, ok
}

// Message represents a generic message for serialization/deserialization
type Message struct {
	// ID correlates a response with its request.
	ID      string          `json:"id"`
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is the payload of a MessageTypeError response.
type ErrorPayload struct {
	Error string `json:"error"`
}
