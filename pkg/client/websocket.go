package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/messages"
	"github.com/cbodonnell/trivia/pkg/network"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// WSClient calls the server over a single WebSocket connection.
// Calls are serialized; each waits for the response carrying its ID.
type WSClient struct {
	conn *websocket.Conn
	lock sync.Mutex
}

// DialWS connects to a server's /ws endpoint, e.g. ws://localhost:9090/ws.
func DialWS(ctx context.Context, url string) (*WSClient, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %v", url, err)
	}
	conn.SetReadLimit(messages.MaxMessageSize)
	return &WSClient{conn: conn}, nil
}

func (c *WSClient) SetServerStatus(ctx context.Context, active bool) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.call(ctx, rpc.MethodSetServerStatus, rpc.SetServerStatusRequest{Active: active}, res)
}

func (c *WSClient) RegisterPlayer(ctx context.Context, name string, position string) (*rpc.RegisterPlayerResult, error) {
	res := &rpc.RegisterPlayerResult{}
	return res, c.call(ctx, rpc.MethodRegisterPlayer, rpc.RegisterPlayerRequest{Name: name, Position: position}, res)
}

func (c *WSClient) GetQuestions(ctx context.Context, position string) (*rpc.QuestionsResult, error) {
	res := &rpc.QuestionsResult{}
	return res, c.call(ctx, rpc.MethodGetQuestions, rpc.QuestionsRequest{Position: position}, res)
}

func (c *WSClient) GetStatus(ctx context.Context) (*rpc.StatusResult, error) {
	res := &rpc.StatusResult{}
	return res, c.call(ctx, rpc.MethodGetStatus, nil, res)
}

func (c *WSClient) StartGame(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.call(ctx, rpc.MethodStartGame, nil, res)
}

func (c *WSClient) NextRound(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.call(ctx, rpc.MethodNextRound, nil, res)
}

func (c *WSClient) RecordFinalResults(ctx context.Context, results types.FinalResults) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.call(ctx, rpc.MethodRecordFinalResults, results, res)
}

func (c *WSClient) ResetGame(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.call(ctx, rpc.MethodResetGame, nil, res)
}

func (c *WSClient) ResetAll(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.call(ctx, rpc.MethodResetAll, nil, res)
}

func (c *WSClient) GetLeaderboard(ctx context.Context) (*rpc.LeaderboardResult, error) {
	res := &rpc.LeaderboardResult{}
	return res, c.call(ctx, rpc.MethodGetLeaderboard, nil, res)
}

func (c *WSClient) ListEvents(ctx context.Context, limit int) (*rpc.ListEventsResult, error) {
	res := &rpc.ListEventsResult{}
	return res, c.call(ctx, rpc.MethodListEvents, rpc.ListEventsRequest{Limit: limit}, res)
}

func (c *WSClient) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}

func (c *WSClient) call(ctx context.Context, method rpc.Method, request interface{}, out interface{}) error {
	messageType, ok := messages.TypeForMethod(method)
	if !ok {
		return fmt.Errorf("no message type for method %s", method)
	}

	var payload json.RawMessage
	if request != nil {
		b, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %v", err)
		}
		payload = b
	}

	id := uuid.NewString()
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := network.WriteMessageToWS(ctx, c.conn, &messages.Message{ID: id, Type: messageType, Payload: payload}); err != nil {
		return err
	}

	for {
		response, err := network.ReadMessageFromWS(ctx, c.conn)
		if err != nil {
			return fmt.Errorf("failed to read response to %s: %w", method, err)
		}
		// a response to an abandoned earlier call
		if response.ID != id && response.ID != "" {
			continue
		}

		switch response.Type {
		case messages.MessageTypeResult:
			if err := json.Unmarshal(response.Payload, out); err != nil {
				return fmt.Errorf("failed to decode %s result: %v", method, err)
			}
			return nil
		case messages.MessageTypeError:
			errPayload := messages.ErrorPayload{}
			if err := json.Unmarshal(response.Payload, &errPayload); err != nil {
				return fmt.Errorf("failed to decode %s error: %v", method, err)
			}
			return errors.New(errPayload.Error)
		default:
			return fmt.Errorf("unexpected response type %d to %s", response.Type, method)
		}
	}
}
