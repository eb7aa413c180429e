package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/cbodonnell/trivia/pkg/messages"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"nhooyr.io/websocket"
)

func logger() *log.Logger {
	return log.Component("network")
}

// Dispatcher runs an rpc method and returns its result record.
type Dispatcher interface {
	Dispatch(ctx context.Context, method rpc.Method, payload json.RawMessage) (interface{}, error)
}

// WSServer serves rpc calls over WebSocket connections.
// Each binary frame carries one request; every request gets exactly one
// response with the same ID, written in the order the requests arrived.
type WSServer struct {
	dispatcher     Dispatcher
	clientManager  *ClientManager
	originPatterns []string
}

type NewWSServerOptions struct {
	Dispatcher    Dispatcher
	ClientManager *ClientManager
	// OriginPatterns lists the cross-origin hosts allowed to connect.
	// "*" allows any origin.
	OriginPatterns []string
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	clientManager := opts.ClientManager
	if clientManager == nil {
		clientManager = NewClientManager()
	}
	return &WSServer{
		dispatcher:     opts.Dispatcher,
		clientManager:  clientManager,
		originPatterns: opts.OriginPatterns,
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (s *WSServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		logger().Error("Failed to upgrade to WebSocket: %v", err)
		return
	}
	conn.SetReadLimit(messages.MaxMessageSize)

	clientID, err := s.clientManager.ConnectClient(conn, r.RemoteAddr)
	if err != nil {
		logger().Error("Failed to register WebSocket client: %v", err)
		conn.Close(websocket.StatusTryAgainLater, "server busy")
		return
	}
	logger().Debug("New WebSocket connection %d from %s", clientID, r.RemoteAddr)

	s.handleWSConnection(r.Context(), clientID, conn)
}

// Shutdown closes every open connection.
func (s *WSServer) Shutdown() {
	s.clientManager.CloseAll("server shutting down")
}

// handleWSConnection handles a WebSocket connection.
func (s *WSServer) handleWSConnection(ctx context.Context, clientID uint32, conn *websocket.Conn) {
	defer func() {
		s.clientManager.DisconnectClient(clientID)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		message, err := ReadMessageFromWS(ctx, conn)
		if err != nil {
			var deserializeErr *ErrMalformedMessage
			if errors.As(err, &deserializeErr) {
				logger().Warn("Malformed message from client %d: %v", clientID, err)
				if err := WriteMessageToWS(ctx, conn, errorMessage("", err)); err != nil {
					logger().Error("Failed to write error to client %d: %v", clientID, err)
					return
				}
				continue
			}
			if errors.Is(err, errTextFrame) {
				conn.Close(websocket.StatusUnsupportedData, "binary messages only")
				return
			}
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				logger().Debug("Error reading WebSocket message from client %d: %v", clientID, err)
			}
			logger().Trace("Connection closed for client %d", clientID)
			return
		}

		response := s.handleMessage(ctx, clientID, message)
		if err := WriteMessageToWS(ctx, conn, response); err != nil {
			logger().Error("Failed to write response to client %d: %v", clientID, err)
			return
		}
	}
}

func (s *WSServer) handleMessage(ctx context.Context, clientID uint32, message *messages.Message) *messages.Message {
	method, ok := message.Type.Method()
	if !ok {
		logger().Warn("Client %d sent unsupported message type %d", clientID, message.Type)
		return errorMessage(message.ID, fmt.Errorf("unsupported message type %d", message.Type))
	}

	logger().Debug("Client %d called %s", clientID, method)
	result, err := s.dispatcher.Dispatch(ctx, method, message.Payload)
	if err != nil {
		return errorMessage(message.ID, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		logger().Error("Failed to marshal %s result: %v", method, err)
		return errorMessage(message.ID, errors.New("failed to encode result"))
	}

	return &messages.Message{
		ID:      message.ID,
		Type:    messages.MessageTypeResult,
		Payload: payload,
	}
}

func errorMessage(id string, err error) *messages.Message {
	payload, _ := json.Marshal(messages.ErrorPayload{Error: err.Error()})
	return &messages.Message{
		ID:      id,
		Type:    messages.MessageTypeError,
		Payload: payload,
	}
}

// ErrMalformedMessage is returned when a frame arrived intact but could not be decoded
type ErrMalformedMessage struct {
	Err error
}

func (e *ErrMalformedMessage) Error() string {
	return fmt.Sprintf("malformed message: %v", e.Err)
}

func (e *ErrMalformedMessage) Unwrap() error {
	return e.Err
}

var errTextFrame = errors.New("text frames are not supported")

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %w", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	messageType, data, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if messageType != websocket.MessageBinary {
		return nil, errTextFrame
	}

	msg, err := messages.DeserializeMessage(data)
	if err != nil {
		return nil, &ErrMalformedMessage{Err: err}
	}

	return msg, nil
}
