package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cbodonnell/trivia/pkg/api/middleware"
	"github.com/cbodonnell/trivia/pkg/game"
	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/network"
	"github.com/cbodonnell/trivia/pkg/repositories"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repository := repositories.NewInMemoryRepository(repositories.DefaultQuestions())
	session := game.NewSession(game.NewSessionOptions{QuestionSource: repository})
	service := rpc.NewService(rpc.NewServiceOptions{Session: session, Events: repository})
	return NewRouter(NewAPIServerOptions{
		Service:     service,
		WSHandler:   network.NewWSServer(network.NewWSServerOptions{Dispatcher: service}),
		AllowOrigin: "*",
	})
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestRouter_gameFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/players", rpc.RegisterPlayerRequest{Name: "ana", Position: "A"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	res := rpc.RegisterPlayerResult{}
	decode(t, rec, &res)
	assert.Equal(t, "The server is not active. You cannot join.", res.Message)

	rec = do(t, h, http.MethodPut, "/server", rpc.SetServerStatusRequest{Active: true})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/players", rpc.RegisterPlayerRequest{Name: "ana", Position: "A"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &res)
	assert.Equal(t, "Welcome, ana!", res.Message)

	rec = do(t, h, http.MethodPost, "/players", rpc.RegisterPlayerRequest{Name: "ana", Position: "B"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/players", rpc.RegisterPlayerRequest{Name: " ", Position: "B"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/questions?position=B", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	questions := rpc.QuestionsResult{}
	decode(t, rec, &questions)
	require.Len(t, questions.Questions, 2)
	assert.Equal(t, 1, questions.Questions[0].Round)

	rec = do(t, h, http.MethodGet, "/questions", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/game/start", nil).Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/game/start", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/game/next", nil).Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/game/next", nil).Code)

	rec = do(t, h, http.MethodGet, "/status", nil)
	status := rpc.StatusResult{}
	decode(t, rec, &status)
	assert.Equal(t, types.GameStatusGameOver, status.GameStatus)
	assert.Equal(t, 2, status.CurrentRound)

	rec = do(t, h, http.MethodPost, "/players/ana/results", types.FinalResults{
		Responses:       []types.SubmittedResponse{{Round: 1, SelectedAnswer: "A", IsCorrect: true}},
		FinalScore:      10,
		RoundsCompleted: 2,
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/players/bob/results", types.FinalResults{Responses: []types.SubmittedResponse{}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/leaderboard", nil)
	leaderboard := rpc.LeaderboardResult{}
	decode(t, rec, &leaderboard)
	require.Len(t, leaderboard.Players, 1)
	assert.Equal(t, 10, leaderboard.Players[0].Score)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/game/reset", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/reset", nil).Code)

	rec = do(t, h, http.MethodGet, "/status", nil)
	decode(t, rec, &status)
	assert.False(t, status.ServerActive)
	assert.Empty(t, status.Players)
}

func TestRouter_requestValidation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "malformed body", method: http.MethodPut, path: "/server", body: `{"active":`, wantStatus: http.StatusBadRequest},
		{name: "bad limit", method: http.MethodGet, path: "/events?limit=many", wantStatus: http.StatusBadRequest},
		{name: "events", method: http.MethodGet, path: "/events?limit=5", wantStatus: http.StatusOK},
		{name: "wrong method", method: http.MethodGet, path: "/game/start", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "health", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "rpc", method: http.MethodPost, path: "/rpc", body: `{"method":"getStatus"}`, wantStatus: http.StatusOK},
		{name: "rpc unknown method", method: http.MethodPost, path: "/rpc", body: `{"method":"launchRockets"}`, wantStatus: http.StatusNotFound},
		{name: "rpc failed result", method: http.MethodPost, path: "/rpc", body: `{"method":"nextRound"}`, wantStatus: http.StatusConflict},
		{name: "rpc invalid argument", method: http.MethodPost, path: "/rpc", body: `{"method":"recordFinalResults","payload":{}}`, wantStatus: http.StatusBadRequest},
		{name: "rpc not found", method: http.MethodPost, path: "/rpc", body: `{"method":"recordFinalResults","payload":{"playerName":"zoe","responses":[]}}`, wantStatus: http.StatusNotFound},
		{name: "rpc bad payload", method: http.MethodPost, path: "/rpc", body: `{"method":"registerPlayer","payload":"nope"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_middleware(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/status", nil)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))

	for _, path := range []string{"/players", "/questions", "/status", "/leaderboard", "/events"} {
		req = httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Headers", middleware.RequestIDHeader)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
	}
}
