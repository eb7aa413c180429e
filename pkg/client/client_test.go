package client

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/trivia/pkg/api"
	"github.com/cbodonnell/trivia/pkg/game"
	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/network"
	"github.com/cbodonnell/trivia/pkg/repositories"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repository := repositories.NewInMemoryRepository(repositories.DefaultQuestions())
	session := game.NewSession(game.NewSessionOptions{QuestionSource: repository})
	service := rpc.NewService(rpc.NewServiceOptions{Session: session, Events: repository})
	srv := httptest.NewServer(api.NewRouter(api.NewAPIServerOptions{
		Service:   service,
		WSHandler: network.NewWSServer(network.NewWSServerOptions{Dispatcher: service}),
	}))
	t.Cleanup(srv.Close)
	return srv
}

type connector struct {
	name    string
	connect func(t *testing.T, ctx context.Context, srv *httptest.Server) Client
}

func connectors() []connector {
	return []connector{
		{
			name: "http",
			connect: func(t *testing.T, ctx context.Context, srv *httptest.Server) Client {
				return NewHTTPClient(NewHTTPClientOptions{BaseURL: srv.URL + "/"})
			},
		},
		{
			name: "websocket",
			connect: func(t *testing.T, ctx context.Context, srv *httptest.Server) Client {
				c, err := DialWS(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
				require.NoError(t, err)
				return c
			},
		},
	}
}

func TestClients(t *testing.T) {
	for _, tt := range connectors() {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			c := tt.connect(t, ctx, newTestServer(t))
			defer c.Close()
			exerciseClient(t, ctx, c)
		})
	}
}

func TestClients_playerNameWithSlash(t *testing.T) {
	for _, tt := range connectors() {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			c := tt.connect(t, ctx, newTestServer(t))
			defer c.Close()

			res, err := c.SetServerStatus(ctx, true)
			require.NoError(t, err)
			require.True(t, res.Success)

			registered, err := c.RegisterPlayer(ctx, "AC/DC", "A")
			require.NoError(t, err)
			require.True(t, registered.Success, registered.Message)

			res, err = c.RecordFinalResults(ctx, types.FinalResults{
				PlayerName: "AC/DC",
				Responses:  []types.SubmittedResponse{{Round: 1, SelectedAnswer: "B", IsCorrect: true}},
				FinalScore: 10,
			})
			require.NoError(t, err)
			assert.True(t, res.Success, res.Message)
			assert.Equal(t, "Results recorded for AC/DC", res.Message)

			leaderboard, err := c.GetLeaderboard(ctx)
			require.NoError(t, err)
			require.Len(t, leaderboard.Players, 1)
			assert.Equal(t, 10, leaderboard.Players[0].Score)
		})
	}
}

func exerciseClient(t *testing.T, ctx context.Context, c Client) {
	registered, err := c.RegisterPlayer(ctx, "ana", "A")
	require.NoError(t, err)
	assert.False(t, registered.Success)
	assert.Equal(t, rpc.CodeFailedPrecondition, registered.Code)

	res, err := c.SetServerStatus(ctx, true)
	require.NoError(t, err)
	assert.True(t, res.Success)

	registered, err = c.RegisterPlayer(ctx, "ana", "A")
	require.NoError(t, err)
	assert.True(t, registered.Success)
	assert.Equal(t, "Welcome, ana!", registered.Message)

	registered, err = c.RegisterPlayer(ctx, "bo b", "C")
	require.NoError(t, err)
	assert.True(t, registered.Success)

	questions, err := c.GetQuestions(ctx, "C")
	require.NoError(t, err)
	require.True(t, questions.Success)
	assert.Len(t, questions.Questions, 2)

	res, err = c.StartGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Game started. Round 1 active.", res.Message)

	res, err = c.NextRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Round 2 started.", res.Message)

	res, err = c.NextRound(ctx)
	require.NoError(t, err)
	assert.False(t, res.Success)

	status, err := c.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.GameStatusGameOver, status.GameStatus)
	assert.Len(t, status.Players, 2)

	res, err = c.RecordFinalResults(ctx, types.FinalResults{
		PlayerName:      "bo b",
		Responses:       []types.SubmittedResponse{{Round: 1, SelectedAnswer: "A", IsCorrect: true}},
		FinalScore:      10,
		RoundsCompleted: 2,
	})
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)

	leaderboard, err := c.GetLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, leaderboard.Players, 2)
	assert.Equal(t, "bo b", leaderboard.Players[0].Name)

	events, err := c.ListEvents(ctx, 10)
	require.NoError(t, err)
	assert.True(t, events.Success)

	res, err = c.ResetGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Game reset. Players kept.", res.Message)

	res, err = c.ResetAll(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)

	status, err = c.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.ServerActive)
}

func TestHTTPClient_unreachable(t *testing.T) {
	srv := newTestServer(t)
	baseURL := srv.URL
	srv.Close()

	c := NewHTTPClient(NewHTTPClientOptions{BaseURL: baseURL})
	_, err := c.GetStatus(context.Background())
	assert.Error(t, err)
}
