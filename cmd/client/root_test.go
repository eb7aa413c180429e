package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

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

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	for _, transport := range []string{"http", "ws"} {
		t.Run(transport, func(t *testing.T) {
			srv := newTestServer(t)
			base := []string{"--server", srv.URL}
			if transport == "ws" {
				base = append(base, "--ws")
			}
			cli := func(args ...string) (string, error) {
				return run(t, append(append([]string{}, args...), base...)...)
			}

			_, err := cli("register", "ana", "A")
			assert.EqualError(t, err, "The server is not active. You cannot join.")

			out, err := cli("activate")
			require.NoError(t, err)
			assert.Contains(t, out, "Server activated.")

			out, err = cli("register", "ana", "A")
			require.NoError(t, err)
			assert.Contains(t, out, `"playerName": "ana"`)

			out, err = cli("questions", "A")
			require.NoError(t, err)
			assert.Contains(t, out, "What is the capital of Mexico?")

			_, err = cli("start")
			require.NoError(t, err)
			_, err = cli("next")
			require.NoError(t, err)
			_, err = cli("next")
			assert.EqualError(t, err, "No more questions. The game is over.")

			out, err = cli("results", "ana", "--score", "20", "--rounds", "2", "--answer", "1:A:true", "--answer", "2:B:true")
			require.NoError(t, err)
			assert.Contains(t, out, "Results recorded for ana")

			out, err = cli("leaderboard")
			require.NoError(t, err)
			assert.Contains(t, out, `"score": 20`)

			out, err = cli("status")
			require.NoError(t, err)
			assert.Contains(t, out, string(types.GameStatusGameOver))

			_, err = cli("events", "--limit", "5")
			require.NoError(t, err)
			_, err = cli("reset")
			require.NoError(t, err)
			_, err = cli("reset-all")
			require.NoError(t, err)
			_, err = cli("deactivate")
			require.NoError(t, err)
		})
	}
}

func TestCLI_argumentErrors(t *testing.T) {
	srv := newTestServer(t)

	_, err := run(t, "register", "ana", "--server", srv.URL)
	assert.Error(t, err)

	_, err = run(t, "results", "ana", "--answer", "one:A:true", "--server", srv.URL)
	assert.Error(t, err)

	_, err = run(t, "status", "--log-level", "loud", "--server", srv.URL)
	assert.Error(t, err)
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in      string
		want    types.SubmittedResponse
		wantErr bool
	}{
		{in: "1:A:true", want: types.SubmittedResponse{Round: 1, SelectedAnswer: "A", IsCorrect: true}},
		{in: "2:D:false", want: types.SubmittedResponse{Round: 2, SelectedAnswer: "D"}},
		{in: "2:D", wantErr: true},
		{in: "x:D:true", wantErr: true},
		{in: "2:D:maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAnswer(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWSURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:9090/ws", wsURL("http://localhost:9090"))
	assert.Equal(t, "wss://trivia.example.com/ws", wsURL("https://trivia.example.com/"))
	assert.Equal(t, "ws://host/ws", wsURL("ws://host/ws"))
}
