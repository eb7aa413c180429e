package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/cbodonnell/trivia/pkg/rpc"
)

const DefaultTimeout = 10 * time.Second

// HTTPClient calls the JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type NewHTTPClientOptions struct {
	BaseURL string
	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
}

func NewHTTPClient(opts NewHTTPClientOptions) *HTTPClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *HTTPClient) SetServerStatus(ctx context.Context, active bool) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.do(ctx, http.MethodPut, "/server", rpc.SetServerStatusRequest{Active: active}, res)
}

func (c *HTTPClient) RegisterPlayer(ctx context.Context, name string, position string) (*rpc.RegisterPlayerResult, error) {
	res := &rpc.RegisterPlayerResult{}
	return res, c.do(ctx, http.MethodPost, "/players", rpc.RegisterPlayerRequest{Name: name, Position: position}, res)
}

func (c *HTTPClient) GetQuestions(ctx context.Context, position string) (*rpc.QuestionsResult, error) {
	res := &rpc.QuestionsResult{}
	return res, c.do(ctx, http.MethodGet, "/questions?position="+url.QueryEscape(position), nil, res)
}

func (c *HTTPClient) GetStatus(ctx context.Context) (*rpc.StatusResult, error) {
	res := &rpc.StatusResult{}
	return res, c.do(ctx, http.MethodGet, "/status", nil, res)
}

func (c *HTTPClient) StartGame(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.do(ctx, http.MethodPost, "/game/start", nil, res)
}

func (c *HTTPClient) NextRound(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.do(ctx, http.MethodPost, "/game/next", nil, res)
}

func (c *HTTPClient) RecordFinalResults(ctx context.Context, results types.FinalResults) (*rpc.Result, error) {
	res := &rpc.Result{}
	path := "/players/" + url.PathEscape(results.PlayerName) + "/results"
	return res, c.do(ctx, http.MethodPost, path, results, res)
}

func (c *HTTPClient) ResetGame(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.do(ctx, http.MethodPost, "/game/reset", nil, res)
}

func (c *HTTPClient) ResetAll(ctx context.Context) (*rpc.Result, error) {
	res := &rpc.Result{}
	return res, c.do(ctx, http.MethodPost, "/reset", nil, res)
}

func (c *HTTPClient) GetLeaderboard(ctx context.Context) (*rpc.LeaderboardResult, error) {
	res := &rpc.LeaderboardResult{}
	return res, c.do(ctx, http.MethodGet, "/leaderboard", nil, res)
}

func (c *HTTPClient) ListEvents(ctx context.Context, limit int) (*rpc.ListEventsResult, error) {
	res := &rpc.ListEventsResult{}
	path := "/events"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return res, c.do(ctx, http.MethodGet, path, nil, res)
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// do sends body as JSON and decodes the response into out.
// Failed operations still carry a JSON result, so non-2xx statuses are only
// an error when the body cannot be decoded.
func (c *HTTPClient) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}
