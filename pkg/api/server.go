package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/trivia/pkg/api/handlers"
	"github.com/cbodonnell/trivia/pkg/api/middleware"
	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server    *http.Server
	tls       *TLSConfig
	wsHandler WSHandler
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// WSHandler serves WebSocket upgrades at /ws and closes its connections on Stop.
type WSHandler interface {
	http.Handler
	Shutdown()
}

type NewAPIServerOptions struct {
	Port    int
	TLS     *TLSConfig
	Service *rpc.Service
	// WSHandler is mounted at /ws when set.
	WSHandler   WSHandler
	AllowOrigin string
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	return &APIServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 10 * time.Second,
		},
		tls:       opts.TLS,
		wsHandler: opts.WSHandler,
	}
}

// NewRouter builds the API routes
func NewRouter(opts NewAPIServerOptions) http.Handler {
	// player names may contain a slash, so route on the escaped path
	r := mux.NewRouter().UseEncodedPath()
	r.Use(
		middleware.NewRequestIDMiddleware(),
		middleware.NewLoggingMiddleware(),
		middleware.NewCORSMiddleware(opts.AllowOrigin),
	)

	service := opts.Service
	r.HandleFunc("/healthz", handlers.HandleHealth()).Methods(http.MethodGet)
	r.HandleFunc("/server", handlers.HandleSetServerStatus(service)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/players", handlers.HandleRegisterPlayer(service)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/players/{name}/results", handlers.HandleRecordFinalResults(service)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/questions", handlers.HandleGetQuestions(service)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/status", handlers.HandleGetStatus(service)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/game/start", handlers.HandleStartGame(service)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/game/next", handlers.HandleNextRound(service)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/game/reset", handlers.HandleResetGame(service)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/reset", handlers.HandleResetAll(service)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/leaderboard", handlers.HandleGetLeaderboard(service)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/events", handlers.HandleListEvents(service)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/rpc", handlers.HandleRPC(service)).Methods(http.MethodPost, http.MethodOptions)
	if opts.WSHandler != nil {
		r.Handle("/ws", opts.WSHandler).Methods(http.MethodGet)
	}

	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Component("api").Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Component("api").Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Component("api").Info("API server closed")
			return
		}
		log.Component("api").Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	// hijacked WebSocket connections are not tracked by http.Server
	if s.wsHandler != nil {
		s.wsHandler.Shutdown()
	}
	return s.server.Shutdown(ctx)
}
