package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/trivia/pkg/api"
	"github.com/cbodonnell/trivia/pkg/config"
	"github.com/cbodonnell/trivia/pkg/game"
	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/cbodonnell/trivia/pkg/network"
	"github.com/cbodonnell/trivia/pkg/queue"
	"github.com/cbodonnell/trivia/pkg/repositories"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/cbodonnell/trivia/pkg/state"
	"github.com/cbodonnell/trivia/pkg/version"
	"github.com/cbodonnell/trivia/pkg/workers"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file to load")
	port := flag.Int("port", 0, "port to listen on (overrides TRIVIA_API_PORT)")
	logLevel := flag.String("log-level", "", "Log level (overrides TRIVIA_LOG_LEVEL)")
	databaseURL := flag.String("database-url", "", "memory://, sqlite://<path> or postgres://... (overrides TRIVIA_DATABASE_URL)")
	questionsFile := flag.String("questions-file", "", "JSON question bank used to seed an empty database (overrides TRIVIA_QUESTIONS_FILE)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.APIPort = *port
		case "log-level":
			cfg.LogLevel = *logLevel
		case "database-url":
			cfg.DatabaseURL = *databaseURL
		case "questions-file":
			cfg.QuestionsFile = *questionsFile
		}
	})
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting trivia server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(context.Background())

	seed := repositories.DefaultQuestions()
	if cfg.QuestionsFile != "" {
		seed, err = repositories.ReadQuestionsFile(cfg.QuestionsFile)
		if err != nil {
			panic(fmt.Sprintf("Failed to read questions: %v", err))
		}
	}
	seeded, err := repositories.SeedQuestions(ctx, repository, seed)
	if err != nil {
		panic(fmt.Sprintf("Failed to seed questions: %v", err))
	}
	if seeded > 0 {
		log.Info("Seeded question bank with %d questions", seeded)
	}

	eventQueue := queue.NewInMemoryQueue(cfg.EventQueueSize)
	archiveWorker := workers.NewArchiveWorker(workers.NewArchiveWorkerOptions{
		Repository: repository,
		EventQueue: eventQueue,
		Interval:   cfg.ArchiveInterval,
	})
	// the worker outlives ctx so events from requests drained during shutdown are archived
	archiveCtx, stopArchive := context.WithCancel(context.Background())
	defer stopArchive()
	archiveDone := make(chan struct{})
	go func() {
		archiveWorker.Start(archiveCtx)
		close(archiveDone)
	}()

	session := game.NewSession(game.NewSessionOptions{
		StateManager:   state.NewInMemoryStateManager(),
		QuestionSource: repository,
		EventQueue:     eventQueue,
	})
	service := rpc.NewService(rpc.NewServiceOptions{
		Session: session,
		Events:  repository,
	})

	wsServer := network.NewWSServer(network.NewWSServerOptions{
		Dispatcher:     service,
		OriginPatterns: []string{originPattern(cfg.AllowOrigin)},
	})
	apiServerOpts := api.NewAPIServerOptions{
		Port:        cfg.APIPort,
		Service:     service,
		WSHandler:   wsServer,
		AllowOrigin: cfg.AllowOrigin,
	}
	if cfg.TLSEnabled() {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdown(server, stopArchive, archiveDone)
	log.Info("Server stopped")
}

type stopper interface {
	Stop(ctx context.Context) error
}

// shutdown stops the server, then the archive worker, and waits for its final flush.
func shutdown(server stopper, stopArchive context.CancelFunc, archiveDone <-chan struct{}) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
	stopArchive()
	<-archiveDone
}

// originPattern turns an allowed origin such as https://host:port into the
// host pattern the WebSocket handshake matches against.
func originPattern(allowOrigin string) string {
	u, err := url.Parse(allowOrigin)
	if err != nil || u.Host == "" {
		return allowOrigin
	}
	return u.Host
}
