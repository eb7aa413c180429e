package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cbodonnell/trivia/pkg/client"
	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/cbodonnell/trivia/pkg/version"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:9090"

type rootOptions struct {
	serverURL string
	useWS     bool
	timeout   time.Duration
	logLevel  string

	client client.Client
}

// newRootCmd builds the trivia CLI. Every subcommand prints the server's
// result record as JSON and exits non-zero when the operation failed.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	serverURL := os.Getenv("TRIVIA_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	rootCmd := &cobra.Command{
		Use:           "trivia",
		Short:         "Host or play a trivia game against a trivia server.",
		Version:       version.Get(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLogLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetDefaultLogger(log.New(cmd.ErrOrStderr(), "", log.DefaultLoggerFlag, level))

			if opts.useWS {
				ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
				defer cancel()
				c, err := client.DialWS(ctx, wsURL(opts.serverURL))
				if err != nil {
					return err
				}
				opts.client = c
				return nil
			}
			opts.client = client.NewHTTPClient(client.NewHTTPClientOptions{BaseURL: opts.serverURL})
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.client == nil {
				return nil
			}
			return opts.client.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.serverURL, "server", "s", serverURL, "server base URL (env TRIVIA_SERVER_URL)")
	flags.BoolVar(&opts.useWS, "ws", false, "call the server over its WebSocket endpoint")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-call timeout")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(
		newServerStatusCmd(opts, "activate", true),
		newServerStatusCmd(opts, "deactivate", false),
		newRegisterCmd(opts),
		newQuestionsCmd(opts),
		newStatusCmd(opts),
		newStartCmd(opts),
		newNextCmd(opts),
		newResultsCmd(opts),
		newResetCmd(opts),
		newResetAllCmd(opts),
		newLeaderboardCmd(opts),
		newEventsCmd(opts),
	)

	return rootCmd
}

// callContext bounds a single call by the --timeout flag.
func (o *rootOptions) callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

// wsURL maps http(s)://host to ws(s)://host/ws.
func wsURL(serverURL string) string {
	u := strings.TrimRight(serverURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	if !strings.HasSuffix(u, "/ws") {
		u += "/ws"
	}
	return u
}

// printResult writes v as indented JSON and turns a failed result into an error.
func printResult(out io.Writer, result rpc.Result, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %v", err)
	}
	fmt.Fprintln(out, string(b))
	if !result.Success {
		if result.Message == "" {
			return errors.New("operation failed")
		}
		return errors.New(result.Message)
	}
	return nil
}
