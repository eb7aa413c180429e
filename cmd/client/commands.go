package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cbodonnell/trivia/pkg/game/types"
	"github.com/spf13/cobra"
)

func newServerStatusCmd(opts *rootOptions, use string, active bool) *cobra.Command {
	short := "Activate the server and load the question bank"
	if !active {
		short = "Deactivate the server"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.SetServerStatus(ctx, active)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), *res, res)
		},
	}
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register NAME POSITION",
		Short: "Join the game as a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.RegisterPlayer(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res.Result, res)
		},
	}
}

func newQuestionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questions POSITION",
		Short: "List the questions for a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.GetQuestions(ctx, args[0])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res.Result, res)
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the game status and players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.GetStatus(ctx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res.Result, res)
		},
	}
}

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game at round 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.StartGame(ctx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), *res, res)
		},
	}
}

func newNextCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance to the next round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.NextRound(ctx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), *res, res)
		},
	}
}

func newResultsCmd(opts *rootOptions) *cobra.Command {
	var (
		score   int
		rounds  int
		answers []string
	)
	cmd := &cobra.Command{
		Use:     "results NAME",
		Short:   "Record a player's final results",
		Example: "  trivia results ana --score 20 --rounds 2 --answer 1:A:true --answer 2:C:false",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			responses := make([]types.SubmittedResponse, 0, len(answers))
			for _, a := range answers {
				resp, err := parseAnswer(a)
				if err != nil {
					return err
				}
				responses = append(responses, resp)
			}

			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.RecordFinalResults(ctx, types.FinalResults{
				PlayerName:      args[0],
				Responses:       responses,
				FinalScore:      score,
				RoundsCompleted: rounds,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), *res, res)
		},
	}
	cmd.Flags().IntVar(&score, "score", 0, "final score")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "rounds completed")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "answer as ROUND:LETTER:CORRECT, repeatable")
	return cmd
}

// parseAnswer parses ROUND:LETTER:CORRECT, e.g. 2:B:true.
func parseAnswer(s string) (types.SubmittedResponse, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return types.SubmittedResponse{}, fmt.Errorf("invalid answer %q, want ROUND:LETTER:CORRECT", s)
	}
	round, err := strconv.Atoi(parts[0])
	if err != nil {
		return types.SubmittedResponse{}, fmt.Errorf("invalid round in answer %q: %v", s, err)
	}
	correct, err := strconv.ParseBool(parts[2])
	if err != nil {
		return types.SubmittedResponse{}, fmt.Errorf("invalid correctness in answer %q: %v", s, err)
	}
	return types.SubmittedResponse{
		Round:          round,
		SelectedAnswer: parts[1],
		IsCorrect:      correct,
	}, nil
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the game, keeping registered players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.ResetGame(ctx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), *res, res)
		},
	}
}

func newResetAllCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-all",
		Short: "Deactivate the server and clear everything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.ResetAll(ctx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), *res, res)
		},
	}
}

func newLeaderboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "List players by score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.GetLeaderboard(ctx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res.Result, res)
		},
	}
}

func newEventsCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List archived game events, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.callContext(cmd)
			defer cancel()
			res, err := opts.client.ListEvents(ctx, limit)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res.Result, res)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of most recent events (server default when 0)")
	return cmd
}
