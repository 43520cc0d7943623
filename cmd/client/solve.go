package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
	"github.com/dayanaadylkhanova/sessionpow/internal/service"
)

func newSolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [CHALLENGE_JSON]",
		Short: "Solve a hashcash challenge given as JSON (argument or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				raw = string(b)
			}

			hc, err := service.ParseHashcashChallenge(strings.TrimSpace(raw))
			if err != nil {
				return err
			}

			ctx, cancel := opts.commandContext(cmd)
			defer cancel()

			onSolve, stop, err := opts.startMetrics(ctx)
			if err != nil {
				return err
			}
			defer stop()

			sol, err := opts.solver(onSolve).Solve(ctx, entity.Challenge{
				Type: entity.ChallengeTypeHashcash,
				Data: &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: &hc},
			})
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", sol)
			return nil
		},
	}
}
