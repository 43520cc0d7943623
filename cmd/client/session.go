package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/session"
	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/transport/tcp"
	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

func newSessionCmd(opts *options) *cobra.Command {
	var (
		sessionID string
		deviceID  string
		attempts  int
	)

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Open or resume a session and solve its challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.commandContext(cmd)
			defer cancel()

			onSolve, stop, err := opts.startMetrics(ctx)
			if err != nil {
				return err
			}
			defer stop()

			client, err := tcp.Dial(ctx, opts.cfg.ServerAddr)
			if err != nil {
				return err
			}
			defer client.Close()

			repo := session.NewRepository(client)
			if deviceID == "" {
				deviceID = uuid.NewString()
			}

			sess, err := repo.InitSession(ctx, sessionID, deviceID)
			if err != nil {
				return err
			}
			if !sess.NeedChallenge {
				printf(cmd, "session %s already verified\n", sess.SessionID)
				return nil
			}

			types, err := repo.GetChallengeTypes(ctx)
			if err != nil {
				return err
			}
			if !slices.Contains(types, entity.ChallengeTypeHashcash) {
				return fmt.Errorf("server offers no supported challenge type: %v", types)
			}

			solver := opts.solver(onSolve)
			for i := 1; i <= attempts; i++ {
				ch, err := repo.Challenge(ctx, sess.SessionID, entity.ChallengeTypeHashcash)
				if err != nil {
					return err
				}
				sol, err := solver.Solve(ctx, ch)
				if err != nil {
					return fmt.Errorf("solve challenge %s: %w", ch.ID, err)
				}

				vr, err := repo.VerifySession(ctx, entity.VerifyRequest{
					SessionID:     sess.SessionID,
					ChallengeID:   ch.ID,
					ChallengeType: ch.Type,
					Solution:      sol,
				})
				if err != nil {
					return err
				}
				if !vr.Retry {
					printf(cmd, "session %s verified\n", sess.SessionID)
					return nil
				}

				opts.log.Info("verification asked for retry", "attempt", i, "wait_seconds", vr.WaitSeconds)
				if vr.WaitSeconds > 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(time.Duration(vr.WaitSeconds) * time.Second):
					}
				}
			}
			return fmt.Errorf("session %s not verified after %d attempts", sess.SessionID, attempts)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "resume this session")
	cmd.Flags().StringVar(&deviceID, "device-id", "", "device id sent with a new session (random when empty)")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "challenges to try before giving up")
	return cmd
}

func newSignoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "signout SESSION_ID",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.commandContext(cmd)
			defer cancel()

			client, err := tcp.Dial(ctx, opts.cfg.ServerAddr)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := session.NewRepository(client).DeleteSession(ctx, args[0]); err != nil {
				return err
			}
			printf(cmd, "session %s deleted\n", args[0])
			return nil
		},
	}
}
