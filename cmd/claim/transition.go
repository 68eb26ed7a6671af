package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/detail"
	"github.com/Veraticus/claimflow/internal/lifecycle"
)

func withdrawCmd() *cobra.Command {
	return transitionCmd(lifecycle.ActionWithdraw,
		"withdraw <claim-id>",
		"Withdraw a submitted claim",
		"Withdraw this claim? This cannot be undone.",
	)
}

func finishCmd() *cobra.Command {
	return transitionCmd(lifecycle.ActionConfirmFinish,
		"finish <claim-id>",
		"Confirm that a paid claim was received",
		"Confirm that you received the payout?",
	)
}

func transitionCmd(action lifecycle.Action, use, short, question string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: fmt.Sprintf(`%s.

Only a claim in %s can be moved to %s. The saved password is sent along;
you are asked for it if the claim is protected and none is saved.`,
			short, action.Requires(), action.Target()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := claimIDArg(args)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			prompter := newPrompter(cmd)
			ctrl, err := loadClaim(cmd, a, id, prompter)
			if err != nil {
				return err
			}
			claim := ctrl.Snapshot().Claim
			out := cmd.OutOrStdout()

			if !action.Enabled(claim.Status) {
				return common.NewUserError(
					a.tr.T("Claim is %s; this needs %s", a.tr.Status(claim.Status), a.tr.Status(action.Requires())),
					detail.ErrActionNotAllowed)
			}

			if !yes {
				ok, err := prompter.Confirm(cmd.Context(), a.tr.T(question))
				if err != nil {
					return common.NewUserError("Cancelled", err)
				}
				if !ok {
					writeLine(out, cli.FormatInfo(a.tr.T("Nothing changed.")))
					return nil
				}
			}

			if err := ctrl.Perform(cmd.Context(), action); err != nil {
				if errors.Is(err, detail.ErrActionNotAllowed) || errors.Is(err, detail.ErrActionInProgress) {
					return common.NewUserError("Action not available", err)
				}
				return common.NewUserError(detail.Describe(err), err)
			}

			snap := ctrl.Snapshot()
			if snap.Claim == nil {
				// A rejected password sends the controller back to the prompt.
				return common.NewUserError(detail.MessagePasswordRequired, nil)
			}
			a.remember(cmd.Context(), snap.Claim)
			writeLine(out, cli.FormatSuccess(a.tr.T("Claim %s is now %s", id, cli.StatusBadge(a.tr, snap.Claim.Status))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().String("password", "", "claim password; saved when it works")
	return cmd
}
