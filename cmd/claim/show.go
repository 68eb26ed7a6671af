package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/flowchart"
	"github.com/Veraticus/claimflow/internal/lifecycle"
)

func showCmd() *cobra.Command {
	var (
		zoom     string
		noChart  bool
		noPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "show <claim-id>",
		Short: "Print a claim's details and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := claimIDArg(args)
			if err != nil {
				return err
			}
			z, err := flowchart.ParseZoom(zoom)
			if err != nil {
				return common.NewUserError("Invalid zoom", err)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var prompter *cli.PasswordPrompter
			if !noPrompt {
				prompter = newPrompter(cmd)
			}
			ctrl, err := loadClaim(cmd, a, id, prompter)
			if err != nil {
				return err
			}
			snap := ctrl.Snapshot()
			out := cmd.OutOrStdout()

			writeLine(out, cli.ClaimDetail(a.tr, snap.Claim, snap.URLs, time.Local))
			if !noChart {
				writeLine(out, "")
				writeLine(out, cli.SubtitleStyle.Render(a.tr.T("Progress")))
				writeLine(out, flowchart.Text(snap.Claim.Status, z))
			}

			var hints []string
			if snap.Actions[lifecycle.ActionWithdraw] {
				hints = append(hints, "claim withdraw "+id)
			}
			if snap.Actions[lifecycle.ActionConfirmFinish] {
				hints = append(hints, "claim finish "+id)
			}
			if len(hints) > 0 {
				writeLine(out, "")
				writeLine(out, cli.FormatInfo(a.tr.T("Available: %s", strings.Join(hints, ", "))))
			}
			return nil
		},
	}

	cmd.Flags().String("password", "", "claim password; saved when it works")
	cmd.Flags().StringVar(&zoom, "zoom", flowchart.ZoomCompact.String(), "chart zoom (compact, normal, wide)")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "omit the progress chart")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "fail instead of asking for a password")
	return cmd
}
