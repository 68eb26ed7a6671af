package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/detail"
	"github.com/Veraticus/claimflow/internal/model"
	"github.com/Veraticus/claimflow/internal/tui"
	"github.com/Veraticus/claimflow/internal/tui/themes"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <claim-id>",
		Short: "Open the interactive claim view",
		Long: `Open a claim in a full-screen view with its details, progress chart and
attachments. Withdraw or confirm receipt from there when the claim allows it.

You are asked for the password if the claim is protected and none is saved.`,
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

			return runView(cmd, a, id)
		},
	}
}

func openCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "open <claim-id>",
		Short: "Save a claim's password and open it",
		Long: `Open a claim the way a shared link does: the password, when given, is saved
on this machine first so the view opens without asking.`,
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

			if cmd.Flags().Changed("password") {
				if err := a.creds.Set(cmd.Context(), id, strings.TrimSpace(password)); err != nil {
					return common.NewUserError("Failed to save password", err)
				}
			}
			return runView(cmd, a, id)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password to save before opening")
	return cmd
}

// runView shows the detail view. Logging goes to the log file while the
// view owns the terminal.
func runView(cmd *cobra.Command, a *app, id string) error {
	closeLog, err := logToFile(a.settings)
	if err != nil {
		slog.Warn("Logging to file unavailable", "path", a.settings.LogFile, "error", err)
	} else {
		defer closeLog()
	}

	rec := &recentRecorder{app: a, cmd: cmd}
	err = tui.Run(cmd.Context(), tui.RunConfig{
		API:         a.client,
		Credentials: a.creds,
		ClaimID:     id,
		OnChange:    rec.observe,
		Options: []tui.Option{
			tui.WithTheme(themes.GetTheme(a.settings.Theme)),
			tui.WithWebBaseURL(a.settings.WebBaseURL),
			tui.WithPrinter(a.tr),
		},
	})
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Could not show claim %s", id), err)
	}
	return nil
}

// recentRecorder saves the claim whenever its title or status changes.
type recentRecorder struct {
	app    *app
	cmd    *cobra.Command
	title  string
	status model.ClaimStatus
	mu     sync.Mutex
}

func (r *recentRecorder) observe(snap detail.Snapshot) {
	if snap.Phase != detail.PhaseContent || snap.Claim == nil {
		return
	}

	r.mu.Lock()
	changed := snap.Claim.Title != r.title || snap.Claim.Status != r.status
	r.title, r.status = snap.Claim.Title, snap.Claim.Status
	r.mu.Unlock()

	if changed {
		r.app.remember(r.cmd.Context(), snap.Claim)
	}
}
