package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/i18n"
)

func recentCmd() *cobra.Command {
	var (
		limit  int
		forget string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List claims opened on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := loadSettings()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx, s)
			if err != nil {
				return common.NewUserError("Failed to open local database", err)
			}
			defer func() {
				_ = store.Close()
			}()

			tr := i18n.New(s.Lang)
			out := cmd.OutOrStdout()
			if forget != "" {
				if err := store.ForgetClaim(ctx, forget); err != nil {
					return common.NewUserError("Failed to forget claim", err)
				}
				writeLine(out, cli.FormatSuccess(tr.T("Claim %s removed from the list", forget)))
				return nil
			}

			claims, err := store.RecentClaims(ctx, limit)
			if err != nil {
				return common.NewUserError("Failed to list recent claims", err)
			}
			if len(claims) == 0 {
				writeLine(out, cli.FormatInfo(tr.T("No claims opened yet.")))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "OPENED\tID\tSTATUS\tTITLE")
			for _, c := range claims {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cli.FormatTime(c.OpenedAt, time.Local), c.ID, tr.Status(c.Status), c.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of claims to show")
	cmd.Flags().StringVar(&forget, "forget", "", "remove a claim id from the list")
	return cmd
}
