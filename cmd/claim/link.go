package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/common"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func linkCmd() *cobra.Command {
	var copyLink bool

	cmd := &cobra.Command{
		Use:   "link <claim-id>",
		Short: "Print the shareable link of a claim",
		Long: `Print the web link of a claim. The link never contains the password; share
that separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := claimIDArg(args)
			if err != nil {
				return err
			}
			s, err := loadSettings()
			if err != nil {
				return err
			}

			link := shareLink(s.WebBaseURL, id)
			writeLine(cmd.OutOrStdout(), link)

			if copyLink {
				if err := copyToClipboard(link); err != nil {
					return common.NewUserError("Failed to copy link", err)
				}
				writeLine(cmd.ErrOrStderr(), cli.FormatSuccess(localizer().T("Link copied to clipboard")))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "also copy the link to the clipboard")
	return cmd
}
