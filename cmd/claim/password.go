package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/common"
)

func passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage saved claim passwords",
		Long: `Passwords are saved per claim in a cookie file scoped to the API host, so
the browser and this tool can share them.`,
	}

	cmd.AddCommand(passwordSetCmd())
	cmd.AddCommand(passwordClearCmd())
	return cmd
}

func passwordSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <claim-id>",
		Short: "Save the password for a claim",
		Args:  cobra.ExactArgs(1),
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

			password, err := readPassword(cmd, newPrompter(cmd), a.tr.T("Password for claim %s", id))
			if err != nil {
				return common.NewUserError("No password saved", err)
			}
			if err := a.creds.Set(cmd.Context(), id, password); err != nil {
				return common.NewUserError("Failed to save password", err)
			}

			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(a.tr.T("Password saved for claim %s", id)))
			return nil
		},
	}

	cmd.Flags().String("password", "", "password to save instead of prompting")
	return cmd
}

func passwordClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <claim-id>",
		Short: "Forget the saved password for a claim",
		Args:  cobra.ExactArgs(1),
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

			if err := a.creds.Clear(cmd.Context(), id); err != nil {
				return common.NewUserError("Failed to forget password", err)
			}

			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(a.tr.T("Password forgotten for claim %s", id)))
			return nil
		},
	}
}
