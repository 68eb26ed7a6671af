package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/api"
	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/claimform"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/i18n"
)

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tags a claim can carry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			client, err := newAPIClient(s)
			if err != nil {
				return err
			}
			return listTags(cmd, client, localizer())
		},
	}
}

func listTags(cmd *cobra.Command, client *api.Client, tr *i18n.Printer) error {
	tags, err := claimform.NewTagCatalog(client).Tags(cmd.Context())
	if err != nil {
		return common.NewUserError("Failed to load tags", err)
	}

	out := cmd.OutOrStdout()
	if len(tags) == 0 {
		writeLine(out, cli.FormatInfo(tr.T("No tags defined.")))
		return nil
	}

	writeLine(out, cli.FormatTitle(cli.TagIcon+" "+tr.T("Tags (%d)", len(tags))))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tCOLOR")
	for _, t := range tags {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Label, t.Color)
	}
	return w.Flush()
}
