package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/flowchart"
	"github.com/Veraticus/claimflow/internal/model"
)

func flowchartCmd() *cobra.Command {
	var (
		status string
		format string
		zoom   string
	)

	cmd := &cobra.Command{
		Use:   "flowchart",
		Short: "Draw the claim lifecycle",
		Long: `Draw every claim status and the transitions between them. The given status
and the path that led to it are highlighted.

Use --format dot to get a Graphviz graph instead of text.`,
		Example: `  claim flowchart --status PAID
  claim flowchart --status REJECTED --format dot | dot -Tsvg > claim.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := model.ParseClaimStatus(status)
			if strings.TrimSpace(status) != "" && current == model.StatusUnknown {
				return common.NewUserError(fmt.Sprintf("Unknown status %q", status), common.ErrInvalidConfig)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				z, err := flowchart.ParseZoom(zoom)
				if err != nil {
					return common.NewUserError("Invalid zoom", err)
				}
				writeLine(out, flowchart.Text(current, z))
			case "dot":
				writeLine(out, flowchart.DOT(current))
			default:
				return common.NewUserError(fmt.Sprintf("Unknown format %q (want text or dot)", format), common.ErrInvalidConfig)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(model.StatusSubmitted), "status to highlight")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, dot)")
	cmd.Flags().StringVar(&zoom, "zoom", flowchart.DefaultZoom.String(), "text zoom (compact, normal, wide)")
	return cmd
}
