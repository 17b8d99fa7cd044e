package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pagepress/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			missingRequired := false
			for _, status := range statuses {
				note := status.Description
				if !status.Available && status.Detail != "" {
					note = status.Detail
				}
				required := "required"
				if status.Optional {
					required = "optional"
				}
				if !status.Available && !status.Optional {
					missingRequired = true
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					required,
					yesNo(status.Available),
					note,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Command", "Role", "Available", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if missingRequired {
				return errors.New("required binaries are missing")
			}
			return nil
		},
	}
}
