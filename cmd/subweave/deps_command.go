package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subweave/internal/config"
	"subweave/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "deps",
		Short:       "Check the external tools subweave depends on",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// A broken or absent config must not block the dependency
			// report; fall back to default tool names.
			cfg, err := ctx.ensureConfig()
			if err != nil {
				defaults := config.Default()
				cfg = &defaults
				fmt.Fprintf(cmd.ErrOrStderr(), "config unavailable (%v); checking default tool names\n", err)
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(!status.Optional),
					state,
					status.Description,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Required", "Status", "Purpose"},
				rows,
				nil,
			))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
