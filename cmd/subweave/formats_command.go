package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subweave/internal/catalog"
	"subweave/internal/services/ytdlp"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "formats <url>",
		Short: "List the selectable video streams for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := validateVideoURL(args[0]); err != nil {
				return err
			}

			client, err := ytdlp.New(cfg.Tools.YtDlp, cfg.Source.CookiesPath)
			if err != nil {
				return err
			}
			raw, err := client.ListFormats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			descriptors, err := catalog.Resolve(raw, cfg.Source.MinHeight)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(descriptors))
			for _, d := range descriptors {
				rows = append(rows, []string{
					strconv.Itoa(d.Index),
					d.ID,
					d.Ext,
					resolutionLabel(d.Width, d.Height),
					yesNo(d.HasAudio()),
					d.Note,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "ID", "Ext", "Resolution", "Audio", "Note"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "Pass the # column to `subweave run --format` to pick a stream.\n")
			return nil
		},
	}
}
