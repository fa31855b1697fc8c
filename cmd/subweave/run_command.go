package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subweave/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var formatIndex int

	cmd := &cobra.Command{
		Use:   "run [url]",
		Short: "Download a video, attach subtitles, and publish the final container",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var videoURL string
			if len(args) == 1 {
				videoURL = args[0]
			} else {
				videoURL, err = promptForURL(cmd)
				if err != nil {
					return err
				}
			}
			if err := validateVideoURL(videoURL); err != nil {
				return err
			}

			logger, closeLogger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLogger()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := pipeline.New(cfg, logger)
			if err != nil {
				return err
			}
			final, err := p.Run(runCtx, videoURL, formatIndex)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", final)
			return nil
		},
	}

	cmd.Flags().IntVarP(&formatIndex, "format", "f", 0, "Catalog index of the stream to download (0 uses the best available)")
	return cmd
}
