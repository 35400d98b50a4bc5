package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"minutes/internal/config"
	"minutes/internal/formats"
	"minutes/internal/logging"
	"minutes/internal/transcription"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var withFormat bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a recording with the configured service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			audioPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve audio path: %w", err)
			}

			cctx := commandCtx(cmd)
			client := transcription.NewClient(transcription.Config{
				BaseURL:        cfg.Transcription.BaseURL,
				APIKey:         cfg.Transcription.APIKey,
				TimeoutSeconds: cfg.Transcription.TimeoutSeconds,
			})
			started := time.Now()
			result, err := client.Transcribe(cctx, audioPath)
			if err != nil {
				logging.WithContext(cctx, logger).Warn("transcription failed",
					logging.String("file", audioPath),
					logging.Error(err),
				)
				return err
			}
			logging.WithContext(cctx, logger).Info("transcription complete",
				logging.String("file", audioPath),
				logging.Duration("elapsed", time.Since(started)),
			)

			if !withFormat {
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(result.Text))
				return nil
			}

			return ctx.withManager(cctx, func(mgr *formats.Manager) error {
				d, ok := mgr.Selected()
				if jsonOutput {
					payload := struct {
						Text   string                 `json:"text"`
						Format *formats.DisplayRecord `json:"format,omitempty"`
					}{Text: result.Text}
					if ok {
						payload.Format = &d
					}
					return writeJSON(cmd, payload)
				}
				out := cmd.OutOrStdout()
				if ok {
					fmt.Fprintf(out, "# %s\n\n", d.Title)
					if template := strings.TrimSpace(d.Template); template != "" {
						fmt.Fprintf(out, "%s\n\n", template)
					}
				}
				fmt.Fprintln(out, "## Transcript")
				fmt.Fprintln(out, strings.TrimSpace(result.Text))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withFormat, "with-format", false, "Prefix the transcript with the selected format's template")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
