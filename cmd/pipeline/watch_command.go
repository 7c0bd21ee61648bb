package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcribe-flow/internal/batch"
	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the pipeline whenever new media lands in incoming",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			if language == "" {
				language = ctx.config.Language
			}
			lang, err := config.ParseLanguage(language)
			if err != nil {
				return err
			}

			coord, store, err := ctx.coordinator()
			if err != nil {
				return err
			}
			log := ctx.logger
			out := cmd.OutOrStdout()

			run := func(runCtx context.Context) error {
				summary, err := coord.RunBatch(runCtx, batch.Request{Language: lang})
				if err != nil {
					return err
				}
				if summary.Total() > 0 {
					renderSummary(out, summary)
				}
				return nil
			}

			w, err := watcher.New(store.Dirs().Incoming, run, ctx.config.Watch.SettleDelay, log)
			if err != nil {
				return err
			}
			defer w.Stop()

			// Setup graceful shutdown
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info(runCtx, "========================================")
			log.Info(runCtx, "Transcription pipeline is ready!")
			log.Info(runCtx, "Monitoring: %s", store.Dirs().Incoming)
			log.Info(runCtx, "Language: %s", lang.Name())
			log.Info(runCtx, "Press Ctrl+C to stop")
			log.Info(runCtx, "========================================")

			if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(runCtx, "Watcher error: %v", err)
				return err
			}

			log.Info(context.Background(), "Pipeline stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Source language: Arabic, Hebrew or English (default from config)")
	return cmd
}
