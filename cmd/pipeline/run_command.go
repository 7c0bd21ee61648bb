package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcribe-flow/internal/batch"
	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/internal/export"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		url      string
		language string
		outDir   string
		docx     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every file waiting in incoming, optionally fetching a URL first",
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

			coord, _, err := ctx.coordinator()
			if err != nil {
				return err
			}

			summary, err := coord.RunBatch(cmd.Context(), batch.Request{RemoteURL: url, Language: lang})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderSummary(out, summary)

			if outDir != "" {
				paths, err := export.New(export.Options{Docx: docx}, ctx.logger).Export(cmd.Context(), summary, outDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(out, "Saved %s\n", p)
				}
			}

			if code := exitCodeFor(summary); code != exitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Remote media URL to fetch before the run")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Source language: Arabic, Hebrew or English (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write every succeeded artifact to this directory")
	cmd.Flags().BoolVar(&docx, "docx", false, "Also write artifacts as .docx (requires --out)")
	return cmd
}
