package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stage <file>...",
		Short: "Copy local media files into incoming under normalized names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for _, path := range args {
				if !media.IsSupported(filepath.Base(path)) {
					fmt.Fprintf(out, "Skipped %s: unsupported format (supported: %v)\n", path, media.SupportedFormats())
					rejected++
					continue
				}
				item, err := store.Stage(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Staged %s as %s\n", path, item.Identity)
			}

			if rejected > 0 {
				return &exitError{code: exitFailed}
			}
			return nil
		},
	}
}
