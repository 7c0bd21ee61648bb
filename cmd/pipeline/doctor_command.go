package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcribe-flow/internal/preflight"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the external tools and credentials are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			statuses := preflight.Check(cmd.Context(), executor.New(), preflight.Requirements(cfg))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStatuses(statuses))

			if err := cfg.Secrets.RequireFor(cfg.Analysis.Provider); err != nil {
				fmt.Fprintf(out, "Credentials: %v\n", err)
				return &exitError{code: exitSetup}
			}
			fmt.Fprintf(out, "Credentials: ok (analysis provider %s)\n", cfg.Analysis.Provider)

			if preflight.MissingRequired(statuses) {
				renderToolBanner(out, shouldColorize(out))
				return &exitError{code: exitSetup}
			}
			return nil
		},
	}
}

func renderStatuses(statuses []preflight.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := "ok"
		detail := s.Version
		if !s.Available {
			state = "missing"
			if s.Optional {
				state = "missing (optional)"
			}
			detail = s.Detail
		}
		rows = append(rows, []string{s.Name, s.Command, state, s.Description, detail})
	}
	return renderTable([]string{"Tool", "Command", "State", "Used for", "Detail"}, rows, nil)
}
