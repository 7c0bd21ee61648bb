package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcribe-flow/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show every tracked item and the workspace areas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			records, err := store.Records(cmd.Context())
			if err != nil {
				return err
			}
			incoming, err := store.Incoming(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace: %s\n", store.Dirs().Root)
			fmt.Fprintf(out, "Waiting in incoming: %d\n", len(incoming))
			fmt.Fprintln(out, renderRecords(records))
			return nil
		},
	}
}

func renderRecords(records []state.Record) string {
	if len(records) == 0 {
		return "No items tracked yet."
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		detail := ""
		if rec.Status == state.StatusFailed {
			detail = truncate(fmt.Sprintf("%s: %s", rec.FailedStage, rec.Error), maxErrorWidth)
		}
		rows = append(rows, []string{
			rec.Identity,
			string(rec.Origin),
			string(rec.Status),
			strconv.Itoa(rec.Attempts),
			rec.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
			detail,
		})
	}
	return renderTable(
		[]string{"Item", "Origin", "Status", "Attempts", "Updated", "Failure"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	)
}
