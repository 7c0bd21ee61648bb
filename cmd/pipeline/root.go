package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "pipeline",
		Short:         "Transcribe and analyze media files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.load(cmd.Flags().Changed("config")); err != nil {
				return err
			}
			if cmd.Name() == "doctor" {
				return nil
			}
			return ctx.checkToken()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", defaultConfigPath, "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&ctx.workspaceFlag, "workspace", "w", "", "Workspace directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&ctx.tokenFlag, "token", "", "Access token when APP_TOKEN is configured")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newStageCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
