package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/commandcenter/internal/cli"
	"github.com/example/commandcenter/internal/version"
	"github.com/example/commandcenter/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "commandcenter",
		Short:   "Command Center - kanban sync and ops API",
		Version: version.String(),
		Long: `Command Center keeps a kanban board in sync with the assistant's notes
and live agent status, and serves it with the ops endpoints over HTTP.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configFile, _ := cmd.Flags().GetString("config")
			actor, _ := cmd.Flags().GetString("actor")
			wire.SetConfigFile(configFile)
			cli.SetActorID(actor)
		},
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./commandcenter.yaml or ~/.commandcenter/commandcenter.yaml)")
	rootCmd.PersistentFlags().String("actor", "", "Actor recorded in the activity log")

	// Add subcommands
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.KanbanCmd())
	rootCmd.AddCommand(cli.SessionsCmd())
	rootCmd.AddCommand(cli.CronCmd())
	rootCmd.AddCommand(cli.ActivityCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
