package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rental-records/internal/commands"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "rental-records",
		Short:         "Manage tenants, owners, hosts, properties, payments and rental agreements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		commands.InitCmd(),
		commands.ListCmd(),
		commands.ShowCmd(),
		commands.AddCmd(),
		commands.UpdateCmd(),
		commands.RemoveCmd(),
		commands.BackupCmd(),
		commands.ValidateCmd(),
		commands.AgreementsCmd(),
		commands.PaymentsCmd(),
		commands.ExportDBCmd(),
		commands.HistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
