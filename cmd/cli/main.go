package main

import (
	"fmt"
	"os"

	"github.com/fin-tools/finsight/pkg/terminal"
	"github.com/fin-tools/finsight/pkg/terminal/commands"
	"github.com/spf13/cobra"
)

func main() {
	reporter := terminal.NewReporter(os.Stdout)

	rootCmd := &cobra.Command{
		Use:   "finsight",
		Short: "Financial analytics over a local ledger",
	}
	rootCmd.AddCommand(commands.NewReportCmd(reporter))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
