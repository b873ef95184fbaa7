package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"contracthost/cmd/cli"
)

func main() {
	rootCmd := &cobra.Command{Use: "hostcli", Short: "Debug CLI for the contract execution host"}

	cli.RegisterContracts(rootCmd)
	cli.RegisterContractMgmt(rootCmd)
	cli.RegisterCoin(rootCmd)
	cli.RegisterEvents(rootCmd)
	cli.RegisterSandbox(rootCmd)
	cli.RegisterStorage(rootCmd)
	cli.RegisterLedger(rootCmd)
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
