package cli

// cmd/cli/ledger.go — inspect/declare the ledger context a debug invoke runs
// against (sequence number, expiration bounds). This host has no chain of
// its own, only the LedgerInfo a processor hands it per invocation.

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:               "ledger",
	Short:             "Inspect/declare the debug host's ledger context",
	PersistentPreRunE: initContractsMiddleware,
}

var ledgerSetSeqCmd = &cobra.Command{
	Use:   "set-sequence <n>",
	Short: "Set the ledger sequence number for subsequent invokes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return err
		}
		li := contractsHost.LedgerInfoValue()
		li.SequenceNumber = uint32(n)
		contractsHost.SetLedgerInfo(li)
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current ledger context",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		li := contractsHost.LedgerInfoValue()
		fmt.Fprintf(cmd.OutOrStdout(), "sequence: %d\nmin persistent expiration: %d\nmax expiration: %d\n",
			li.SequenceNumber, li.MinPersistentEntryExpiration, li.MaxEntryExpiration)
		return nil
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerSetSeqCmd, ledgerShowCmd)
}

var NewLedgerCommand = func() *cobra.Command { return ledgerCmd }

func RegisterLedger(root *cobra.Command) { root.AddCommand(ledgerCmd) }
