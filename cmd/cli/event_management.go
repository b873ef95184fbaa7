package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	eventsCmd         = &cobra.Command{Use: "events", Short: "Inspect the debug host's event buffers", PersistentPreRunE: initContractsMiddleware}
	eventsContractCmd = &cobra.Command{Use: "contract", Short: "List consensus-observable contract events", RunE: eventsListContract}
	eventsDiagCmd     = &cobra.Command{Use: "diag", Short: "List diagnostic events", RunE: eventsListDiag}
)

func eventsListContract(cmd *cobra.Command, _ []string) error {
	out, err := json.MarshalIndent(contractsHost.Events().ContractEvents(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func eventsListDiag(cmd *cobra.Command, _ []string) error {
	out, err := json.MarshalIndent(contractsHost.Events().DiagnosticEvents(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	eventsCmd.AddCommand(eventsContractCmd, eventsDiagCmd)
}

var EventsCmd = eventsCmd

func RegisterEvents(root *cobra.Command) { root.AddCommand(EventsCmd) }
