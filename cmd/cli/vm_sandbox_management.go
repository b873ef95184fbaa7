package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------
// vm_sandbox_management.go - inspect per-frame VM sandbox limits on the debug
// host. Sandboxes are no longer addressable by contract address: a Host
// tracks them per call-stack frame, scoped to one invocation, so the CLI can
// only set the limits applied to the NEXT invoke and list whichever sandboxes
// are still active afterward.
// -----------------------------------------------------------------------------

var sandboxCmd = &cobra.Command{Use: "sandbox", Short: "VM sandbox management", PersistentPreRunE: initContractsMiddleware}

var sandboxLimitsCmd = &cobra.Command{
	Use:   "limits <mem> <cpu>",
	Short: "Set the memory/CPU limits applied to the next invoke",
	Args:  cobra.ExactArgs(2),
	RunE:  sandboxHandleLimits,
}

var sandboxActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "List sandboxes still marked active",
	Args:  cobra.NoArgs,
	RunE:  sandboxHandleActive,
}

func init() {
	sandboxCmd.AddCommand(sandboxLimitsCmd, sandboxActiveCmd)
}

func sandboxHandleLimits(cmd *cobra.Command, args []string) error {
	mem, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return err
	}
	cpu, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return err
	}
	contractsHost.SetSandboxLimits(mem, cpu)
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

func sandboxHandleActive(cmd *cobra.Command, _ []string) error {
	out, err := json.MarshalIndent(contractsHost.SandboxesActive(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

var SandboxCmd = sandboxCmd

func RegisterSandbox(root *cobra.Command) { root.AddCommand(SandboxCmd) }
