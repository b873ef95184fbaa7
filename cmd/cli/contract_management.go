package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func cmHandleTransfer(cmd *cobra.Command, args []string) error {
	addr, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	newOwner, err := mustParseAddr(args[1])
	if err != nil {
		return err
	}
	return contractsManager.TransferOwnership(addr, newOwner)
}

func cmHandlePause(cmd *cobra.Command, args []string) error {
	addr, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	return contractsManager.PauseContract(addr)
}

func cmHandleResume(cmd *cobra.Command, args []string) error {
	addr, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	return contractsManager.ResumeContract(addr)
}

func cmHandleUpgrade(cmd *cobra.Command, args []string) error {
	addr, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	code, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	return contractsManager.UpgradeContract(addr, code)
}

func cmHandleInfo(cmd *cobra.Command, args []string) error {
	addr, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	info, err := contractsManager.Info(addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "owner: %s\npaused: %v\ncode hash: %x\nbuiltin token: %v\n",
		info.Owner.String(), info.Paused, info.CodeHash, info.IsBuiltinToken)
	return nil
}

var contractMgmtCmd = &cobra.Command{
	Use:               "contractops",
	Short:             "Manage deployed contracts",
	PersistentPreRunE: initContractsMiddleware,
}

var cmTransferCmd = &cobra.Command{Use: "transfer <addr> <newOwner>", Args: cobra.ExactArgs(2), RunE: cmHandleTransfer}
var cmPauseCmd = &cobra.Command{Use: "pause <addr>", Args: cobra.ExactArgs(1), RunE: cmHandlePause}
var cmResumeCmd = &cobra.Command{Use: "resume <addr>", Args: cobra.ExactArgs(1), RunE: cmHandleResume}
var cmUpgradeCmd = &cobra.Command{Use: "upgrade <addr> <wasm>", Args: cobra.ExactArgs(2), RunE: cmHandleUpgrade}
var cmInfoCmd = &cobra.Command{Use: "info <addr>", Args: cobra.ExactArgs(1), RunE: cmHandleInfo}

func init() {
	contractMgmtCmd.AddCommand(cmTransferCmd, cmPauseCmd, cmResumeCmd, cmUpgradeCmd, cmInfoCmd)
}

var ContractMgmtCmd = contractMgmtCmd

func RegisterContractMgmt(root *cobra.Command) { root.AddCommand(ContractMgmtCmd) }
