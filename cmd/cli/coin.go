package cli

// -----------------------------------------------------------------------------
// coin.go – debug CLI for the host's built-in asset (token) contract
// -----------------------------------------------------------------------------
// Commands exposed after `RegisterCoin(rootCmd)`:
//   coin deploy <admin> <name> <symbol> <decimals>
//   coin mint    <token> <to> <amount>
//   coin balance <token> <addr>
//   coin transfer <token> <from> <to> <amount>
//   coin burn    <token> <addr> <amount>
//
// The debug host has no consensus-bound authorization entries wired in, so
// every require_auth check the token contract performs is satisfied by the
// recording authorizer's default-allow path (see core/auth.go) rather than a
// real signature — this surface exists for local experimentation only.
// -----------------------------------------------------------------------------

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"contracthost/core"
)

func coinParseAmt(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a uint64")
	}
	return n, nil
}

func addrArg(h *core.Host, addr core.Address) (core.Val, error) {
	return h.AddressFromBytesVal(addr.Bytes())
}

func u64Arg(n uint64) core.Val {
	v, _ := core.U64SmallVal(n)
	return v
}

func coinHandleDeploy(cmd *cobra.Command, args []string) error {
	admin, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	decimals, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return err
	}
	var salt [32]byte
	tokenVal, err := contractsHost.CreateTokenContract(admin, salt)
	if err != nil {
		return err
	}
	tokenBytes, err := contractsHost.AddressToBytes(tokenVal)
	if err != nil {
		return err
	}
	tokenAddr, err := core.AddressFromBytes(tokenBytes)
	if err != nil {
		return err
	}

	adminVal, e := addrArg(contractsHost, admin)
	if e != nil {
		return e
	}
	nameVal, e := contractsHost.SymbolNew(args[1])
	if e != nil {
		return e
	}
	symbolVal, e := contractsHost.SymbolNew(args[2])
	if e != nil {
		return e
	}
	decVal := u64Arg(decimals)

	if _, err := contractsHost.Invoke(tokenAddr, "init_asset", []core.Val{adminVal, decVal, nameVal, symbolVal}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deployed token at %s\n", tokenAddr.String())
	return nil
}

func coinHandleMint(cmd *cobra.Command, args []string) error {
	token, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	to, err := mustParseAddr(args[1])
	if err != nil {
		return err
	}
	amt, err := coinParseAmt(args[2])
	if err != nil {
		return err
	}
	toVal, err := addrArg(contractsHost, to)
	if err != nil {
		return err
	}
	if _, err := contractsHost.Invoke(token, "mint", []core.Val{toVal, u64Arg(amt)}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "minted %d to %s\n", amt, args[1])
	return nil
}

func coinHandleBalance(cmd *cobra.Command, args []string) error {
	token, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	who, err := mustParseAddr(args[1])
	if err != nil {
		return err
	}
	whoVal, err := addrArg(contractsHost, who)
	if err != nil {
		return err
	}
	out, err := contractsHost.Invoke(token, "balance", []core.Val{whoVal})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.String())
	return nil
}

func coinHandleTransfer(cmd *cobra.Command, args []string) error {
	token, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	from, err := mustParseAddr(args[1])
	if err != nil {
		return err
	}
	to, err := mustParseAddr(args[2])
	if err != nil {
		return err
	}
	amt, err := coinParseAmt(args[3])
	if err != nil {
		return err
	}
	fromVal, err := addrArg(contractsHost, from)
	if err != nil {
		return err
	}
	toVal, err := addrArg(contractsHost, to)
	if err != nil {
		return err
	}
	if _, err := contractsHost.Invoke(token, "transfer", []core.Val{fromVal, toVal, u64Arg(amt)}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "transferred %d from %s to %s\n", amt, args[1], args[2])
	return nil
}

func coinHandleBurn(cmd *cobra.Command, args []string) error {
	token, err := mustParseAddr(args[0])
	if err != nil {
		return err
	}
	who, err := mustParseAddr(args[1])
	if err != nil {
		return err
	}
	amt, err := coinParseAmt(args[2])
	if err != nil {
		return err
	}
	whoVal, err := addrArg(contractsHost, who)
	if err != nil {
		return err
	}
	if _, err := contractsHost.Invoke(token, "burn", []core.Val{whoVal, u64Arg(amt)}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "burned %d from %s\n", amt, args[1])
	return nil
}

var coinRootCmd = &cobra.Command{
	Use:               "coin",
	Short:             "Exercise the built-in asset contract",
	PersistentPreRunE: initContractsMiddleware,
}

var coinDeployCmd = &cobra.Command{Use: "deploy <admin> <name> <symbol> <decimals>", Args: cobra.ExactArgs(4), RunE: coinHandleDeploy}
var coinMintCmd = &cobra.Command{Use: "mint <token> <to> <amt>", Args: cobra.ExactArgs(3), RunE: coinHandleMint}
var coinBalCmd = &cobra.Command{Use: "balance <token> <addr>", Args: cobra.ExactArgs(2), RunE: coinHandleBalance}
var coinTransferCmd = &cobra.Command{Use: "transfer <token> <from> <to> <amt>", Args: cobra.ExactArgs(4), RunE: coinHandleTransfer}
var coinBurnCmd = &cobra.Command{Use: "burn <token> <addr> <amt>", Args: cobra.ExactArgs(3), RunE: coinHandleBurn}

func init() {
	coinRootCmd.AddCommand(coinDeployCmd, coinMintCmd, coinBalCmd, coinTransferCmd, coinBurnCmd)
}

var CoinCmd = coinRootCmd

func RegisterCoin(root *cobra.Command) { root.AddCommand(CoinCmd) }
