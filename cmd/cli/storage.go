package cli

// cmd/cli/storage.go — CLI wrapper for the core/storage subsystem.
// Inspection commands over the debug host's LedgerKey/Entry store, in place
// of an off-chain blob gateway: this host's persistence is ledger state,
// not file blobs.

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"contracthost/core"
)

func parseStorageClass(s string) (core.StorageClass, error) {
	switch s {
	case "temporary", "temp":
		return core.Temporary, nil
	case "persistent", "perm":
		return core.Persistent, nil
	case "instance":
		return core.Instance, nil
	default:
		return 0, fmt.Errorf("unknown storage class %q (want temporary|persistent|instance)", s)
	}
}

func storageDumpHandler(cmd *cobra.Command, _ []string) error {
	snap := contractsHost.StorageSnapshot()
	out := make(map[string]map[string]any, len(snap))
	for k, e := range snap {
		out[base64.StdEncoding.EncodeToString([]byte(k))] = map[string]any{
			"data":       base64.StdEncoding.EncodeToString(e.Data),
			"expiration": e.Expiration,
		}
	}
	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(enc))
	return nil
}

func storageGetHandler(cmd *cobra.Command, args []string) error {
	class, err := parseStorageClass(args[0])
	if err != nil {
		return err
	}
	payload, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("payload must be hex: %w", err)
	}
	e, ok, err := contractsHost.StorageGetRaw(class, payload)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "not found")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "data: %s\nexpiration: %d\n", hex.EncodeToString(e.Data), e.Expiration)
	return nil
}

var storageCmd = &cobra.Command{
	Use:               "storage",
	Short:             "Inspect the debug host's ledger key/value store",
	PersistentPreRunE: initContractsMiddleware,
}

var storageDumpCmd = &cobra.Command{Use: "dump", Short: "Dump every entry as JSON", Args: cobra.NoArgs, RunE: storageDumpHandler}
var storageGetCmd = &cobra.Command{Use: "get <class> <hex-payload>", Short: "Fetch a single entry", Args: cobra.ExactArgs(2), RunE: storageGetHandler}

func init() {
	storageCmd.AddCommand(storageDumpCmd, storageGetCmd)
}

var StorageRoute = storageCmd

func RegisterStorage(root *cobra.Command) { root.AddCommand(StorageRoute) }
