package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keycase-dev/keycase/internal/txsign"
)

var (
	decodeFile string

	txDecodeCmd = &cobra.Command{
		Use:   "decode [raw-tx-hex]",
		Short: "Decodes a raw signed EIP-1559 transaction",
		Long: `Recovers the sender and unpacks the delegation calldata of a raw
signed transaction, printing the same audit view the batch signer
produces. The raw transaction is taken from the argument or --file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			switch {
			case len(args) == 1:
				raw = args[0]
			case decodeFile != "":
				data, err := os.ReadFile(decodeFile)
				if err != nil {
					return TxLogger.ErrorfAndReturn("failed to read %s: %v", decodeFile, err)
				}
				raw = strings.TrimSpace(string(data))
			default:
				return TxLogger.ErrorfAndReturn("provide a raw transaction argument or --file")
			}

			decoded, err := txsign.DecodeSignedTx(raw)
			if err != nil {
				return TxLogger.ErrorfAndReturn("failed to decode transaction: %v", err)
			}

			out, err := json.MarshalIndent(decoded, "", "  ")
			if err != nil {
				return TxLogger.ErrorfAndReturn("failed to encode output: %v", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
)

func init() {
	txDecodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "", "file containing the raw transaction hex")
}
