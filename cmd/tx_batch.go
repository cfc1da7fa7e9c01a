package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keycase-dev/keycase/internal/configs"
	"github.com/keycase-dev/keycase/internal/txsign"
)

var (
	batchFile    string
	batchOut     string
	batchGas     string
	batchMaxFee  string
	batchMaxPrio string

	txBatchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Signs a batch JSON of contract calls",
		Long: `Reads a JSON array of batch items, signs each as an EIP-1559
transaction, and writes the raw transactions together with a decoded
audit view. Signing is all-or-nothing: one bad item aborts the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			TxLogger.Infof("Starting batch command")

			opts, err := txsign.NewOptions(batchGas, batchMaxFee, batchMaxPrio)
			if err != nil {
				return TxLogger.ErrorfAndReturn("invalid fee parameters: %v", err)
			}

			data, err := os.ReadFile(batchFile)
			if err != nil {
				return TxLogger.ErrorfAndReturn("failed to read %s: %v", batchFile, err)
			}
			items, err := txsign.ParseItems(data)
			if err != nil {
				return TxLogger.ErrorfAndReturn("invalid batch file: %v", err)
			}
			TxLogger.Debugf("Parsed %d batch item(s)", len(items))

			spinner, cleanup := startSpinner("Signing batch transactions...", txVerbose, txDebug)
			defer cleanup()

			entries, err := txsign.ProcessBatch(items, opts)
			if err != nil {
				spinner.FinalMSG = color.RedString("✗") + " Batch signing failed\n" +
					color.RedString("Error: ") + err.Error()
				return nil
			}

			out, err := txsign.MarshalEntries(entries)
			if err != nil {
				return TxLogger.ErrorfAndReturn("failed to encode batch output: %v", err)
			}
			if err := os.WriteFile(batchOut, out, 0o600); err != nil {
				return TxLogger.ErrorfAndReturn("failed to write %s: %v", batchOut, err)
			}
			TxLogger.Infof("Batch command completed successfully")

			spinner.FinalMSG = color.GreenString("✓") + " Signed " + fmt.Sprint(len(entries)) + " transaction(s)\n" +
				"The signed batch was written to " + color.YellowString(batchOut) + "\n" +
				color.CyanString("→") + " Review the " + color.YellowString("decodedTx") + " entries before broadcasting from a connected machine"
			return nil
		},
	}
)

func init() {
	txBatchCmd.Flags().StringVarP(&batchFile, "batch", "b", "", "path to the batch input JSON (required)")
	txBatchCmd.Flags().StringVarP(&batchOut, "out", "o", configs.DefaultBatchOutputFile, "output file for the signed batch")
	txBatchCmd.Flags().StringVar(&batchGas, "gas-limit", configs.DefaultGasLimit, "gas limit, decimal or 0x hex")
	txBatchCmd.Flags().StringVar(&batchMaxFee, "max-fee-per-gas", configs.DefaultMaxFeePerGas, "max fee per gas in wei")
	txBatchCmd.Flags().StringVar(&batchMaxPrio, "max-priority-fee-per-gas", configs.DefaultMaxPriorityFeePerGas, "max priority fee per gas in wei")
	_ = txBatchCmd.MarkFlagRequired("batch")
}
