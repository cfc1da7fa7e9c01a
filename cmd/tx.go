package cmd

import (
	logger "github.com/keycase-dev/keycase/internal/logging"
	"github.com/spf13/cobra"
)

var (
	txVerbose bool
	txDebug   bool
	TxLogger  logger.Logger

	TxCmd = &cobra.Command{
		Use:   "tx",
		Short: "Sign and inspect delegation transactions offline",
		Long:  `Signs batches of delegation, revocation, and invalidation events as EIP-1559 transactions, and decodes raw signed transactions for auditing. No network access is ever made.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			TxLogger = logger.Logger{
				Verbose: txVerbose,
				Debug:   txDebug,
			}
			TxLogger.Debugf("Initializing tx command with verbose=%t, debug=%t", txVerbose, txDebug)
		},
	}
)

func init() {
	TxCmd.PersistentFlags().BoolVarP(&txVerbose, "verbose", "v", false, "enable verbose output")
	TxCmd.PersistentFlags().BoolVar(&txDebug, "debug", false, "enable debug output")

	TxCmd.AddCommand(txBatchCmd)
	TxCmd.AddCommand(txDecodeCmd)
}
