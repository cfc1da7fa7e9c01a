package cmd

import (
	logger "github.com/keycase-dev/keycase/internal/logging"
	"github.com/spf13/cobra"
)

var (
	keysVerbose bool
	keysDebug   bool
	KeysLogger  logger.Logger

	KeysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Generate secp256k1 keypairs",
		Long:  `Generates keypairs and reports every derived public form: Ethereum address, uncompressed and compressed hex, and the Nostr nsec/npub encodings.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			KeysLogger = logger.Logger{
				Verbose: keysVerbose,
				Debug:   keysDebug,
			}
			KeysLogger.Debugf("Initializing keys command with verbose=%t, debug=%t", keysVerbose, keysDebug)
		},
	}
)

func init() {
	KeysCmd.PersistentFlags().BoolVarP(&keysVerbose, "verbose", "v", false, "enable verbose output")
	KeysCmd.PersistentFlags().BoolVar(&keysDebug, "debug", false, "enable debug output")

	KeysCmd.AddCommand(keysGenerateCmd)
}
