package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keycase-dev/keycase/internal/configs"
	"github.com/keycase-dev/keycase/internal/keys"
	"github.com/keycase-dev/keycase/internal/utils"
)

var (
	generateCount uint32
	generateOut   string

	keysGenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates fresh keypairs and writes the full key report",
		Long: `Each generated key is reported with its Ethereum address, public key
forms, and Nostr encodings. Without --out the report prints to stdout;
with --out it is written to generated_keys.json in that directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			KeysLogger.Infof("Generating %d keypair(s)", generateCount)
			if generateCount == 0 {
				return KeysLogger.ErrorfAndReturn("count must be at least 1")
			}

			report := make([]keys.GeneratedKey, 0, generateCount)
			for i := uint32(0); i < generateCount; i++ {
				keypair, err := keys.Generate()
				if err != nil {
					return KeysLogger.ErrorfAndReturn("failed to generate keypair: %v", err)
				}
				report = append(report, keypair.Generated())
				KeysLogger.Debugf("Generated key %d with address %s", i+1, keypair.EthAddress())
				keypair.Zero()
			}

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return KeysLogger.ErrorfAndReturn("failed to encode key report: %v", err)
			}
			data = append(data, '\n')

			if generateOut == "" {
				fmt.Print(string(data))
				return nil
			}

			if err := utils.EnsureDir(generateOut); err != nil {
				return KeysLogger.ErrorfAndReturn("failed to create output directory: %v", err)
			}
			path := utils.CreateUniquePath(generateOut, "generated_keys.json")
			if err := utils.WriteFileExclusive(path, data, 0o600); err != nil {
				return KeysLogger.ErrorfAndReturn("failed to write key report: %v", err)
			}

			fmt.Println(color.GreenString("✓") + " Generated " + fmt.Sprint(generateCount) + " keypair(s)\n" +
				"The report was written to " + color.YellowString(path) + "\n" +
				color.CyanString("→") + " Encrypt the private keys with " + color.YellowString("keycase vault export") + " and delete the report")
			return nil
		},
	}
)

func init() {
	keysGenerateCmd.Flags().Uint32VarP(&generateCount, "count", "c", 1, "number of keypairs to generate")
	keysGenerateCmd.Flags().StringVarP(&generateOut, "out", "o", configs.DefaultKeyOutputDir, "output directory (empty prints to stdout)")
}
