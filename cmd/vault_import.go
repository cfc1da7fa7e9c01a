package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keycase-dev/keycase/internal/configs"
	"github.com/keycase-dev/keycase/internal/utils"
	"github.com/keycase-dev/keycase/internal/vault"
)

var (
	importOut string

	importCmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Decrypts a backup file back into its plaintext key record",
		Long: `Detects the container format of the file, decrypts it with the supplied
passphrase, and writes the JSON record as
CAREFUL_NOT_ENCRYPTED_<name>.json in the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting import command")
			inputPath := args[0]

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read %s: %v", inputPath, err)
			}
			Logger.Debugf("Read %d bytes from %s", len(data), inputPath)

			password, err := utils.ReadPassphrase("Decryption passphrase: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
			}

			spinner, cleanup := startSpinner("Decrypting backup file...", verbose, debug)
			defer cleanup()

			record, format, err := vault.Import(data, password)
			if err != nil {
				// Deliberately terse: wrong passphrase and tampered file are
				// indistinguishable.
				spinner.FinalMSG = color.RedString("✗") + " Could not decrypt " + color.YellowString(inputPath) + "\n" +
					color.RedString("Error: ") + err.Error()
				return nil
			}
			Logger.Infof("Decrypted %s container", format)

			plaintext, err := record.MarshalPretty()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to render key record: %v", err)
			}

			if err := utils.EnsureDir(importOut); err != nil {
				return Logger.ErrorfAndReturn("failed to create output directory: %v", err)
			}
			path := utils.CreateUniquePath(importOut, utils.DecryptedFileName(inputPath))
			if err := utils.WriteFileExclusive(path, plaintext, 0o600); err != nil {
				return Logger.ErrorfAndReturn("failed to write decrypted file: %v", err)
			}
			Logger.Infof("Import command completed successfully")

			spinner.FinalMSG = color.GreenString("✓") + " Backup decrypted (" + format.String() + ")\n" +
				"The plaintext record was written to " + color.YellowString(path) + "\n" +
				color.CyanString("→") + " This file is NOT encrypted. Delete it as soon as you are done"
			return nil
		},
	}
)

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", configs.DefaultDecryptOutputDir, "output directory for the decrypted record")
}
