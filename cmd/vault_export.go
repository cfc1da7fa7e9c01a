package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keycase-dev/keycase/internal/keys"
	"github.com/keycase-dev/keycase/internal/utils"
	"github.com/keycase-dev/keycase/internal/vault"
)

var (
	exportKey      string
	exportNickname string
	exportFormat   string
	exportOut      string
	exportNoPad    bool
	exportKDFTime  uint32
	exportKDFMem   uint32
	exportKDFPar   uint8

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Encrypts a private key into a passphrase-protected backup file",
		Long: `Derives every public form of the key, wraps them in a JSON record, and
encrypts the record with the chosen container format. The file is named
SECRET_KEEP_AIRGAPPED_<nickname>_Private_Key.<ext> and must stay on the
air-gapped machine.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting export command")

			if exportFormat != "modern" && exportFormat != "pgp" {
				return Logger.ErrorfAndReturn("unknown format %q: use modern or pgp", exportFormat)
			}

			keyInput := exportKey
			if keyInput == "" {
				entered, err := utils.ReadPassphrase("Private key (hex or nsec): ")
				if err != nil {
					return Logger.ErrorfAndReturn("failed to read private key: %v", err)
				}
				keyInput = string(entered)
				vault.Zero(entered)
			}

			keypair, err := keys.ParsePrivateKey(keyInput)
			if err != nil {
				return Logger.ErrorfAndReturn("invalid private key: %v", err)
			}
			defer keypair.Zero()
			Logger.Debugf("Parsed private key, address %s", keypair.EthAddress())

			password, err := utils.ReadConfirmedPassphrase("Encryption passphrase: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
			}

			spinner, cleanup := startSpinner("Encrypting private key...", verbose, debug)
			defer cleanup()

			record := keypair.Record(exportNickname)

			var file []byte
			ext := "enc"
			if exportFormat == "pgp" {
				ext = "pgp"
				file, err = vault.ExportPGP(record, password)
			} else {
				params := vault.KDFParams{
					TimeCost:    exportKDFTime,
					MemoryKiB:   exportKDFMem,
					Parallelism: exportKDFPar,
				}
				file, err = vault.ExportModern(record, password, vault.ExportOptions{
					Params: params,
					Noise:  !exportNoPad,
				})
			}
			if err != nil {
				spinner.FinalMSG = color.RedString("✗") + " Failed to encrypt the private key\n" +
					color.RedString("Error: ") + err.Error()
				return nil
			}

			dir := utils.ResolveOutputDir(exportOut)
			if err := utils.EnsureDir(dir); err != nil {
				return Logger.ErrorfAndReturn("failed to create output directory: %v", err)
			}
			path := utils.CreateUniquePath(dir, utils.EncryptedFileName(exportNickname, ext))
			if err := utils.WriteFileExclusive(path, file, 0o600); err != nil {
				return Logger.ErrorfAndReturn("failed to write backup file: %v", err)
			}
			Logger.Infof("Export command completed successfully")

			spinner.FinalMSG = color.GreenString("✓") + " Private key encrypted successfully!\n" +
				"The backup was written to " + color.YellowString(path) + "\n" +
				color.CyanString("→") + " Keep this file on the air-gapped machine and remember the passphrase"
			return nil
		},
	}
)

func init() {
	exportCmd.Flags().StringVarP(&exportKey, "key", "k", "", "private key as hex or nsec (prompted when omitted)")
	exportCmd.Flags().StringVarP(&exportNickname, "nickname", "n", "Keypair", "nickname used in the backup filename and record")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "modern", "container format: modern or pgp")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().BoolVar(&exportNoPad, "no-pad", false, "omit the random 8-byte prefix of the modern container")
	exportCmd.Flags().Uint32Var(&exportKDFTime, "kdf-time", vault.DefaultKDFParams.TimeCost, "Argon2id passes")
	exportCmd.Flags().Uint32Var(&exportKDFMem, "kdf-memory", vault.DefaultKDFParams.MemoryKiB, "Argon2id memory in KiB")
	exportCmd.Flags().Uint8Var(&exportKDFPar, "kdf-parallelism", vault.DefaultKDFParams.Parallelism, "Argon2id lanes")
}
