package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/keycase-dev/keycase/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "keycase",
	Short: "Keycase - Offline key generation, encrypted backups, and air-gapped transaction signing.",
	Long: `Keycase is a command-line tool for machines that never touch a network:
it generates secp256k1 keypairs, seals them into passphrase-protected
backup files, and signs delegation transactions for later broadcast.

Features:
  - Generate keypairs with Ethereum and Nostr derivations
  - Encrypt private keys with Argon2id + XChaCha20-Poly1305 or OpenPGP
  - Sign batches of delegation events as EIP-1559 transactions

Usage:
  keycase <command> [flags]

Available Commands:
  keys       Generate secp256k1 keypairs
  vault      Encrypt and decrypt private-key backup files
  tx         Sign and inspect delegation transactions offline

Run 'keycase help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Keycase", "alligator2", "green", true)
		banner.Print()
		fmt.Println("Run 'keycase --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.VaultCmd)
	rootCmd.AddCommand(cmd.KeysCmd)
	rootCmd.AddCommand(cmd.TxCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
