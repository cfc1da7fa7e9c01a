package configs

// Chain and fee defaults for the offline transaction signer. These match
// a stock local devnet; real deployments override them per item or flag.
const (
	DefaultChainID         = 31337
	DefaultContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

	DefaultGasLimit             = "30000000"
	DefaultMaxFeePerGas         = "30000000000" // 30 gwei
	DefaultMaxPriorityFeePerGas = "2000000000"  // 2 gwei
)

// Default directories for generated artifacts.
const (
	DefaultKeyOutputDir     = "./generated_private_keys"
	DefaultTxOutputDir      = "./generated_transactions"
	DefaultDecryptOutputDir = "./decrypted_files"

	DefaultBatchOutputFile = "batch_output.json"
)
