// Package txsign builds, signs, and decodes the offline EIP-1559
// transactions that carry key-delegation events. Each batch item selects
// one of the four registry contract functions; the package assembles the
// event tuple, produces the EIP-191 signatures over the off-chain payload
// hash, packs the calldata, and signs the transaction without ever
// touching the network.
package txsign
