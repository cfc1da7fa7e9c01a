// Package keys generates and parses secp256k1 keypairs and derives the
// public forms used across the tool: uncompressed and compressed hex, the
// Ethereum address, and the NIP-19 nsec/npub bech32 encodings.
package keys
