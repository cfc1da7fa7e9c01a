// Package configs holds the compiled-in defaults: chain and fee
// parameters for the transaction signer and output locations for
// generated files.
package configs
