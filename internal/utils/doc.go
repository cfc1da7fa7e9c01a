// Package utils provides terminal passphrase prompting and the
// filesystem conventions for generated files: standardized encrypted and
// decrypted filenames, unique-path resolution, and exclusive writes.
package utils
