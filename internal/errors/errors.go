package errors

import "errors"

// Container errors indicate a malformed or unsupported Modern-format header.
var (
	// ErrTruncatedInput indicates a declared length runs past the end of the buffer.
	ErrTruncatedInput = errors.New("container input is truncated")

	// ErrInvalidVersion indicates the header names a format version this build does not support.
	ErrInvalidVersion = errors.New("unsupported container format version")

	// ErrInvalidKDF indicates the header names an unknown key-derivation algorithm.
	ErrInvalidKDF = errors.New("unsupported key derivation algorithm")

	// ErrBadSaltOrNonce indicates the salt or nonce length in the header is unusable.
	ErrBadSaltOrNonce = errors.New("invalid salt or nonce length")

	// ErrKDFParams indicates the Argon2 parameters embedded in a header are out of bounds.
	ErrKDFParams = errors.New("key derivation parameters out of bounds")
)

// Decryption errors are terminal results of a single import operation.
var (
	// ErrAuthFailure indicates the AEAD tag did not verify. This deliberately
	// covers both a wrong password and a tampered file.
	ErrAuthFailure = errors.New("decryption failed: wrong password or corrupted file")

	// ErrUnrecognizedFormat indicates the input is neither a Modern container
	// nor an OpenPGP message.
	ErrUnrecognizedFormat = errors.New("unrecognized file format")

	// ErrPayloadDecode indicates decryption succeeded but the plaintext is not
	// a valid key record.
	ErrPayloadDecode = errors.New("decrypted payload is not a valid key record")

	// ErrPGPDelegation indicates the external OpenPGP engine reported a failure.
	ErrPGPDelegation = errors.New("openpgp engine error")
)

// Key errors indicate unusable key material supplied by the user.
var (
	// ErrInvalidPrivateKey indicates the private key input is not 32 bytes or
	// is outside the valid secp256k1 scalar range.
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")

	// ErrInvalidPublicKey indicates a public key could not be parsed in any
	// accepted encoding.
	ErrInvalidPublicKey = errors.New("invalid secp256k1 public key")
)

// Transaction errors indicate issues while building or decoding signed transactions.
var (
	// ErrUnknownFunction indicates the requested function is not in the embedded ABI.
	ErrUnknownFunction = errors.New("function not in embedded ABI")

	// ErrNotEIP1559 indicates a raw transaction is not a type-2 (EIP-1559) transaction.
	ErrNotEIP1559 = errors.New("not a type-2 (EIP-1559) transaction")

	// ErrMissingField indicates a batch item lacks a required field.
	ErrMissingField = errors.New("batch item is missing a required field")
)
