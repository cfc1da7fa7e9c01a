package vault

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

// TagLen is the Poly1305 tag size appended to the ciphertext.
const TagLen = chacha20poly1305.Overhead

// Seal encrypts plaintext with XChaCha20-Poly1305. The associated data must
// be the exact serialized header bytes as they appear in the file, noise
// prefix included. The returned slice is ciphertext with the 16-byte tag
// appended; the two are never separated in this format.
func Seal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("aead init: %w", err)
	}
	if len(nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrBadSaltOrNonce, chacha20poly1305.NonceSizeX, len(nonce))
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open decrypts and verifies ciphertext-with-tag produced by Seal. Every
// failure collapses into ErrAuthFailure: a wrong password and a tampered
// file are indistinguishable on purpose, so the result cannot be used as an
// oracle. Verification is all-or-nothing.
func Open(key, nonce, ciphertextAndTag, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("aead init: %w", err)
	}
	if len(nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrBadSaltOrNonce, chacha20poly1305.NonceSizeX, len(nonce))
	}
	if len(ciphertextAndTag) < TagLen {
		return nil, kerrors.ErrAuthFailure
	}
	plaintext, err := aead.Open(nil, nonce, ciphertextAndTag, aad)
	if err != nil {
		return nil, kerrors.ErrAuthFailure
	}
	return plaintext, nil
}
