package vault

import (
	"crypto/rand"
	"fmt"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

// ExportOptions control the Modern export path.
type ExportOptions struct {
	Params KDFParams
	// Noise prepends 8 random bytes to the file so the header does not start
	// with a recognizable version byte. Purely cosmetic, but once present the
	// prefix is cryptographically bound via the AAD.
	Noise bool
}

// ExportModern encrypts a key record into a Modern container:
// fresh random salt and nonce, Argon2id key derivation, XChaCha20-Poly1305
// with the full header as associated data, output = header || ciphertext+tag.
//
// The password buffer is consumed: it is zeroized before return on every
// path, as is the derived key.
func ExportModern(record *KeyRecord, password []byte, opts ExportOptions) ([]byte, error) {
	defer Zero(password)

	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	plaintext, err := record.MarshalPretty()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrPayloadDecode, err)
	}
	defer Zero(plaintext)

	h := &Header{
		Version: FormatVersion,
		KDFID:   KDFArgon2id,
		Params:  opts.Params,
		Salt:    make([]byte, SaltLen),
		Nonce:   make([]byte, NonceLen),
	}
	if _, err := rand.Read(h.Salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	if _, err := rand.Read(h.Nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	if opts.Noise {
		h.Noise = make([]byte, NoiseLen)
		if _, err := rand.Read(h.Noise); err != nil {
			return nil, fmt.Errorf("generating noise prefix: %w", err)
		}
		// Keep the first noise byte out of the OpenPGP packet-tag ranges
		// (>= 0x80) and away from the version byte, so our own files always
		// classify as Modern-with-noise under the detection order.
		h.Noise[0] = 0x02 + h.Noise[0]%0x7e
	}

	aad, err := h.Encode()
	if err != nil {
		return nil, err
	}

	key := DeriveKey(password, h.Salt, h.Params)
	defer Zero(key)

	ciphertext, err := Seal(key, h.Nonce, plaintext, aad)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(aad)+len(ciphertext))
	out = append(out, aad...)
	out = append(out, ciphertext...)
	return out, nil
}

// ImportModern decrypts a Modern container. The key is re-derived from the
// parameters embedded in the header, never from caller-supplied ones, and
// the associated data is the full stored header bytes including any noise
// prefix. The password buffer is consumed.
func ImportModern(data, password []byte) (*KeyRecord, error) {
	defer Zero(password)

	det, err := Detect(data)
	if err != nil {
		return nil, err
	}
	switch det.Format {
	case FormatModern, FormatModernNoise:
	default:
		return nil, fmt.Errorf("%w: input is %s, not a modern container", kerrors.ErrUnrecognizedFormat, det.Format)
	}
	return importModern(det, data, password)
}

// importModern finishes a Modern import from an existing detection.
// The caller keeps ownership of the password buffer.
func importModern(det Detection, data, password []byte) (*KeyRecord, error) {
	h := det.Header
	if err := h.Params.Validate(); err != nil {
		return nil, err
	}
	if len(h.Nonce) != NonceLen {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", kerrors.ErrBadSaltOrNonce, len(h.Nonce), NonceLen)
	}

	key := DeriveKey(password, h.Salt, h.Params)
	defer Zero(key)

	plaintext, err := Open(key, h.Nonce, data[det.HeaderLen:], h.Bytes())
	if err != nil {
		return nil, err
	}
	defer Zero(plaintext)

	return ParseKeyRecord(plaintext)
}

// ExportPGP encrypts a key record as a binary OpenPGP message via the
// delegated engine. The passphrase buffer is consumed.
func ExportPGP(record *KeyRecord, passphrase []byte) ([]byte, error) {
	defer Zero(passphrase)

	plaintext, err := record.MarshalPretty()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrPayloadDecode, err)
	}
	defer Zero(plaintext)

	return EncryptPGP(plaintext, passphrase)
}

// ImportPGP decrypts an OpenPGP message (armored or binary) and parses the
// key record. The passphrase buffer is consumed.
func ImportPGP(data, passphrase []byte) (*KeyRecord, error) {
	defer Zero(passphrase)

	plaintext, err := DecryptPGP(data, passphrase)
	if err != nil {
		return nil, err
	}
	defer Zero(plaintext)

	return ParseKeyRecord(plaintext)
}

// Import classifies the input once and dispatches on the resulting tag.
// There is no fallback chain: a Modern container that fails to authenticate
// is never retried as PGP. The password buffer is consumed.
func Import(data, password []byte) (*KeyRecord, Format, error) {
	defer Zero(password)

	det, err := Detect(data)
	if err != nil {
		return nil, FormatUnknown, err
	}

	switch det.Format {
	case FormatModern, FormatModernNoise:
		record, err := importModern(det, data, password)
		return record, det.Format, err
	case FormatPGPArmored, FormatPGPBinary:
		plaintext, err := DecryptPGP(data, password)
		if err != nil {
			return nil, det.Format, err
		}
		defer Zero(plaintext)
		record, err := ParseKeyRecord(plaintext)
		return record, det.Format, err
	default:
		return nil, FormatUnknown, kerrors.ErrUnrecognizedFormat
	}
}
