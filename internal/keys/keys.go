package keys

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
	"github.com/keycase-dev/keycase/internal/vault"
)

// Keypair wraps a secp256k1 private key and derives every public form the
// exporters and signers need. Call Zero when the key material is no longer
// needed.
type Keypair struct {
	priv *secp256k1.PrivateKey
}

// Generate creates a fresh keypair from the OS entropy source.
func Generate() (*Keypair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}
	return &Keypair{priv: priv}, nil
}

// ParsePrivateKey accepts a 64-char hex scalar (0x prefix optional) or a
// NIP-19 nsec1... string. The scalar must be nonzero and below the group
// order; out-of-range values are rejected, never silently reduced.
func ParsePrivateKey(input string) (*Keypair, error) {
	s := strings.TrimSpace(input)

	var raw []byte
	if strings.HasPrefix(strings.ToLower(s), "nsec1") {
		var err error
		raw, err = decodeNsec(s)
		if err != nil {
			return nil, err
		}
	} else {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		var err error
		raw, err = hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPrivateKey, err)
		}
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes, want 32", kerrors.ErrInvalidPrivateKey, len(raw))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(raw); overflow {
		return nil, fmt.Errorf("%w: scalar not below the group order", kerrors.ErrInvalidPrivateKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", kerrors.ErrInvalidPrivateKey)
	}
	return &Keypair{priv: secp256k1.NewPrivateKey(&scalar)}, nil
}

func decodeNsec(s string) ([]byte, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bech32 decode: %v", kerrors.ErrInvalidPrivateKey, err)
	}
	if strings.ToLower(hrp) != "nsec" {
		return nil, fmt.Errorf("%w: human-readable part %q", kerrors.ErrInvalidPrivateKey, hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPrivateKey, err)
	}
	return raw, nil
}

func encodeBech32(hrp string, payload []byte) string {
	conv, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		// 8-to-5 expansion of a 32-byte payload cannot fail.
		panic(err)
	}
	s, err := bech32.Encode(hrp, conv)
	if err != nil {
		panic(err)
	}
	return s
}

// PrivateKeyHex returns the 64-char hex scalar, no prefix.
func (k *Keypair) PrivateKeyHex() string {
	return hex.EncodeToString(k.priv.Serialize())
}

// Nsec returns the NIP-19 bech32 encoding of the private key.
func (k *Keypair) Nsec() string {
	return encodeBech32("nsec", k.priv.Serialize())
}

// UncompressedHex returns the 65-byte 0x04||X||Y public key as 130 hex chars.
func (k *Keypair) UncompressedHex() string {
	return hex.EncodeToString(k.priv.PubKey().SerializeUncompressed())
}

// CompressedHex returns the 33-byte 0x02/0x03||X public key as 66 hex chars.
func (k *Keypair) CompressedHex() string {
	return hex.EncodeToString(k.priv.PubKey().SerializeCompressed())
}

// XOnlyHex returns the 32-byte X coordinate, the Nostr public key form.
func (k *Keypair) XOnlyHex() string {
	return hex.EncodeToString(k.priv.PubKey().SerializeCompressed()[1:])
}

// Npub returns the NIP-19 bech32 encoding of the x-only public key.
func (k *Keypair) Npub() string {
	return encodeBech32("npub", k.priv.PubKey().SerializeCompressed()[1:])
}

// EthAddress returns the lowercase 0x-prefixed Ethereum address:
// Keccak-256 over X||Y, last 20 bytes.
func (k *Keypair) EthAddress() string {
	uncompressed := k.priv.PubKey().SerializeUncompressed()
	h := sha3.NewLegacyKeccak256()
	h.Write(uncompressed[1:])
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[12:])
}

// ECDSA exposes the key for signers that take the stdlib type.
func (k *Keypair) ECDSA() *ecdsa.PrivateKey {
	return k.priv.ToECDSA()
}

// Record assembles the payload carried inside the encrypted containers.
func (k *Keypair) Record(nickname string) *vault.KeyRecord {
	return &vault.KeyRecord{
		Nickname:                 nickname,
		PrivateKeyHex:            k.PrivateKeyHex(),
		PrivateKeyNsec:           k.Nsec(),
		PublicKeyUncompressedHex: k.UncompressedHex(),
		PublicKeyCompressedHex:   k.CompressedHex(),
		PublicKeyNpub:            k.Npub(),
	}
}

// Zero erases the private scalar.
func (k *Keypair) Zero() {
	k.priv.Zero()
}

// GeneratedKey is the JSON shape printed by `keycase keys generate`.
// Ethereum-friendly fields first, then the Nostr conveniences.
type GeneratedKey struct {
	PrivateKeyHex            string `json:"privateKeyHex"`
	PublicKeyUncompressed    string `json:"publicKeyUncompressed0x04"`
	PublicKeyCompressed      string `json:"publicKeyCompressed"`
	Address                  string `json:"address"`
	PrivateKeyHexNostrFormat string `json:"privateKeyHexNostrFormat"`
	PublicKeyHexNostrFormat  string `json:"publicKeyHexNostrFormat"`
	Nsec                     string `json:"nsec"`
	Npub                     string `json:"npub"`
}

// Generated returns the full generated-key report, hex fields 0x-prefixed
// except the Nostr raw forms.
func (k *Keypair) Generated() GeneratedKey {
	return GeneratedKey{
		PrivateKeyHex:            "0x" + k.PrivateKeyHex(),
		PublicKeyUncompressed:    "0x" + k.UncompressedHex(),
		PublicKeyCompressed:      "0x" + k.CompressedHex(),
		Address:                  k.EthAddress(),
		PrivateKeyHexNostrFormat: k.PrivateKeyHex(),
		PublicKeyHexNostrFormat:  k.XOnlyHex(),
		Nsec:                     k.Nsec(),
		Npub:                     k.Npub(),
	}
}

// NormalizeUncompressedPubKey canonicalizes a public key to lowercase
// 0x-prefixed 0x04||X||Y hex. Accepted inputs: 33-byte compressed,
// 65-byte uncompressed, or 64-byte uncompressed missing its 04 prefix,
// with or without a 0x prefix.
func NormalizeUncompressedPubKey(input string) (string, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidPublicKey, err)
	}

	switch len(raw) {
	case 33:
		if raw[0] != 0x02 && raw[0] != 0x03 {
			return "", fmt.Errorf("%w: compressed key must start with 02 or 03", kerrors.ErrInvalidPublicKey)
		}
	case 65:
		if raw[0] != 0x04 {
			return "", fmt.Errorf("%w: 65-byte key must start with 04", kerrors.ErrInvalidPublicKey)
		}
	case 64:
		raw = append([]byte{0x04}, raw...)
	default:
		return "", fmt.Errorf("%w: unsupported length %d", kerrors.ErrInvalidPublicKey, len(raw))
	}

	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidPublicKey, err)
	}
	return "0x" + hex.EncodeToString(pub.SerializeUncompressed()), nil
}
