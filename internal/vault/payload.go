package vault

import (
	"encoding/json"
	"fmt"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

// KeyRecord is the plaintext JSON payload carried inside either container
// format. Field order below is the serialization order. The hex fields have
// no 0x prefix; the uncompressed public key starts with byte 0x04 (130 hex
// chars), the compressed one with 0x02 or 0x03 (66 hex chars).
type KeyRecord struct {
	Nickname                 string `json:"nickname"`
	PrivateKeyHex            string `json:"private_key_hex"`
	PrivateKeyNsec           string `json:"private_key_nsec"`
	PublicKeyUncompressedHex string `json:"public_key_uncompressed_hex"`
	PublicKeyCompressedHex   string `json:"public_key_compressed_hex"`
	PublicKeyNpub            string `json:"public_key_npub"`
}

// MarshalPretty serializes the record as the pretty-printed UTF-8 JSON that
// goes into the container.
func (r *KeyRecord) MarshalPretty() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ParseKeyRecord parses a decrypted payload. Parsing is forward-compatible:
// unknown extra fields are ignored, never rejected, so newer exporters can
// add fields without breaking older importers.
func ParseKeyRecord(data []byte) (*KeyRecord, error) {
	var r KeyRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrPayloadDecode, err)
	}
	if r.PrivateKeyHex == "" {
		return nil, fmt.Errorf("%w: missing private_key_hex", kerrors.ErrPayloadDecode)
	}
	return &r, nil
}
