package vault

import (
	"bytes"
	"encoding/binary"
	"fmt"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

const (
	// FormatVersion is the only Modern container version this build writes or reads.
	FormatVersion = 1

	// KDFArgon2id is the only key derivation algorithm identifier in use.
	KDFArgon2id = 1

	// SaltLen is the canonical salt length written by the exporter.
	SaltLen = 16

	// NonceLen is the XChaCha20-Poly1305 nonce length. Mandatory on import.
	NonceLen = 24

	// NoiseLen is the size of the optional random prefix.
	NoiseLen = 8
)

// Header is the Modern-format binary header. Multi-byte integers are
// little-endian. Field order on the wire:
//
//	[8B noise?][version][kdf_id][u32 t_cost][u32 m_cost_kib][p_cost]
//	[salt_len][salt][nonce_len][nonce]
//
// The header is the contiguous byte range [0, nonce_end) of the file and is
// bound into the AEAD tag as associated data in its entirety, noise included.
type Header struct {
	Noise   []byte // nil or exactly NoiseLen bytes
	Version byte
	KDFID   byte
	Params  KDFParams
	Salt    []byte
	Nonce   []byte

	raw []byte // exact serialized bytes, set by Encode and ParseHeader
}

// Bytes returns the exact serialized header, which is also the associated
// data for the AEAD step. Only valid after Encode or ParseHeader.
func (h *Header) Bytes() []byte { return h.raw }

// Encode serializes the header and caches the result for use as AAD.
// Salt and nonce are written with their actual lengths; lengths that do not
// fit in one byte are rejected rather than silently truncated.
func (h *Header) Encode() ([]byte, error) {
	if len(h.Noise) != 0 && len(h.Noise) != NoiseLen {
		return nil, fmt.Errorf("%w: noise prefix must be %d bytes, got %d", kerrors.ErrBadSaltOrNonce, NoiseLen, len(h.Noise))
	}
	if len(h.Salt) == 0 || len(h.Salt) > 255 {
		return nil, fmt.Errorf("%w: salt length %d", kerrors.ErrBadSaltOrNonce, len(h.Salt))
	}
	if len(h.Nonce) == 0 || len(h.Nonce) > 255 {
		return nil, fmt.Errorf("%w: nonce length %d", kerrors.ErrBadSaltOrNonce, len(h.Nonce))
	}

	buf := &bytes.Buffer{}
	buf.Grow(len(h.Noise) + 2 + 4 + 4 + 1 + 1 + len(h.Salt) + 1 + len(h.Nonce))
	buf.Write(h.Noise)
	buf.WriteByte(h.Version)
	buf.WriteByte(h.KDFID)
	_ = binary.Write(buf, binary.LittleEndian, h.Params.TimeCost)
	_ = binary.Write(buf, binary.LittleEndian, h.Params.MemoryKiB)
	buf.WriteByte(h.Params.Parallelism)
	buf.WriteByte(byte(len(h.Salt)))
	buf.Write(h.Salt)
	buf.WriteByte(byte(len(h.Nonce)))
	buf.Write(h.Nonce)

	h.raw = buf.Bytes()
	return h.raw, nil
}

// ParseHeader reads a header starting at the given offset (0, or NoiseLen
// when a noise prefix is assumed). The returned header's Bytes() covers
// buf[0:end] so the optional prefix is part of the AAD, and end is the
// offset of the first ciphertext byte.
//
// The noise prefix is indistinguishable from header bytes by position alone,
// so callers probe offset 0 first and offset NoiseLen second; see Detect.
func ParseHeader(buf []byte, offset int) (*Header, int, error) {
	if offset != 0 && offset != NoiseLen {
		return nil, 0, fmt.Errorf("header offset must be 0 or %d, got %d", NoiseLen, offset)
	}
	if len(buf) < offset+2 {
		return nil, 0, fmt.Errorf("%w: no room for version and kdf id", kerrors.ErrTruncatedInput)
	}

	h := &Header{
		Version: buf[offset],
		KDFID:   buf[offset+1],
	}
	if offset == NoiseLen {
		h.Noise = append([]byte(nil), buf[:NoiseLen]...)
	}
	if h.Version != FormatVersion {
		return nil, 0, fmt.Errorf("%w: %d", kerrors.ErrInvalidVersion, h.Version)
	}
	if h.KDFID != KDFArgon2id {
		return nil, 0, fmt.Errorf("%w: kdf id %d", kerrors.ErrInvalidKDF, h.KDFID)
	}

	i := offset + 2
	if len(buf) < i+9 {
		return nil, 0, fmt.Errorf("%w: no room for kdf parameters", kerrors.ErrTruncatedInput)
	}
	h.Params.TimeCost = binary.LittleEndian.Uint32(buf[i : i+4])
	i += 4
	h.Params.MemoryKiB = binary.LittleEndian.Uint32(buf[i : i+4])
	i += 4
	h.Params.Parallelism = buf[i]
	i++

	saltLen := int(buf[i])
	i++
	if len(buf) < i+saltLen {
		return nil, 0, fmt.Errorf("%w: salt runs past end of input", kerrors.ErrTruncatedInput)
	}
	h.Salt = append([]byte(nil), buf[i:i+saltLen]...)
	i += saltLen

	if len(buf) < i+1 {
		return nil, 0, fmt.Errorf("%w: no room for nonce length", kerrors.ErrTruncatedInput)
	}
	nonceLen := int(buf[i])
	i++
	if len(buf) < i+nonceLen {
		return nil, 0, fmt.Errorf("%w: nonce runs past end of input", kerrors.ErrTruncatedInput)
	}
	h.Nonce = append([]byte(nil), buf[i:i+nonceLen]...)
	i += nonceLen

	h.raw = append([]byte(nil), buf[:i]...)
	return h, i, nil
}
