package vault

import (
	"bytes"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

// Format tags the container type of an input byte stream.
type Format int

const (
	FormatUnknown Format = iota
	FormatModern         // Modern container, header at offset 0
	FormatModernNoise    // Modern container, 8-byte noise prefix
	FormatPGPArmored     // ASCII-armored OpenPGP message
	FormatPGPBinary      // binary OpenPGP message
)

func (f Format) String() string {
	switch f {
	case FormatModern:
		return "modern"
	case FormatModernNoise:
		return "modern (noise prefix)"
	case FormatPGPArmored:
		return "pgp (armored)"
	case FormatPGPBinary:
		return "pgp (binary)"
	default:
		return "unknown"
	}
}

// Detection is the tagged result of classifying an input. For the Modern
// formats the parsed header and the ciphertext offset are carried along so
// downstream code never re-detects.
type Detection struct {
	Format    Format
	Header    *Header // set for Modern formats only
	HeaderLen int     // offset of the first ciphertext byte
}

var armorMarker = []byte("-----BEGIN PGP MESSAGE-----")

// Detect classifies data without looking at any filename. Order matters:
// the PGP markers are unambiguous and checked first; Modern is probed at
// offset 0 before offset 8 because the common case has no noise prefix.
func Detect(data []byte) (Detection, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, armorMarker) {
		return Detection{Format: FormatPGPArmored}, nil
	}
	// OpenPGP packet tags: 0xC0-0xFF new format, 0x80-0xBF old format.
	if len(data) > 0 && data[0] >= 0x80 {
		return Detection{Format: FormatPGPBinary}, nil
	}

	if h, n, err := ParseHeader(data, 0); err == nil {
		return Detection{Format: FormatModern, Header: h, HeaderLen: n}, nil
	}
	if len(data) > NoiseLen {
		if h, n, err := ParseHeader(data, NoiseLen); err == nil {
			return Detection{Format: FormatModernNoise, Header: h, HeaderLen: n}, nil
		}
	}

	return Detection{Format: FormatUnknown}, kerrors.ErrUnrecognizedFormat
}
