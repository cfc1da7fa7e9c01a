package vault

import (
	"errors"
	"testing"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

func TestDetectModern(t *testing.T) {
	raw, err := testHeader(false).Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	data := append(raw, make([]byte, 64)...) // fake ciphertext

	det, err := Detect(data)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if det.Format != FormatModern {
		t.Errorf("Expected FormatModern, got %v", det.Format)
	}
	if det.HeaderLen != len(raw) {
		t.Errorf("Expected header length %d, got %d", len(raw), det.HeaderLen)
	}
}

func TestDetectModernNoise(t *testing.T) {
	raw, err := testHeader(true).Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	data := append(raw, make([]byte, 64)...)

	det, err := Detect(data)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if det.Format != FormatModernNoise {
		t.Errorf("Expected FormatModernNoise, got %v", det.Format)
	}
	if len(det.Header.Noise) != NoiseLen {
		t.Errorf("Expected %d noise bytes, got %d", NoiseLen, len(det.Header.Noise))
	}
}

func TestDetectPGPArmored(t *testing.T) {
	data := []byte("\n  -----BEGIN PGP MESSAGE-----\n\nwx4EBwMI...\n-----END PGP MESSAGE-----\n")
	det, err := Detect(data)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if det.Format != FormatPGPArmored {
		t.Errorf("Expected FormatPGPArmored, got %v", det.Format)
	}
}

func TestDetectPGPBinary(t *testing.T) {
	// 0xC3 is a new-format SKESK packet tag; 0x8C an old-format one.
	for _, first := range []byte{0xC3, 0x8C, 0x80, 0xFF} {
		det, err := Detect([]byte{first, 0x01, 0x02})
		if err != nil {
			t.Fatalf("Detect failed for first byte %02x: %v", first, err)
		}
		if det.Format != FormatPGPBinary {
			t.Errorf("First byte %02x: expected FormatPGPBinary, got %v", first, det.Format)
		}
	}
}

func TestDetectUnknown(t *testing.T) {
	for _, data := range [][]byte{nil, {0x00}, []byte("not a container at all")} {
		det, err := Detect(data)
		if !errors.Is(err, kerrors.ErrUnrecognizedFormat) {
			t.Errorf("Expected ErrUnrecognizedFormat, got %v", err)
		}
		if det.Format != FormatUnknown {
			t.Errorf("Expected FormatUnknown, got %v", det.Format)
		}
	}
}
