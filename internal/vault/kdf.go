package vault

import (
	"fmt"

	"golang.org/x/crypto/argon2"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

// KeyLen is the derived AEAD key size in bytes.
const KeyLen = 32

// Caps for parameters accepted from file headers. An attacker-supplied
// header must not be able to force a multi-gigabyte allocation or an
// unbounded iteration count before the tag check has a chance to fail.
const (
	minTimeCost  = 1
	maxTimeCost  = 64
	minMemoryKiB = 8
	maxMemoryKiB = 4 * 1024 * 1024 // 4 GiB
	minParallel  = 1
	maxParallel  = 8
)

// KDFParams are the Argon2id cost parameters carried in the Modern header.
type KDFParams struct {
	TimeCost    uint32 // iterations
	MemoryKiB   uint32 // memory in KiB
	Parallelism uint8
}

// DefaultKDFParams match the exporter defaults: 3 passes over 256 MiB,
// single lane. Derivation takes on the order of a second.
var DefaultKDFParams = KDFParams{
	TimeCost:    3,
	MemoryKiB:   262144,
	Parallelism: 1,
}

// Validate bounds-checks parameters read from an untrusted header.
func (p KDFParams) Validate() error {
	if p.TimeCost < minTimeCost || p.TimeCost > maxTimeCost {
		return fmt.Errorf("%w: t_cost %d", kerrors.ErrKDFParams, p.TimeCost)
	}
	if p.MemoryKiB < minMemoryKiB || p.MemoryKiB > maxMemoryKiB {
		return fmt.Errorf("%w: m_cost %d KiB", kerrors.ErrKDFParams, p.MemoryKiB)
	}
	if p.Parallelism < minParallel || p.Parallelism > maxParallel {
		return fmt.Errorf("%w: p_cost %d", kerrors.ErrKDFParams, p.Parallelism)
	}
	if p.MemoryKiB < 8*uint32(p.Parallelism) {
		return fmt.Errorf("%w: m_cost %d KiB too small for %d lanes", kerrors.ErrKDFParams, p.MemoryKiB, p.Parallelism)
	}
	return nil
}

// DeriveKey runs Argon2id (version 0x13, no secret, no associated data) over
// the password bytes exactly as supplied. No trimming, case folding, or
// Unicode normalization happens here; if a caller wants normalized input it
// must apply it identically on export and import.
//
// The caller owns the returned key and must zeroize it when done.
func DeriveKey(password, salt []byte, p KDFParams) []byte {
	return argon2.IDKey(password, salt, p.TimeCost, p.MemoryKiB, p.Parallelism, KeyLen)
}
