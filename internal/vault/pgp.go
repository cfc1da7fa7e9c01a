package vault

import (
	"bytes"
	"fmt"

	"github.com/ProtonMail/gopenpgp/v2/crypto"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

// The OpenPGP path is a delegation boundary: S2K, session keys, and packet
// framing belong entirely to the gopenpgp engine. This file only owns the
// call contract. Engine errors are wrapped for diagnostics and never parsed
// for control flow.

// EncryptPGP produces a binary OpenPGP message carrying plaintext as a
// single literal-data packet, symmetrically encrypted under passphrase.
func EncryptPGP(plaintext, passphrase []byte) ([]byte, error) {
	msg, err := crypto.EncryptMessageWithPassword(crypto.NewPlainMessage(plaintext), passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrPGPDelegation, err)
	}
	return msg.GetBinary(), nil
}

// DecryptPGP decrypts a symmetrically-encrypted OpenPGP message, armored or
// binary, and returns the literal plaintext.
func DecryptPGP(message, passphrase []byte) ([]byte, error) {
	var pgpMsg *crypto.PGPMessage
	if bytes.HasPrefix(bytes.TrimLeft(message, " \t\r\n"), armorMarker) {
		var err error
		pgpMsg, err = crypto.NewPGPMessageFromArmored(string(message))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrPGPDelegation, err)
		}
	} else {
		pgpMsg = crypto.NewPGPMessage(message)
	}

	plain, err := crypto.DecryptMessageWithPassword(pgpMsg, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrPGPDelegation, err)
	}
	return plain.GetBinary(), nil
}
