package txsign

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	kerrors "github.com/keycase-dev/keycase/internal/errors"
)

func hex0x(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// DecodeSignedTx parses a raw signed transaction, recovers the sender,
// and unpacks the calldata into the matching event tuple(s). Only type-2
// (EIP-1559) transactions are accepted.
func DecodeSignedTx(rawHex string) (*DecodedTx, error) {
	raw, err := hexBytes(rawHex)
	if err != nil {
		return nil, fmt.Errorf("raw transaction: %w", err)
	}
	if len(raw) == 0 || raw[0] != types.DynamicFeeTxType {
		return nil, fmt.Errorf("%w: first byte %#02x", kerrors.ErrNotEIP1559, firstByte(raw))
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("decoding transaction: %w", err)
	}
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, fmt.Errorf("recovering sender: %w", err)
	}
	if tx.To() == nil {
		return nil, fmt.Errorf("transaction has no recipient")
	}

	decoded := &DecodedTx{
		From:                 strings.ToLower(from.Hex()),
		To:                   strings.ToLower(tx.To().Hex()),
		Value:                tx.Value().String(),
		GasLimit:             strconv.FormatUint(tx.Gas(), 10),
		Nonce:                tx.Nonce(),
		ChainID:              tx.ChainId().String(),
		MaxFeePerGas:         tx.GasFeeCap().String(),
		MaxPriorityFeePerGas: tx.GasTipCap().String(),
		EncodedData:          hex0x(tx.Data()),
	}
	if err := decodeCalldata(tx.Data(), decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func firstByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

func decodeCalldata(data []byte, out *DecodedTx) error {
	if len(data) < 4 {
		return fmt.Errorf("calldata too short: %d bytes", len(data))
	}
	method, err := registryABI.MethodById(data[:4])
	if err != nil {
		return fmt.Errorf("%w: selector %s", kerrors.ErrUnknownFunction, hex0x(data[:4]))
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return fmt.Errorf("unpacking %s calldata: %w", method.Name, err)
	}
	out.FuncName = method.Name

	switch method.Name {
	case FuncDelegation:
		out.DecodedData = renderDelegation(values[0])
	case FuncRevocation:
		out.DecodedData = renderRevocation(values[0])
	case FuncInvalidation:
		out.DecodedData = renderInvalidation(values[0])
	case FuncCombo:
		// Calldata order is [revocation, delegation]; the report keeps
		// the delegation first.
		out.DecodedDataTypeB = renderRevocation(values[0])
		out.DecodedDataTypeA = renderDelegation(values[1])
	}
	return nil
}

func renderDelegation(v any) *DecodedDelegation {
	args := abi.ConvertType(v, new(DelegationArgs)).(*DelegationArgs)
	return &DecodedDelegation{
		DelegatorPubkey:                         hex0x(args.DelegatorPubkey),
		DelegateePubkey:                         hex0x(args.DelegateePubkey),
		DelegationStartTime:                     args.DelegationStartTime.String(),
		DelegationEndTime:                       args.DelegationEndTime.String(),
		DoesRevocationRequireDelegateeSignature: args.DoesRevocationRequireDelegateeSignature,
		Nonce:                                   hex0x(args.Nonce[:]),
		ExpectedAddressOfDeployedContract:       hex0x(args.ExpectedAddressOfDeployedContract),
		RDelegatorPubkeySig:                     hex0x(args.RDelegatorPubkeySig[:]),
		SDelegatorPubkeySig:                     hex0x(args.SDelegatorPubkeySig[:]),
		VDelegatorPubkeySig:                     strconv.Itoa(int(args.VDelegatorPubkeySig)),
		RDelegateePubkeySig:                     hex0x(args.RDelegateePubkeySig[:]),
		SDelegateePubkeySig:                     hex0x(args.SDelegateePubkeySig[:]),
		VDelegateePubkeySig:                     strconv.Itoa(int(args.VDelegateePubkeySig)),
	}
}

func renderRevocation(v any) *DecodedRevocation {
	args := abi.ConvertType(v, new(RevocationArgs)).(*RevocationArgs)
	return &DecodedRevocation{
		RevokerPubkey:                     hex0x(args.RevokerPubkey),
		RevokeePubkey:                     hex0x(args.RevokeePubkey),
		RevocationStartTime:               args.RevocationStartTime.String(),
		RevocationEndTime:                 args.RevocationEndTime.String(),
		Nonce:                             hex0x(args.Nonce[:]),
		ExpectedAddressOfDeployedContract: hex0x(args.ExpectedAddressOfDeployedContract),
		RRevokerPubkeySig:                 hex0x(args.RRevokerPubkeySig[:]),
		SRevokerPubkeySig:                 hex0x(args.SRevokerPubkeySig[:]),
		VRevokerPubkeySig:                 strconv.Itoa(int(args.VRevokerPubkeySig)),
		RRevokeePubkeySig:                 hex0x(args.RRevokeePubkeySig[:]),
		SRevokeePubkeySig:                 hex0x(args.SRevokeePubkeySig[:]),
		VRevokeePubkeySig:                 strconv.Itoa(int(args.VRevokeePubkeySig)),
	}
}

func renderInvalidation(v any) *DecodedInvalidation {
	args := abi.ConvertType(v, new(InvalidationArgs)).(*InvalidationArgs)
	return &DecodedInvalidation{
		InvalidatedPubkey:                 hex0x(args.InvalidatedPubkey),
		Nonce:                             hex0x(args.Nonce[:]),
		ExpectedAddressOfDeployedContract: hex0x(args.ExpectedAddressOfDeployedContract),
		RInvalidatedPubkeySig:             hex0x(args.RInvalidatedPubkeySig[:]),
		SInvalidatedPubkeySig:             hex0x(args.SInvalidatedPubkeySig[:]),
		VInvalidatedPubkeySig:             strconv.Itoa(int(args.VInvalidatedPubkeySig)),
	}
}
