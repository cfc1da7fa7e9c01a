package txsign

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/keycase-dev/keycase/internal/configs"
	kerrors "github.com/keycase-dev/keycase/internal/errors"
	"github.com/keycase-dev/keycase/internal/keys"
)

// Options carries the fee parameters shared by every item in a batch.
type Options struct {
	GasLimit             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// NewOptions parses the three fee parameters, each decimal or 0x hex.
func NewOptions(gasLimit, maxFee, maxPriority string) (Options, error) {
	var opts Options
	var err error
	if opts.GasLimit, err = ParseBig(gasLimit); err != nil {
		return Options{}, fmt.Errorf("gas limit: %w", err)
	}
	if opts.MaxFeePerGas, err = ParseBig(maxFee); err != nil {
		return Options{}, fmt.Errorf("max fee per gas: %w", err)
	}
	if opts.MaxPriorityFeePerGas, err = ParseBig(maxPriority); err != nil {
		return Options{}, fmt.Errorf("max priority fee per gas: %w", err)
	}
	return opts, nil
}

// DefaultOptions returns the fee parameters used when no flags are given.
func DefaultOptions() Options {
	opts, err := NewOptions(
		configs.DefaultGasLimit,
		configs.DefaultMaxFeePerGas,
		configs.DefaultMaxPriorityFeePerGas,
	)
	if err != nil {
		panic(err)
	}
	return opts
}

// ParseBig reads a non-negative integer from decimal or 0x-prefixed hex.
func ParseBig(s string) (*big.Int, error) {
	t := strings.TrimSpace(s)
	var v *big.Int
	var ok bool
	if after, found := strings.CutPrefix(t, "0x"); found {
		v, ok = new(big.Int).SetString(after, 16)
	} else {
		v, ok = new(big.Int).SetString(t, 10)
	}
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%q is not a non-negative integer", s)
	}
	return v, nil
}

func hexBytes(s string) ([]byte, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	return hex.DecodeString(t)
}

// ProcessItem builds, signs, and self-decodes the transaction for one
// batch item.
func ProcessItem(item *Item, opts Options) (*BatchEntry, error) {
	chainID := uint64(configs.DefaultChainID)
	if item.ChainID != nil {
		chainID = *item.ChainID
	}
	var txNonce uint64
	if item.Nonce != nil {
		txNonce = *item.Nonce
	}

	if !common.IsHexAddress(item.ContractAddress) {
		return nil, fmt.Errorf("CONTRACT_ADDRESS %q is not an address", item.ContractAddress)
	}
	contractBytes, err := hexBytes(strings.ToLower(item.ContractAddress))
	if err != nil {
		return nil, fmt.Errorf("CONTRACT_ADDRESS: %w", err)
	}

	s := &itemSigner{
		item:          item,
		opts:          opts,
		chainID:       new(big.Int).SetUint64(chainID),
		txNonce:       txNonce,
		to:            common.HexToAddress(item.ContractAddress),
		contractBytes: contractBytes,
	}

	switch item.FunctionToCall {
	case FuncDelegation:
		return s.signDelegation()
	case FuncRevocation:
		return s.signRevocation()
	case FuncInvalidation:
		return s.signInvalidation()
	case FuncCombo:
		return s.signCombo()
	default:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownFunction, item.FunctionToCall)
	}
}

type itemSigner struct {
	item          *Item
	opts          Options
	chainID       *big.Int
	txNonce       uint64
	to            common.Address
	contractBytes []byte
}

// counterparty is the second party of a delegation or revocation. When
// only a public key was supplied the signature slots stay zeroed and the
// counterparty countersigns on-chain later.
type counterparty struct {
	pubkey []byte
	key    *keys.Keypair
}

func requireString(p *string, field string) (string, error) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return "", fmt.Errorf("%w: %s", kerrors.ErrMissingField, field)
	}
	return *p, nil
}

func resolveCounterparty(privInput, pubInput *string, privField, pubField string) (*counterparty, error) {
	havePriv := privInput != nil && strings.TrimSpace(*privInput) != ""
	havePub := pubInput != nil && strings.TrimSpace(*pubInput) != ""

	switch {
	case havePriv && havePub:
		k, err := keys.ParsePrivateKey(*privInput)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", privField, err)
		}
		provided, err := keys.NormalizeUncompressedPubKey(*pubInput)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pubField, err)
		}
		if provided != "0x"+k.UncompressedHex() {
			return nil, fmt.Errorf("inconsistent %s and %s: the public key does not match the private key", privField, pubField)
		}
		raw, _ := hexBytes(provided)
		return &counterparty{pubkey: raw, key: k}, nil

	case havePriv:
		k, err := keys.ParsePrivateKey(*privInput)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", privField, err)
		}
		raw, _ := hexBytes(k.UncompressedHex())
		return &counterparty{pubkey: raw, key: k}, nil

	case havePub:
		provided, err := keys.NormalizeUncompressedPubKey(*pubInput)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pubField, err)
		}
		raw, _ := hexBytes(provided)
		return &counterparty{pubkey: raw}, nil

	default:
		return nil, fmt.Errorf("%w: provide %s or %s", kerrors.ErrMissingField, privField, pubField)
	}
}

// signPayload abi-encodes the values, hashes them, and signs the hash
// with EIP-191 personal-message semantics. v is 27 or 28.
func signPayload(args abi.Arguments, key *ecdsa.PrivateKey, values ...any) (r, s [32]byte, v uint8, err error) {
	packed, err := args.Pack(values...)
	if err != nil {
		return r, s, 0, fmt.Errorf("encoding payload: %w", err)
	}
	hash := crypto.Keccak256(packed)
	sig, err := crypto.Sign(accounts.TextHash(hash), key)
	if err != nil {
		return r, s, 0, fmt.Errorf("signing payload: %w", err)
	}
	copy(r[:], sig[:32])
	copy(s[:], sig[32:64])
	return r, s, sig[64] + 27, nil
}

// maybeSign countersigns with the counterparty key, or leaves the
// signature slots zeroed when only a public key is on hand.
func maybeSign(args abi.Arguments, cp *counterparty, values ...any) (r, s [32]byte, v uint8, err error) {
	if cp.key == nil {
		return r, s, 0, nil
	}
	return signPayload(args, cp.key.ECDSA(), values...)
}

func u64(p *uint64) *big.Int {
	if p == nil {
		return new(big.Int)
	}
	return new(big.Int).SetUint64(*p)
}

func newNonce16() [16]byte {
	return [16]byte(uuid.New())
}

// signTx wraps the calldata in an EIP-1559 transaction and signs it.
func (s *itemSigner) signTx(key *ecdsa.PrivateKey, data []byte) (string, error) {
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     s.txNonce,
		GasTipCap: s.opts.MaxPriorityFeePerGas,
		GasFeeCap: s.opts.MaxFeePerGas,
		Gas:       s.opts.GasLimit.Uint64(),
		To:        &s.to,
		Value:     new(big.Int),
		Data:      data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), key)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encoding transaction: %w", err)
	}
	return "0x" + hex.EncodeToString(raw), nil
}

func (s *itemSigner) finish(key *ecdsa.PrivateKey, data []byte) (*BatchEntry, error) {
	raw, err := s.signTx(key, data)
	if err != nil {
		return nil, err
	}
	// Decode our own output so the operator audits exactly what would
	// reach the chain.
	decoded, err := DecodeSignedTx(raw)
	if err != nil {
		return nil, fmt.Errorf("verifying signed transaction: %w", err)
	}
	return &BatchEntry{SignedTx: raw, DecodedTx: *decoded}, nil
}

func (s *itemSigner) delegationArgs() (*DelegationArgs, *keys.Keypair, error) {
	ownerInput, err := requireString(s.item.TypeAPrivkeyX, "TYPE_A_PRIVKEY_X")
	if err != nil {
		return nil, nil, err
	}
	owner, err := keys.ParsePrivateKey(ownerInput)
	if err != nil {
		return nil, nil, fmt.Errorf("TYPE_A_PRIVKEY_X: %w", err)
	}
	cp, err := resolveCounterparty(s.item.TypeAPrivkeyY, s.item.TypeAPubkeyY, "TYPE_A_PRIVKEY_Y", "TYPE_A_PUBKEY_Y")
	if err != nil {
		return nil, nil, err
	}

	delegatorPub, _ := hexBytes(owner.UncompressedHex())
	start := u64(s.item.TypeAUintX)
	end := u64(s.item.TypeAUintY)
	requiresSig := true
	if s.item.TypeABoolean != nil {
		requiresSig = *s.item.TypeABoolean == "true"
	}
	nonce := newNonce16()

	rOwner, sOwner, vOwner, err := signPayload(delegationPayloadArgs, owner.ECDSA(),
		delegatorPub, cp.pubkey, start, end, requiresSig, nonce, s.contractBytes)
	if err != nil {
		return nil, nil, err
	}
	rCp, sCp, vCp, err := maybeSign(delegationPayloadArgs, cp,
		delegatorPub, cp.pubkey, start, end, requiresSig, nonce, s.contractBytes)
	if err != nil {
		return nil, nil, err
	}

	return &DelegationArgs{
		DelegatorPubkey:                         delegatorPub,
		DelegateePubkey:                         cp.pubkey,
		DelegationStartTime:                     start,
		DelegationEndTime:                       end,
		DoesRevocationRequireDelegateeSignature: requiresSig,
		Nonce:                                   nonce,
		ExpectedAddressOfDeployedContract:       s.contractBytes,
		RDelegatorPubkeySig:                     rOwner,
		SDelegatorPubkeySig:                     sOwner,
		VDelegatorPubkeySig:                     vOwner,
		RDelegateePubkeySig:                     rCp,
		SDelegateePubkeySig:                     sCp,
		VDelegateePubkeySig:                     vCp,
	}, owner, nil
}

func (s *itemSigner) signDelegation() (*BatchEntry, error) {
	args, owner, err := s.delegationArgs()
	if err != nil {
		return nil, err
	}
	data, err := registryABI.Pack(FuncDelegation, args)
	if err != nil {
		return nil, fmt.Errorf("packing calldata: %w", err)
	}
	return s.finish(owner.ECDSA(), data)
}

// revocationArgs builds the revocation tuple. The signer key is the
// owner's; for the combined function the delegator revokes, so the
// revoker side reuses the type A owner key.
func (s *itemSigner) revocationArgs(owner *keys.Keypair) (*RevocationArgs, error) {
	cp, err := resolveCounterparty(s.item.TypeBPrivkeyY, s.item.TypeBPubkeyY, "TYPE_B_PRIVKEY_Y", "TYPE_B_PUBKEY_Y")
	if err != nil {
		return nil, err
	}

	revokerPub, _ := hexBytes(owner.UncompressedHex())
	start := u64(s.item.TypeBUintX)
	end := u64(s.item.TypeBUintY)
	nonce := newNonce16()

	rOwner, sOwner, vOwner, err := signPayload(revocationPayloadArgs, owner.ECDSA(),
		revokerPub, cp.pubkey, start, end, nonce, s.contractBytes)
	if err != nil {
		return nil, err
	}
	rCp, sCp, vCp, err := maybeSign(revocationPayloadArgs, cp,
		revokerPub, cp.pubkey, start, end, nonce, s.contractBytes)
	if err != nil {
		return nil, err
	}

	return &RevocationArgs{
		RevokerPubkey:                     revokerPub,
		RevokeePubkey:                     cp.pubkey,
		RevocationStartTime:               start,
		RevocationEndTime:                 end,
		Nonce:                             nonce,
		ExpectedAddressOfDeployedContract: s.contractBytes,
		RRevokerPubkeySig:                 rOwner,
		SRevokerPubkeySig:                 sOwner,
		VRevokerPubkeySig:                 vOwner,
		RRevokeePubkeySig:                 rCp,
		SRevokeePubkeySig:                 sCp,
		VRevokeePubkeySig:                 vCp,
	}, nil
}

func (s *itemSigner) signRevocation() (*BatchEntry, error) {
	ownerInput, err := requireString(s.item.TypeBPrivkeyX, "TYPE_B_PRIVKEY_X")
	if err != nil {
		return nil, err
	}
	owner, err := keys.ParsePrivateKey(ownerInput)
	if err != nil {
		return nil, fmt.Errorf("TYPE_B_PRIVKEY_X: %w", err)
	}

	args, err := s.revocationArgs(owner)
	if err != nil {
		return nil, err
	}
	data, err := registryABI.Pack(FuncRevocation, args)
	if err != nil {
		return nil, fmt.Errorf("packing calldata: %w", err)
	}
	return s.finish(owner.ECDSA(), data)
}

func (s *itemSigner) signInvalidation() (*BatchEntry, error) {
	ownerInput, err := requireString(s.item.TypeCPrivkeyX, "TYPE_C_PRIVKEY_X")
	if err != nil {
		return nil, err
	}
	owner, err := keys.ParsePrivateKey(ownerInput)
	if err != nil {
		return nil, fmt.Errorf("TYPE_C_PRIVKEY_X: %w", err)
	}

	invalidatedPub, _ := hexBytes(owner.UncompressedHex())
	nonce := newNonce16()

	r, sg, v, err := signPayload(invalidationPayloadArgs, owner.ECDSA(),
		invalidatedPub, nonce, s.contractBytes)
	if err != nil {
		return nil, err
	}

	args := &InvalidationArgs{
		InvalidatedPubkey:                 invalidatedPub,
		Nonce:                             nonce,
		ExpectedAddressOfDeployedContract: s.contractBytes,
		RInvalidatedPubkeySig:             r,
		SInvalidatedPubkeySig:             sg,
		VInvalidatedPubkeySig:             v,
	}
	data, err := registryABI.Pack(FuncInvalidation, args)
	if err != nil {
		return nil, fmt.Errorf("packing calldata: %w", err)
	}
	return s.finish(owner.ECDSA(), data)
}

// signCombo revokes one delegation and creates another in a single
// transaction. The type A owner key signs both sides; calldata order is
// [revocation, delegation].
func (s *itemSigner) signCombo() (*BatchEntry, error) {
	delegation, owner, err := s.delegationArgs()
	if err != nil {
		return nil, err
	}
	revocation, err := s.revocationArgs(owner)
	if err != nil {
		return nil, err
	}

	data, err := registryABI.Pack(FuncCombo, revocation, delegation)
	if err != nil {
		return nil, fmt.Errorf("packing calldata: %w", err)
	}
	return s.finish(owner.ECDSA(), data)
}
