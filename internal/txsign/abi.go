package txsign

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Function names of the delegation registry contract.
const (
	FuncDelegation   = "createDelegationEvent"
	FuncRevocation   = "createRevocationEvent"
	FuncInvalidation = "createPermanentInvalidationEvent"
	FuncCombo        = "createRevocationEventFollowedByDelegationEvent"
)

const delegationComponents = `[
	{"name":"delegatorPubkey","type":"bytes"},
	{"name":"delegateePubkey","type":"bytes"},
	{"name":"delegationStartTime","type":"uint256"},
	{"name":"delegationEndTime","type":"uint256"},
	{"name":"doesRevocationRequireDelegateeSignature","type":"bool"},
	{"name":"nonce","type":"bytes16"},
	{"name":"expectedAddressOfDeployedContract","type":"bytes"},
	{"name":"rDelegatorPubkeySig","type":"bytes32"},
	{"name":"sDelegatorPubkeySig","type":"bytes32"},
	{"name":"vDelegatorPubkeySig","type":"uint8"},
	{"name":"rDelegateePubkeySig","type":"bytes32"},
	{"name":"sDelegateePubkeySig","type":"bytes32"},
	{"name":"vDelegateePubkeySig","type":"uint8"}
]`

const revocationComponents = `[
	{"name":"revokerPubkey","type":"bytes"},
	{"name":"revokeePubkey","type":"bytes"},
	{"name":"revocationStartTime","type":"uint256"},
	{"name":"revocationEndTime","type":"uint256"},
	{"name":"nonce","type":"bytes16"},
	{"name":"expectedAddressOfDeployedContract","type":"bytes"},
	{"name":"rRevokerPubkeySig","type":"bytes32"},
	{"name":"sRevokerPubkeySig","type":"bytes32"},
	{"name":"vRevokerPubkeySig","type":"uint8"},
	{"name":"rRevokeePubkeySig","type":"bytes32"},
	{"name":"sRevokeePubkeySig","type":"bytes32"},
	{"name":"vRevokeePubkeySig","type":"uint8"}
]`

const invalidationComponents = `[
	{"name":"invalidatedPubkey","type":"bytes"},
	{"name":"nonce","type":"bytes16"},
	{"name":"expectedAddressOfDeployedContract","type":"bytes"},
	{"name":"rInvalidatedPubkeySig","type":"bytes32"},
	{"name":"sInvalidatedPubkeySig","type":"bytes32"},
	{"name":"vInvalidatedPubkeySig","type":"uint8"}
]`

var registryABIJSON = `[
	{"type":"function","name":"` + FuncDelegation + `","stateMutability":"nonpayable","outputs":[],
	 "inputs":[{"name":"delegationInputData","type":"tuple","components":` + delegationComponents + `}]},
	{"type":"function","name":"` + FuncRevocation + `","stateMutability":"nonpayable","outputs":[],
	 "inputs":[{"name":"revocationInputData","type":"tuple","components":` + revocationComponents + `}]},
	{"type":"function","name":"` + FuncInvalidation + `","stateMutability":"nonpayable","outputs":[],
	 "inputs":[{"name":"invalidationInputData","type":"tuple","components":` + invalidationComponents + `}]},
	{"type":"function","name":"` + FuncCombo + `","stateMutability":"nonpayable","outputs":[],
	 "inputs":[
		{"name":"revocationInputData","type":"tuple","components":` + revocationComponents + `},
		{"name":"delegationInputData","type":"tuple","components":` + delegationComponents + `}]}
]`

// registryABI is parsed once at startup; the JSON above is a constant, so
// a parse failure is a programming error.
var registryABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(registryABIJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// DelegationArgs mirrors the delegation tuple. Field order and names must
// track the ABI components for go-ethereum's reflection-based packing.
type DelegationArgs struct {
	DelegatorPubkey                         []byte
	DelegateePubkey                         []byte
	DelegationStartTime                     *big.Int
	DelegationEndTime                       *big.Int
	DoesRevocationRequireDelegateeSignature bool
	Nonce                                   [16]byte
	ExpectedAddressOfDeployedContract       []byte
	RDelegatorPubkeySig                     [32]byte
	SDelegatorPubkeySig                     [32]byte
	VDelegatorPubkeySig                     uint8
	RDelegateePubkeySig                     [32]byte
	SDelegateePubkeySig                     [32]byte
	VDelegateePubkeySig                     uint8
}

// RevocationArgs mirrors the revocation tuple.
type RevocationArgs struct {
	RevokerPubkey                     []byte
	RevokeePubkey                     []byte
	RevocationStartTime               *big.Int
	RevocationEndTime                 *big.Int
	Nonce                             [16]byte
	ExpectedAddressOfDeployedContract []byte
	RRevokerPubkeySig                 [32]byte
	SRevokerPubkeySig                 [32]byte
	VRevokerPubkeySig                 uint8
	RRevokeePubkeySig                 [32]byte
	SRevokeePubkeySig                 [32]byte
	VRevokeePubkeySig                 uint8
}

// InvalidationArgs mirrors the permanent-invalidation tuple.
type InvalidationArgs struct {
	InvalidatedPubkey                 []byte
	Nonce                             [16]byte
	ExpectedAddressOfDeployedContract []byte
	RInvalidatedPubkeySig             [32]byte
	SInvalidatedPubkeySig             [32]byte
	VInvalidatedPubkeySig             uint8
}

func mustType(t string) abi.Type {
	ty, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return ty
}

var (
	typBytes   = mustType("bytes")
	typUint256 = mustType("uint256")
	typBool    = mustType("bool")
	typBytes16 = mustType("bytes16")
)

// Off-chain payload encodings: the tuple fields up to but excluding the
// signatures, abi.encode'd then hashed. Signing and on-chain verification
// agree on these argument lists.
var (
	delegationPayloadArgs = abi.Arguments{
		{Type: typBytes},   // delegatorPubkey
		{Type: typBytes},   // delegateePubkey
		{Type: typUint256}, // delegationStartTime
		{Type: typUint256}, // delegationEndTime
		{Type: typBool},    // doesRevocationRequireDelegateeSignature
		{Type: typBytes16}, // nonce
		{Type: typBytes},   // expectedAddressOfDeployedContract
	}
	revocationPayloadArgs = abi.Arguments{
		{Type: typBytes},
		{Type: typBytes},
		{Type: typUint256},
		{Type: typUint256},
		{Type: typBytes16},
		{Type: typBytes},
	}
	invalidationPayloadArgs = abi.Arguments{
		{Type: typBytes},
		{Type: typBytes16},
		{Type: typBytes},
	}
)
