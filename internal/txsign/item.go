package txsign

// Item is one entry of the batch input file. The upper-case field names
// are the established interchange format; every optional field is a
// pointer so absence and an explicit zero stay distinguishable.
type Item struct {
	FunctionToCall  string  `json:"FUNCTION_TO_CALL"`
	Nonce           *uint64 `json:"NONCE"`
	ChainID         *uint64 `json:"CHAIN_ID"`
	ContractAddress string  `json:"CONTRACT_ADDRESS"`

	// Delegation (type A) side.
	TypeAPrivkeyX *string `json:"TYPE_A_PRIVKEY_X"`
	TypeAPrivkeyY *string `json:"TYPE_A_PRIVKEY_Y"`
	TypeAPubkeyY  *string `json:"TYPE_A_PUBKEY_Y"`
	TypeAUintX    *uint64 `json:"TYPE_A_UINT_X"`
	TypeAUintY    *uint64 `json:"TYPE_A_UINT_Y"`
	TypeABoolean  *string `json:"TYPE_A_BOOLEAN"`

	// Revocation (type B) side.
	TypeBPrivkeyX *string `json:"TYPE_B_PRIVKEY_X"`
	TypeBPrivkeyY *string `json:"TYPE_B_PRIVKEY_Y"`
	TypeBPubkeyY  *string `json:"TYPE_B_PUBKEY_Y"`
	TypeBUintX    *uint64 `json:"TYPE_B_UINT_X"`
	TypeBUintY    *uint64 `json:"TYPE_B_UINT_Y"`

	// Invalidation (type C).
	TypeCPrivkeyX *string `json:"TYPE_C_PRIVKEY_X"`
}

// BatchEntry is one entry of the batch output file.
type BatchEntry struct {
	SignedTx  string    `json:"signedTx"`
	DecodedTx DecodedTx `json:"decodedTx"`
}

// DecodedTx is the human-auditable rendering of a signed transaction.
// Numeric fields are decimal strings except the transaction nonce.
type DecodedTx struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	Value                string `json:"value"`
	GasLimit             string `json:"gasLimit"`
	Nonce                uint64 `json:"nonce"`
	ChainID              string `json:"chainId"`
	MaxFeePerGas         string `json:"maxFeePerGas"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
	FuncName             string `json:"funcName"`
	EncodedData          string `json:"encodedData"`

	// Single-event functions populate DecodedData; the combined
	// revocation-then-delegation function populates the TypeA/TypeB pair.
	DecodedData      any                `json:"decodedData,omitempty"`
	DecodedDataTypeA *DecodedDelegation `json:"decodedDataTypeA,omitempty"`
	DecodedDataTypeB *DecodedRevocation `json:"decodedDataTypeB,omitempty"`
}

// DecodedDelegation renders a delegation tuple with every value as a
// 0x-hex or decimal string, in tuple order.
type DecodedDelegation struct {
	DelegatorPubkey                         string `json:"delegatorPubkey"`
	DelegateePubkey                         string `json:"delegateePubkey"`
	DelegationStartTime                     string `json:"delegationStartTime"`
	DelegationEndTime                       string `json:"delegationEndTime"`
	DoesRevocationRequireDelegateeSignature bool   `json:"doesRevocationRequireDelegateeSignature"`
	Nonce                                   string `json:"nonce"`
	ExpectedAddressOfDeployedContract       string `json:"expectedAddressOfDeployedContract"`
	RDelegatorPubkeySig                     string `json:"rDelegatorPubkeySig"`
	SDelegatorPubkeySig                     string `json:"sDelegatorPubkeySig"`
	VDelegatorPubkeySig                     string `json:"vDelegatorPubkeySig"`
	RDelegateePubkeySig                     string `json:"rDelegateePubkeySig"`
	SDelegateePubkeySig                     string `json:"sDelegateePubkeySig"`
	VDelegateePubkeySig                     string `json:"vDelegateePubkeySig"`
}

// DecodedRevocation renders a revocation tuple.
type DecodedRevocation struct {
	RevokerPubkey                     string `json:"revokerPubkey"`
	RevokeePubkey                     string `json:"revokeePubkey"`
	RevocationStartTime               string `json:"revocationStartTime"`
	RevocationEndTime                 string `json:"revocationEndTime"`
	Nonce                             string `json:"nonce"`
	ExpectedAddressOfDeployedContract string `json:"expectedAddressOfDeployedContract"`
	RRevokerPubkeySig                 string `json:"rRevokerPubkeySig"`
	SRevokerPubkeySig                 string `json:"sRevokerPubkeySig"`
	VRevokerPubkeySig                 string `json:"vRevokerPubkeySig"`
	RRevokeePubkeySig                 string `json:"rRevokeePubkeySig"`
	SRevokeePubkeySig                 string `json:"sRevokeePubkeySig"`
	VRevokeePubkeySig                 string `json:"vRevokeePubkeySig"`
}

// DecodedInvalidation renders a permanent-invalidation tuple.
type DecodedInvalidation struct {
	InvalidatedPubkey                 string `json:"invalidatedPubkey"`
	Nonce                             string `json:"nonce"`
	ExpectedAddressOfDeployedContract string `json:"expectedAddressOfDeployedContract"`
	RInvalidatedPubkeySig             string `json:"rInvalidatedPubkeySig"`
	SInvalidatedPubkeySig             string `json:"sInvalidatedPubkeySig"`
	VInvalidatedPubkeySig             string `json:"vInvalidatedPubkeySig"`
}
