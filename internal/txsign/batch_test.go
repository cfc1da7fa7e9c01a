package txsign

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/keycase-dev/keycase/internal/configs"
)

const batchJSON = `[
  {
    "FUNCTION_TO_CALL": "createDelegationEvent",
    "NONCE": 0,
    "CONTRACT_ADDRESS": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
    "TYPE_A_PRIVKEY_X": "0000000000000000000000000000000000000000000000000000000000000001",
    "TYPE_A_PRIVKEY_Y": "0000000000000000000000000000000000000000000000000000000000000002",
    "TYPE_A_UINT_X": 1700000000,
    "TYPE_A_UINT_Y": 1800000000,
    "TYPE_A_BOOLEAN": "true"
  },
  {
    "FUNCTION_TO_CALL": "createPermanentInvalidationEvent",
    "NONCE": 1,
    "CONTRACT_ADDRESS": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
    "TYPE_C_PRIVKEY_X": "0000000000000000000000000000000000000000000000000000000000000001"
  }
]`

func TestParseItems(t *testing.T) {
	items, err := ParseItems([]byte(batchJSON))
	if err != nil {
		t.Fatalf("ParseItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].FunctionToCall != FuncDelegation || items[1].FunctionToCall != FuncInvalidation {
		t.Errorf("Functions: %s, %s", items[0].FunctionToCall, items[1].FunctionToCall)
	}
	if items[0].TypeAUintX == nil || *items[0].TypeAUintX != 1700000000 {
		t.Error("TYPE_A_UINT_X not parsed")
	}
	if items[1].ChainID != nil {
		t.Error("Absent CHAIN_ID must stay nil")
	}
}

func TestParseItemsErrors(t *testing.T) {
	if _, err := ParseItems([]byte("{}")); err == nil {
		t.Error("Expected non-array input to fail")
	}
	if _, err := ParseItems([]byte("[]")); err == nil {
		t.Error("Expected empty batch to fail")
	}
}

func TestProcessBatch(t *testing.T) {
	items, err := ParseItems([]byte(batchJSON))
	if err != nil {
		t.Fatalf("ParseItems failed: %v", err)
	}

	entries, err := ProcessBatch(items, DefaultOptions())
	if err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].DecodedTx.Nonce != 0 || entries[1].DecodedTx.Nonce != 1 {
		t.Error("Transaction nonces not carried through")
	}
}

func TestProcessBatchAbortsOnBadItem(t *testing.T) {
	items := []Item{
		{FunctionToCall: "bogus", ContractAddress: configs.DefaultContractAddress},
	}
	if _, err := ProcessBatch(items, DefaultOptions()); err == nil || !strings.Contains(err.Error(), "item 0") {
		t.Errorf("Expected indexed failure, got %v", err)
	}
}

func TestMarshalEntries(t *testing.T) {
	items, err := ParseItems([]byte(batchJSON))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := ProcessBatch(items[:1], DefaultOptions())
	if err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}

	data, err := MarshalEntries(entries)
	if err != nil {
		t.Fatalf("MarshalEntries failed: %v", err)
	}
	for _, field := range []string{`"signedTx"`, `"decodedTx"`, `"funcName"`, `"delegatorPubkey"`, `"maxFeePerGas"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Output missing %s", field)
		}
	}
	// Still valid JSON after indenting.
	var back []BatchEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Errorf("Output not parseable: %v", err)
	}
}
