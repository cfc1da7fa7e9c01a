package keys

import (
	"strings"
	"testing"
)

// The scalar 1 has well-known public derivations (the generator point),
// which pins every encoding without trusting our own output.
const (
	onePriv         = "0000000000000000000000000000000000000000000000000000000000000001"
	oneUncompressed = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	oneCompressed   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	oneXOnly        = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	oneEthAddress   = "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf"

	// The secp256k1 group order; not a valid private scalar.
	groupOrder = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
)

func TestKnownScalarDerivations(t *testing.T) {
	k, err := ParsePrivateKey(onePriv)
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}

	if got := k.PrivateKeyHex(); got != onePriv {
		t.Errorf("PrivateKeyHex = %s", got)
	}
	if got := k.UncompressedHex(); got != oneUncompressed {
		t.Errorf("UncompressedHex = %s", got)
	}
	if got := k.CompressedHex(); got != oneCompressed {
		t.Errorf("CompressedHex = %s", got)
	}
	if got := k.XOnlyHex(); got != oneXOnly {
		t.Errorf("XOnlyHex = %s", got)
	}
	if got := k.EthAddress(); got != oneEthAddress {
		t.Errorf("EthAddress = %s", got)
	}
}

func TestParsePrivateKeyForms(t *testing.T) {
	base, err := ParsePrivateKey(onePriv)
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}

	// 0x prefix and surrounding whitespace are tolerated.
	for _, input := range []string{"0x" + onePriv, "  " + onePriv + "\n", base.Nsec()} {
		k, err := ParsePrivateKey(input)
		if err != nil {
			t.Errorf("ParsePrivateKey(%q) failed: %v", input, err)
			continue
		}
		if k.PrivateKeyHex() != onePriv {
			t.Errorf("ParsePrivateKey(%q) = %s", input, k.PrivateKeyHex())
		}
	}
}

func TestParsePrivateKeyRejections(t *testing.T) {
	cases := []string{
		"",
		"zz",
		onePriv[:62],      // too short
		onePriv + "ab",    // too long
		strings.Repeat("00", 32), // zero scalar
		groupOrder,        // not reduced
		"nsec1invalidinvalidinvalid",
		"npub1" + onePriv, // wrong prefix routed through hex parse
	}
	for _, input := range cases {
		if _, err := ParsePrivateKey(input); err == nil {
			t.Errorf("ParsePrivateKey(%q) accepted invalid input", input)
		}
	}
}

func TestBech32RoundTrip(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	nsec := k.Nsec()
	if !strings.HasPrefix(nsec, "nsec1") {
		t.Errorf("Nsec = %s", nsec)
	}
	if !strings.HasPrefix(k.Npub(), "npub1") {
		t.Errorf("Npub = %s", k.Npub())
	}

	back, err := ParsePrivateKey(nsec)
	if err != nil {
		t.Fatalf("ParsePrivateKey(nsec) failed: %v", err)
	}
	if back.PrivateKeyHex() != k.PrivateKeyHex() {
		t.Error("Nsec round trip changed the scalar")
	}
}

func TestGenerateUnique(t *testing.T) {
	a, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.PrivateKeyHex() == b.PrivateKeyHex() {
		t.Error("Two generated keys are identical")
	}
}

func TestRecordFields(t *testing.T) {
	k, err := ParsePrivateKey(onePriv)
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}

	record := k.Record("ledger-main")
	if record.Nickname != "ledger-main" {
		t.Errorf("Nickname = %s", record.Nickname)
	}
	if record.PrivateKeyHex != onePriv {
		t.Errorf("PrivateKeyHex = %s", record.PrivateKeyHex)
	}
	if record.PublicKeyUncompressedHex != oneUncompressed {
		t.Errorf("PublicKeyUncompressedHex = %s", record.PublicKeyUncompressedHex)
	}
	if record.PrivateKeyNsec != k.Nsec() || record.PublicKeyNpub != k.Npub() {
		t.Error("Bech32 fields do not match the keypair")
	}
}

func TestGeneratedReport(t *testing.T) {
	k, err := ParsePrivateKey(onePriv)
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}

	g := k.Generated()
	if g.PrivateKeyHex != "0x"+onePriv {
		t.Errorf("PrivateKeyHex = %s", g.PrivateKeyHex)
	}
	if g.PublicKeyUncompressed != "0x"+oneUncompressed {
		t.Errorf("PublicKeyUncompressed = %s", g.PublicKeyUncompressed)
	}
	if g.Address != oneEthAddress {
		t.Errorf("Address = %s", g.Address)
	}
	if g.PrivateKeyHexNostrFormat != onePriv || g.PublicKeyHexNostrFormat != oneXOnly {
		t.Error("Nostr hex fields must carry no 0x prefix")
	}
}

func TestNormalizeUncompressedPubKey(t *testing.T) {
	want := "0x" + oneUncompressed

	cases := []string{
		oneUncompressed,
		"0x" + oneUncompressed,
		oneCompressed,
		"0x" + oneCompressed,
		oneUncompressed[2:],          // 64 bytes, 04 prefix stripped
		"0x" + oneUncompressed[2:],
		strings.ToUpper(oneCompressed),
	}
	for _, input := range cases {
		got, err := NormalizeUncompressedPubKey(input)
		if err != nil {
			t.Errorf("NormalizeUncompressedPubKey(%q) failed: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("NormalizeUncompressedPubKey(%q) = %s", input, got)
		}
	}
}

func TestNormalizeUncompressedPubKeyRejections(t *testing.T) {
	cases := []string{
		"",
		"nothex",
		"0x" + strings.Repeat("ab", 20),                     // wrong length
		"05" + oneUncompressed[2:],                          // bad prefix byte
		"04" + strings.Repeat("00", 32) + strings.Repeat("00", 31) + "05", // not on curve
	}
	for _, input := range cases {
		if _, err := NormalizeUncompressedPubKey(input); err == nil {
			t.Errorf("NormalizeUncompressedPubKey(%q) accepted invalid input", input)
		}
	}
}
