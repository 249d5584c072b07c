package txscript

import "testing"

func TestScriptBuilderCanonicalPushes(t *testing.T) {
	script, err := NewScriptBuilder().
		AddInt64(0).
		AddInt64(5).
		AddInt64(-1).
		AddData([]byte{0xde, 0xad, 0xbe, 0xef}).
		Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}

	want := []byte{OpFalse, OpTrue + 4, Op1Negate, OpData4, 0xde, 0xad, 0xbe, 0xef}
	if len(script) != len(want) {
		t.Fatalf("script length = %d, want %d (%x)", len(script), len(want), script)
	}
	for i := range want {
		if script[i] != want[i] {
			t.Fatalf("byte %d = 0x%x, want 0x%x", i, script[i], want[i])
		}
	}
}

func TestIsScriptHashRoundTrip(t *testing.T) {
	redeemScript, err := NewScriptBuilder().AddOp(OpTrue).Script()
	if err != nil {
		t.Fatalf("building redeem script: %s", err)
	}
	p2shScript, err := PayToScriptHashScript(redeemScript)
	if err != nil {
		t.Fatalf("PayToScriptHashScript: %s", err)
	}
	if !IsScriptHash(p2shScript) {
		t.Fatal("expected PayToScriptHashScript output to be recognized as a script hash")
	}
}

func TestGetSigOpCountP2PK(t *testing.T) {
	scriptPubKey, err := PayToPubKeyScript(make([]byte, 32))
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %s", err)
	}
	if got := GetSigOpCount(nil, scriptPubKey); got != 1 {
		t.Fatalf("GetSigOpCount = %d, want 1", got)
	}
}

func TestGetSigOpCountMultiSigUsesPrecedingSmallInt(t *testing.T) {
	scriptPubKey, err := NewScriptBuilder().
		AddOp(OpTrue + 1). // OP_2: 2 signatures required
		AddOp(OpCheckMultiSig).
		Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}
	if got := GetSigOpCount(nil, scriptPubKey); got != 2 {
		t.Fatalf("GetSigOpCount = %d, want 2", got)
	}
}

func TestIsUnspendableOpReturn(t *testing.T) {
	script, err := NewScriptBuilder().AddOp(OpReturn).Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}
	if !IsUnspendable(script) {
		t.Fatal("expected an OP_RETURN-led script to be unspendable")
	}
}

func TestParseScriptRejectsTruncatedPush(t *testing.T) {
	// OP_DATA_4 declares 4 bytes of data but only 2 follow.
	_, err := parseScript([]byte{OpData4, 0x01, 0x02})
	if err == nil {
		t.Fatal("expected truncated push to error")
	}
}
