package txscript

import (
	"math"
	"testing"
)

func TestScriptNumBytesRoundTrip(t *testing.T) {
	tests := []scriptNum{0, 1, -1, 127, 128, -128, 32767, 32768, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64 + 1}
	for _, n := range tests {
		encoded := n.Bytes()
		decoded, err := makeScriptNum(encoded, true, len(encoded))
		if err != nil {
			t.Fatalf("makeScriptNum(%d): %s", n, err)
		}
		if decoded != n {
			t.Fatalf("round trip mismatch: %d != %d (encoded %x)", n, decoded, encoded)
		}
	}
}

func TestScriptNumRejectsNonMinimalEncoding(t *testing.T) {
	// A single zero byte with no sign bit set is a non-minimal encoding of
	// zero (the minimal encoding is the empty array).
	if _, err := makeScriptNum([]byte{0x00}, true, 4); err == nil {
		t.Fatal("expected non-minimal zero encoding to be rejected")
	}
}

func TestScriptNumRejectsOversizedInput(t *testing.T) {
	if _, err := makeScriptNum([]byte{1, 2, 3, 4, 5}, false, 4); err == nil {
		t.Fatal("expected input longer than numLen to be rejected")
	}
}
