package util

import "testing"

// Address round-trip: Address(prefix=Mainnet, version=PubKey, payload=[0;32])
// encodes to a fixed literal string, and decoding that string recovers the
// same prefix, version and payload.
func TestAddressLiteralVector(t *testing.T) {
	payload := make([]byte, 32)
	want := "kaspa:qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqkx9awp4e"

	got, err := EncodeAddress(Bech32PrefixKaspa, AddressVersionPubKey, payload)
	if err != nil {
		t.Fatalf("EncodeAddress: %s", err)
	}
	if got != want {
		t.Fatalf("EncodeAddress = %q, want %q", got, want)
	}

	prefix, version, decodedPayload, err := DecodeAddress(want)
	if err != nil {
		t.Fatalf("DecodeAddress: %s", err)
	}
	if prefix != Bech32PrefixKaspa {
		t.Fatalf("prefix = %v, want Bech32PrefixKaspa", prefix)
	}
	if version != AddressVersionPubKey {
		t.Fatalf("version = %v, want AddressVersionPubKey", version)
	}
	if len(decodedPayload) != 32 {
		t.Fatalf("payload length = %d, want 32", len(decodedPayload))
	}
	for i, b := range decodedPayload {
		if b != 0 {
			t.Fatalf("payload[%d] = %d, want 0", i, b)
		}
	}
}

func TestAddressRoundTripAllVersions(t *testing.T) {
	cases := []struct {
		name    string
		prefix  Bech32Prefix
		version AddressVersion
		payload []byte
	}{
		{"schnorr pubkey, mainnet", Bech32PrefixKaspa, AddressVersionPubKey, bytesRange(32, 0x11)},
		{"ecdsa pubkey, testnet", Bech32PrefixKaspaTest, AddressVersionPubKeyECDSA, bytesRange(33, 0x02)},
		{"script hash, devnet", Bech32PrefixKaspaDev, AddressVersionScriptHash, bytesRange(32, 0x7f)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded, err := EncodeAddress(c.prefix, c.version, c.payload)
			if err != nil {
				t.Fatalf("EncodeAddress: %s", err)
			}

			prefix, version, payload, err := DecodeAddress(encoded)
			if err != nil {
				t.Fatalf("DecodeAddress(%q): %s", encoded, err)
			}
			if prefix != c.prefix || version != c.version {
				t.Fatalf("decoded (prefix=%v, version=%v), want (%v, %v)", prefix, version, c.prefix, c.version)
			}
			if string(payload) != string(c.payload) {
				t.Fatalf("decoded payload %x, want %x", payload, c.payload)
			}
		})
	}
}

// A single flipped character anywhere in the payload-and-checksum run must
// break the checksum; the polymod seed mixes every character into every
// output bit.
func TestAddressSingleCharacterCorruptionIsDetected(t *testing.T) {
	addr := "kaspa:qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqkx9awp4e"
	corrupted := []byte(addr)
	// Flip the final checksum character from 'e' to a different charset letter.
	corrupted[len(corrupted)-1] = 'l'

	if _, _, _, err := DecodeAddress(string(corrupted)); err == nil {
		t.Fatal("expected corrupted address to fail checksum verification")
	}
}

func bytesRange(n int, start byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}
