// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"strings"
)

// ErrChecksumMismatch describes an error where decoding failed due
// to a bad checksum.
var ErrChecksumMismatch = fmt.Errorf("checksum mismatch")

// Bech32Prefix is the human-readable prefix of an address string, tying it
// to the network it was minted for. Unlike a standard bech32 human-readable
// part, the prefix is dropped from the checksum's data payload entirely: it
// is expanded once, on both encode and decode, as part of the polymod seed.
type Bech32Prefix int

// Constants that define Bech32 address prefixes. Every network is assigned
// a unique prefix.
const (
	// Bech32PrefixUnknown is the zero value, used for erroneous prefixes.
	Bech32PrefixUnknown Bech32Prefix = iota

	// Bech32PrefixKaspa is the prefix for the main network.
	Bech32PrefixKaspa

	// Bech32PrefixKaspaTest is the prefix for the test network.
	Bech32PrefixKaspaTest

	// Bech32PrefixKaspaSim is the prefix for the simulation network.
	Bech32PrefixKaspaSim

	// Bech32PrefixKaspaDev is the prefix for the development network.
	Bech32PrefixKaspaDev
)

var stringsToBech32Prefixes = map[string]Bech32Prefix{
	"kaspa":     Bech32PrefixKaspa,
	"kaspatest": Bech32PrefixKaspaTest,
	"kaspasim":  Bech32PrefixKaspaSim,
	"kaspadev":  Bech32PrefixKaspaDev,
}

// ParsePrefix attempts to parse a Bech32 address prefix.
func ParsePrefix(prefixString string) (Bech32Prefix, error) {
	prefix, ok := stringsToBech32Prefixes[prefixString]
	if !ok {
		return Bech32PrefixUnknown, fmt.Errorf("could not parse prefix %s", prefixString)
	}

	return prefix, nil
}

// String converts a Bech32 address prefix to its string value.
func (prefix Bech32Prefix) String() string {
	for key, value := range stringsToBech32Prefixes {
		if prefix == value {
			return key
		}
	}

	return ""
}

// AddressVersion is the leading byte of an address's payload, identifying
// what kind of destination the payload encodes.
type AddressVersion byte

const (
	// AddressVersionPubKey identifies a 32-byte Schnorr x-only public key:
	// the payload is pushed directly by OP_CHECKSIG's pay-to-pubkey script.
	AddressVersionPubKey AddressVersion = 0

	// AddressVersionPubKeyECDSA identifies a 33-byte compressed ECDSA
	// public key.
	AddressVersionPubKeyECDSA AddressVersion = 1

	// AddressVersionScriptHash identifies a 32-byte Blake2b hash of a
	// pay-to-script-hash redeem script.
	AddressVersionScriptHash AddressVersion = 8
)

func (version AddressVersion) payloadLength() (int, error) {
	switch version {
	case AddressVersionPubKey, AddressVersionScriptHash:
		return 32, nil
	case AddressVersionPubKeyECDSA:
		return 33, nil
	default:
		return 0, fmt.Errorf("unknown address version %d", version)
	}
}

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var charsetReverse = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i, c := range charset {
		table[c] = int8(i)
	}
	return table
}()

// generator holds the five 40-bit constants of the polymod checksum's
// generator polynomial. This is not standard BIP-173 bech32: the checksum is
// computed over the prefix plus a 5-bit recoding of version||payload, with
// no separator byte folded into the data itself.
var generator = [5]uint64{
	0x98f2bc8e61,
	0x79b76d99e2,
	0xf33e5fb3c4,
	0xae2eabe2a8,
	0x1e4f43e470,
}

// polymod computes the checksum residue over a sequence of 5-bit values.
func polymod(values []byte) uint64 {
	var checksum uint64 = 1
	for _, value := range values {
		topBits := checksum >> 35
		checksum = ((checksum & 0x07ffffffff) << 5) ^ uint64(value)
		for i := 0; i < 5; i++ {
			if (topBits>>uint(i))&1 != 0 {
				checksum ^= generator[i]
			}
		}
	}
	return checksum
}

// prefixToUint5Array expands a human-readable prefix into the lower 5 bits
// of each of its characters plus a trailing zero separator, the form the
// polymod seed expects it in.
func prefixToUint5Array(prefix string) []byte {
	result := make([]byte, len(prefix)+1)
	for i, c := range prefix {
		result[i] = byte(c) & 0x1f
	}
	return result
}

// convertBits repacks a slice of fromBits-wide groups into toBits-wide
// groups, padding the final group with zero bits when pad is true.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	var acc uint32
	var bits uint
	maxValue := uint32(1<<toBits) - 1
	var result []byte
	for _, value := range data {
		if uint32(value)>>fromBits != 0 {
			return nil, fmt.Errorf("invalid data range: data[%d]=%d (bit size %d)", len(result), value, fromBits)
		}
		acc = (acc << fromBits) | uint32(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			result = append(result, byte((acc>>bits)&maxValue))
		}
	}
	if pad {
		if bits > 0 {
			result = append(result, byte((acc<<(toBits-bits))&maxValue))
		}
	} else if bits >= fromBits || (acc<<(toBits-bits))&maxValue != 0 {
		return nil, fmt.Errorf("invalid incomplete group")
	}
	return result, nil
}

// EncodeAddress serialises version||payload under the given network prefix
// into the address's bech32-like string form:
// "<prefix>:<payload-and-checksum in the custom charset>".
func EncodeAddress(prefix Bech32Prefix, version AddressVersion, payload []byte) (string, error) {
	expectedLength, err := version.payloadLength()
	if err != nil {
		return "", err
	}
	if len(payload) != expectedLength {
		return "", fmt.Errorf("payload for address version %d must be %d bytes, got %d", version, expectedLength, len(payload))
	}

	versionedPayload := make([]byte, 1+len(payload))
	versionedPayload[0] = byte(version)
	copy(versionedPayload[1:], payload)

	data5, err := convertBits(versionedPayload, 8, 5, true)
	if err != nil {
		return "", err
	}

	prefixString := prefix.String()
	if prefixString == "" {
		return "", fmt.Errorf("unknown address prefix %d", prefix)
	}

	checksumInput := append(prefixToUint5Array(prefixString), data5...)
	checksumInput = append(checksumInput, make([]byte, 8)...)
	checksum := polymod(checksumInput) ^ 1

	payloadAndChecksum := make([]byte, len(data5)+8)
	copy(payloadAndChecksum, data5)
	for i := 0; i < 8; i++ {
		payloadAndChecksum[len(data5)+i] = byte((checksum >> uint(5*(7-i))) & 0x1f)
	}

	var sb strings.Builder
	sb.WriteString(prefixString)
	sb.WriteByte(':')
	for _, value := range payloadAndChecksum {
		sb.WriteByte(charset[value])
	}
	return sb.String(), nil
}

// DecodeAddress decodes an address string of the form "<prefix>:<payload>"
// and verifies its checksum, returning the network prefix, version and raw
// payload it encodes.
func DecodeAddress(addr string) (Bech32Prefix, AddressVersion, []byte, error) {
	colonIndex := strings.LastIndexByte(addr, ':')
	if colonIndex < 0 {
		return Bech32PrefixUnknown, 0, nil, fmt.Errorf("address %q is missing its prefix separator", addr)
	}
	prefixString, payloadString := addr[:colonIndex], addr[colonIndex+1:]

	prefix, err := ParsePrefix(prefixString)
	if err != nil {
		return Bech32PrefixUnknown, 0, nil, err
	}

	if len(payloadString) < 8 {
		return Bech32PrefixUnknown, 0, nil, fmt.Errorf("address payload too short")
	}

	data5 := make([]byte, len(payloadString))
	for i := 0; i < len(payloadString); i++ {
		value := charsetReverse[payloadString[i]]
		if value < 0 {
			return Bech32PrefixUnknown, 0, nil, fmt.Errorf("invalid character %q in address", payloadString[i])
		}
		data5[i] = byte(value)
	}

	checksumInput := append(prefixToUint5Array(prefixString), data5...)
	if polymod(checksumInput) != 1 {
		return Bech32PrefixUnknown, 0, nil, ErrChecksumMismatch
	}

	versionedPayload, err := convertBits(data5[:len(data5)-8], 5, 8, false)
	if err != nil {
		return Bech32PrefixUnknown, 0, nil, err
	}
	if len(versionedPayload) == 0 {
		return Bech32PrefixUnknown, 0, nil, fmt.Errorf("empty address payload")
	}

	version := AddressVersion(versionedPayload[0])
	payload := versionedPayload[1:]
	expectedLength, err := version.payloadLength()
	if err != nil {
		return Bech32PrefixUnknown, 0, nil, err
	}
	if len(payload) != expectedLength {
		return Bech32PrefixUnknown, 0, nil, fmt.Errorf("payload for address version %d must be %d bytes, got %d", version, expectedLength, len(payload))
	}

	return prefix, version, payload, nil
}

// Address is a decoded Kaspa address: a network, a destination kind and its
// raw payload bytes, ready to be turned back into a scriptPubKey.
type Address struct {
	Prefix  Bech32Prefix
	Version AddressVersion
	Payload []byte
}

// NewAddress constructs an Address, validating the payload length against
// the version's fixed size.
func NewAddress(prefix Bech32Prefix, version AddressVersion, payload []byte) (*Address, error) {
	expectedLength, err := version.payloadLength()
	if err != nil {
		return nil, err
	}
	if len(payload) != expectedLength {
		return nil, fmt.Errorf("payload for address version %d must be %d bytes, got %d", version, expectedLength, len(payload))
	}
	payloadCopy := make([]byte, len(payload))
	copy(payloadCopy, payload)
	return &Address{Prefix: prefix, Version: version, Payload: payloadCopy}, nil
}

// String returns the address's bech32-like string encoding.
func (a *Address) String() string {
	encoded, err := EncodeAddress(a.Prefix, a.Version, a.Payload)
	if err != nil {
		// Only reachable if the Address was built bypassing NewAddress
		// with an invalid version/payload pairing.
		return ""
	}
	return encoded
}

// DecodeAddressString parses addr and returns the resulting Address.
func DecodeAddressString(addr string) (*Address, error) {
	prefix, version, payload, err := DecodeAddress(addr)
	if err != nil {
		return nil, err
	}
	return &Address{Prefix: prefix, Version: version, Payload: payload}, nil
}
