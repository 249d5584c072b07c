package externalapi

import "github.com/pkg/errors"

// Primitive validation errors. These are sentinel causes meant to be wrapped
// with errors.Wrap/Wrapf so callers can still match on the underlying kind
// via errors.Is while getting a message with the offending values.
//
// Of these, only ErrBadLength is returned by code in this module.
// ErrIntegerRange, ErrBadChecksum, ErrUnknownPrefix and ErrUnknownVersion
// are not returned anywhere: util's address decoding reports a bad checksum
// as util.ErrChecksumMismatch and an unknown prefix or version as a plain
// formatted error that wraps none of them.
var (
	// ErrIntegerRange is returned when an integer value doesn't fit the
	// bounds of the sized integer it is being converted/validated into
	// (u8/u16/u32/u64/u256).
	ErrIntegerRange = errors.New("integer out of range")

	// ErrBadLength is returned when a fixed-size field (hash, subnetwork
	// ID, address payload) is constructed from the wrong number of bytes.
	ErrBadLength = errors.New("bad length")

	// ErrBadChecksum is returned when a bech32-like checksum fails to
	// verify.
	ErrBadChecksum = errors.New("bad checksum")

	// ErrUnknownPrefix is returned when an address string carries a
	// network prefix this SDK doesn't recognize.
	ErrUnknownPrefix = errors.New("unknown network prefix")

	// ErrUnknownVersion is returned when an address payload carries a
	// version byte this SDK doesn't recognize.
	ErrUnknownVersion = errors.New("unknown address version")
)
