package externalapi

import "github.com/pkg/errors"

// SigHashType is a bitfield selecting which inputs/outputs a signature
// covers.
type SigHashType uint8

// The four base/modifier bits a SigHashType is built from. Only six
// combinations of these are valid (see IsValid below): ALL, NONE, SINGLE,
// each optionally combined with ANYONECANPAY, and bare ANYONECANPAY is not
// itself a valid standalone encoding without one of the first three.
const (
	SigHashAll          SigHashType = 0b00000001
	SigHashNone         SigHashType = 0b00000010
	SigHashSingle       SigHashType = 0b00000100
	SigHashAnyOneCanPay SigHashType = 0b10000000

	sigHashMask = SigHashAll | SigHashNone | SigHashSingle
)

var validSigHashTypes = map[SigHashType]bool{
	SigHashAll:                          true,
	SigHashNone:                         true,
	SigHashSingle:                       true,
	SigHashAll | SigHashAnyOneCanPay:    true,
	SigHashNone | SigHashAnyOneCanPay:   true,
	SigHashSingle | SigHashAnyOneCanPay: true,
}

// IsValid reports whether t is one of the six accepted bit combinations.
func (t SigHashType) IsValid() bool {
	return validSigHashTypes[t]
}

// IsSigHashAll reports whether the ALL bit is set.
func (t SigHashType) IsSigHashAll() bool { return t&sigHashMask == SigHashAll }

// IsSigHashNone reports whether the NONE bit is set.
func (t SigHashType) IsSigHashNone() bool { return t&sigHashMask == SigHashNone }

// IsSigHashSingle reports whether the SINGLE bit is set.
func (t SigHashType) IsSigHashSingle() bool { return t&sigHashMask == SigHashSingle }

// IsSigHashAnyOneCanPay reports whether the ANYONECANPAY bit is set.
func (t SigHashType) IsSigHashAnyOneCanPay() bool { return t&SigHashAnyOneCanPay != 0 }

// ErrInvalidSigHashType is wrapped and returned whenever a SigHashType
// outside the six accepted combinations is used to sign or validate.
var ErrInvalidSigHashType = errors.New("invalid sighash type")

// CheckSigHashType validates t, returning ErrInvalidSigHashType (wrapped with
// the offending value) if t isn't one of the six accepted combinations.
func CheckSigHashType(t SigHashType) error {
	if !t.IsValid() {
		return errors.Wrapf(ErrInvalidSigHashType, "invalid sighash type 0x%x", uint8(t))
	}
	return nil
}

// String renders t using its canonical short names, e.g. "SigHashAll|AnyOneCanPay".
func (t SigHashType) String() string {
	var base string
	switch t & sigHashMask {
	case SigHashAll:
		base = "SigHashAll"
	case SigHashNone:
		base = "SigHashNone"
	case SigHashSingle:
		base = "SigHashSingle"
	default:
		base = "SigHashUnknown"
	}
	if t.IsSigHashAnyOneCanPay() {
		base += "|AnyOneCanPay"
	}
	return base
}
