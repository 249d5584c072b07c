package externalapi

// Protocol-wide constants shared across the primitives, mass calculator,
// script VM and generator. Kept here (rather than duplicated per-package)
// since they are genuinely global configuration, not a per-component
// concern - mirrors how the teacher keeps wire-level constants
// (MaxTxInSequenceNum and friends) alongside the wire types they describe.
const (
	// SompiPerKaspa is the number of indivisible Sompi in one whole KAS.
	SompiPerKaspa = 100_000_000

	// MaxSompi is the maximum transferable number of Sompi.
	MaxSompi = 29_000_000_000 * SompiPerKaspa

	// MaximumStandardTransactionMass is the mass ceiling every emitted
	// transaction must respect.
	MaximumStandardTransactionMass = 100_000

	// MinimumRelayTransactionFee is the minimum fee, in Sompi, a
	// transaction of mass <= 1000 must pay to relay.
	MinimumRelayTransactionFee = 1_000

	// LockTimeThreshold distinguishes a DomainTransaction.LockTime /
	// CLTV stack value interpreted as a block DAA score (below) from one
	// interpreted as a UNIX timestamp (at or above).
	LockTimeThreshold = 500_000_000_000

	// MaxTxInSequenceNum is the sequence number that marks an input as
	// finalized (CheckLockTimeVerify always fails for such an input).
	MaxTxInSequenceNum uint64 = 1<<64 - 1

	// SequenceLockTimeDisabled is the bit, when set on a sequence number
	// or a CheckSequenceVerify stack value, that disables the relative
	// lock-time check.
	SequenceLockTimeDisabled uint64 = 1 << 63

	// SequenceLockTimeMask masks the low 32 bits used to compare relative
	// lock times in CheckSequenceVerify.
	SequenceLockTimeMask uint64 = 0x00000000_ffffffff

	// UnacceptedDAAScore marks a UTXO entry synthesized by the generator
	// for a not-yet-accepted relay output (an Edge transaction's output,
	// staged for consumption by the next Stage).
	UnacceptedDAAScore uint64 = 1<<64 - 1

	// SignatureSize is the size, in bytes, of a signed input's
	// SignatureScript once an OP_DATA_65 push of a 64-byte Schnorr
	// signature plus a 1-byte sighash type is in place.
	SignatureSize = 66
)
