package txmass

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// minimumDustScriptPubKeySize is the smallest scriptPubKey length that
// isn't unconditionally dust; anything shorter is dust regardless of value.
const minimumDustScriptPubKeySize = 33

// MinimumRequiredTransactionRelayFee returns the minimum fee, in Sompi, a
// transaction of the given mass must pay to be relayed: the larger of the
// fixed minimum relay fee and the mass-proportional fee, capped at MaxSompi.
func MinimumRequiredTransactionRelayFee(mass uint64) uint64 {
	fee := mass * externalapi.MinimumRelayTransactionFee / 1000
	if fee < externalapi.MinimumRelayTransactionFee {
		fee = externalapi.MinimumRelayTransactionFee
	}
	if fee > externalapi.MaxSompi {
		fee = externalapi.MaxSompi
	}
	return fee
}

// IsTransactionOutputDust reports whether an output of the given value,
// locked by a scriptPubKey of the given length, is dust: a scriptPubKey
// shorter than minimumDustScriptPubKeySize is always dust, otherwise an
// output is dust when it would cost more in relay fees to spend than it is
// worth, estimated against a typical 148-byte spending input.
func IsTransactionOutputDust(value uint64, scriptPubKeyLen int) bool {
	if scriptPubKeyLen < minimumDustScriptPubKeySize {
		return true
	}

	totalSize := scriptPubKeyLen + 148
	return value*1000/uint64(3*totalSize) < externalapi.MinimumRelayTransactionFee
}
