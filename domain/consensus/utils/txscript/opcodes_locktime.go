package txscript

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// opcodeCheckLockTimeVerify compares the top stack item (left in place) as a
// lock time against the spending transaction's LockTime. Both sides must be
// interpreted the same way - either both a block DAA score or both a UNIX
// timestamp, split by LockTimeThreshold - and the input being validated must
// not be final (MaxTxInSequenceNum), since a final input's own locktime is
// never checked at all.
func opcodeCheckLockTimeVerify(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_CHECKLOCKTIMEVERIFY requires a transaction source")
	}

	lockTime, err := vm.dstack.PeekInt(0)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return scriptError(ErrNumberTooBig, "negative lock time")
	}

	stackLockTimeIsSeconds := uint64(lockTime) >= externalapi.LockTimeThreshold
	txLockTimeIsSeconds := vm.tx.LockTime >= externalapi.LockTimeThreshold
	if stackLockTimeIsSeconds != txLockTimeIsSeconds {
		return scriptError(ErrMismatchedLockTimeTypes,
			"mismatched lock time types between stack value and transaction")
	}

	if uint64(lockTime) > vm.tx.LockTime {
		return scriptError(ErrUnsatisfiedLockTime, "lock time requirement not satisfied")
	}

	if vm.tx.Inputs[vm.txInputIndex].Sequence == externalapi.MaxTxInSequenceNum {
		return scriptError(ErrUnsatisfiedLockTime, "input is finalized, locktime has no effect")
	}

	return nil
}
