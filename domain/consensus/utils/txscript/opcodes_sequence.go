package txscript

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// opcodeCheckSequenceVerify compares the top stack item (left in place)
// against the spending input's own Sequence field, both masked down to the
// low 32 bits that encode a relative lock time. If the stack value's
// disable bit is set the check always passes. Otherwise the input's own
// Sequence must also have its disable bit clear and its masked value must
// be at least the stack value's masked value.
func opcodeCheckSequenceVerify(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_CHECKSEQUENCEVERIFY requires a transaction source")
	}

	stackSequence, err := vm.dstack.PeekInt(0)
	if err != nil {
		return err
	}
	if stackSequence < 0 {
		return scriptError(ErrNumberTooBig, "negative sequence")
	}
	sequence := uint64(stackSequence)

	if sequence&externalapi.SequenceLockTimeDisabled != 0 {
		return nil
	}

	txSequence := vm.tx.Inputs[vm.txInputIndex].Sequence
	if txSequence&externalapi.SequenceLockTimeDisabled != 0 {
		return scriptError(ErrUnsatisfiedLockTime, "relative lock time disabled for this input")
	}

	if sequence&externalapi.SequenceLockTimeMask > txSequence&externalapi.SequenceLockTimeMask {
		return scriptError(ErrUnsatisfiedLockTime, "relative lock time requirement not satisfied")
	}

	return nil
}
