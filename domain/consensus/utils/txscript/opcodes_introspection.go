package txscript

// opcodeTxInputCount pushes the number of inputs in the spending
// transaction.
func opcodeTxInputCount(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_TXINPUTCOUNT requires a transaction source")
	}
	vm.dstack.PushInt(scriptNum(len(vm.tx.Inputs)))
	return nil
}

// opcodeTxInputIndex pushes the index, within the spending transaction,
// of the input currently being validated.
func opcodeTxInputIndex(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_TXINPUTINDEX requires a transaction source")
	}
	vm.dstack.PushInt(scriptNum(vm.txInputIndex))
	return nil
}

func inputIndexOperand(vm *Engine) (int, error) {
	idx, err := vm.dstack.PopInt()
	if err != nil {
		return 0, err
	}
	if idx < 0 || int(idx) >= len(vm.utxoEntries) {
		return 0, scriptError(ErrInvalidInputIndex, "input index out of range")
	}
	return int(idx), nil
}

func outputIndexOperand(vm *Engine) (int, error) {
	idx, err := vm.dstack.PopInt()
	if err != nil {
		return 0, err
	}
	if idx < 0 || int(idx) >= len(vm.tx.Outputs) {
		return 0, scriptError(ErrInvalidOutputIndex, "output index out of range")
	}
	return int(idx), nil
}

// opcodeTxInputAmount pops an input index and pushes the Sompi amount of
// the UTXO entry that input spends.
func opcodeTxInputAmount(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_TXINPUTAMOUNT requires a transaction source")
	}
	idx, err := inputIndexOperand(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(vm.utxoEntries[idx].Amount))
	return nil
}

// opcodeTxInputSpk pops an input index and pushes the raw script bytes of
// the ScriptPublicKey the referenced UTXO entry is locked by.
func opcodeTxInputSpk(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_TXINPUTSPK requires a transaction source")
	}
	idx, err := inputIndexOperand(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(vm.utxoEntries[idx].ScriptPublicKey.Script)
	return nil
}

// opcodeTxOutputAmount pops an output index and pushes its Sompi amount.
func opcodeTxOutputAmount(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_TXOUTPUTAMOUNT requires a transaction source")
	}
	idx, err := outputIndexOperand(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(vm.tx.Outputs[idx].Value))
	return nil
}

// opcodeTxOutputSpk pops an output index and pushes the raw script bytes of
// that output's locking script.
func opcodeTxOutputSpk(op *parsedOpcode, vm *Engine) error {
	if !vm.hasTxSource() {
		return scriptError(ErrInvalidState, "OP_TXOUTPUTSPK requires a transaction source")
	}
	idx, err := outputIndexOperand(vm)
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(vm.tx.Outputs[idx].ScriptPublicKey.Script)
	return nil
}
