package txscript

// opcodeDisabled is a common handler for disabled opcodes. It returns an
// appropriate error indicating the opcode is disabled. While most opcodes
// that are disabled cause an immediate script failure, a few are only
// disabled in specific contexts handled by opcode.isDisabled instead, and
// this handler will never be reached for those.
func opcodeDisabled(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrOpcodeDisabled, "attempt to execute disabled opcode "+op.opcode.name)
}

// opcodeReserved is a common handler for reserved opcodes, which are only
// illegal if executed.
func opcodeReserved(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrOpcodeReserved, "attempt to execute reserved opcode "+op.opcode.name)
}

// opcodeInvalid is a common handler for invalid opcodes.
func opcodeInvalid(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrInvalidOpcode, "attempt to execute invalid opcode "+op.opcode.name)
}

func opcodeFalse(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushByteArray(nil)
	return nil
}

func opcodePushData(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushByteArray(op.data)
	return nil
}

func opcodeNegative1(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(-1)
	return nil
}

func opcodeNop(op *parsedOpcode, vm *Engine) error {
	return nil
}

// popIfCondition pops the top stack item and interprets it as an OP_IF
// condition. Unlike ordinary boolean interpretation elsewhere in the
// engine, only an empty array (false) or the single byte 0x01 (true) are
// accepted here - any other byte value is a hard error. This disagrees with
// Bitcoin's general boolean convention but matches Kaspa's consensus rules
// bug-for-bug.
func popIfCondition(vm *Engine) (bool, error) {
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return false, err
	}
	switch {
	case len(b) == 0:
		return false, nil
	case len(b) == 1 && b[0] == 1:
		return true, nil
	default:
		return false, scriptError(ErrMalformedPush, "conditional stack value is neither 0 nor 1")
	}
}

// opcodeIf pushes an OpCondTrue state if the popped condition is true,
// otherwise pushes OpCondFalse.
func opcodeIf(op *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfCondition(vm)
		if err != nil {
			return err
		}
		if ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

func opcodeNotIf(op *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfCondition(vm)
		if err != nil {
			return err
		}
		if !ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

func opcodeElse(op *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional, "encountered OP_ELSE with no matching OP_IF")
	}

	idx := len(vm.condStack) - 1
	switch vm.condStack[idx] {
	case OpCondTrue:
		vm.condStack[idx] = OpCondFalse
	case OpCondFalse:
		vm.condStack[idx] = OpCondTrue
	case OpCondSkip:
		// remains skipped
	}
	return nil
}

func opcodeEndif(op *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional, "encountered OP_ENDIF with no matching OP_IF")
	}
	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

func opcodeVerify(op *parsedOpcode, vm *Engine) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !verified {
		return scriptError(ErrVerifyFailed, "OP_VERIFY failed")
	}
	return nil
}

func opcodeReturn(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrEarlyReturn, "script returned early")
}
