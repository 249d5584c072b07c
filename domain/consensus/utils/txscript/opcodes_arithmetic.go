package txscript

import "math"

// checkedAdd adds a and b, returning an error if the signed 64-bit result
// would overflow rather than silently wrapping.
func checkedAdd(a, b scriptNum) (scriptNum, error) {
	sum := int64(a) + int64(b)
	if (b > 0 && sum < int64(a)) || (b < 0 && sum > int64(a)) {
		return 0, scriptError(ErrNumberTooBig, "arithmetic operation overflowed 64 bits")
	}
	return scriptNum(sum), nil
}

func checkedSub(a, b scriptNum) (scriptNum, error) {
	if b == math.MinInt64 {
		return 0, scriptError(ErrNumberTooBig, "arithmetic operation overflowed 64 bits")
	}
	return checkedAdd(a, -b)
}

func checkedNegate(a scriptNum) (scriptNum, error) {
	if a == math.MinInt64 {
		return 0, scriptError(ErrNumberTooBig, "arithmetic operation overflowed 64 bits")
	}
	return -a, nil
}

func opcode1Add(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	result, err := checkedAdd(n, 1)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(result)
	return nil
}

func opcode1Sub(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	result, err := checkedSub(n, 1)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(result)
	return nil
}

func opcodeNegate(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	result, err := checkedNegate(n)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(result)
	return nil
}

func opcodeAbs(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if n < 0 {
		negated, err := checkedNegate(n)
		if err != nil {
			return err
		}
		n = negated
	}
	vm.dstack.PushInt(n)
	return nil
}

func opcodeNot(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(n == 0)
	return nil
}

func opcode0NotEqual(op *parsedOpcode, vm *Engine) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(n != 0)
	return nil
}

func opcodeAdd(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	result, err := checkedAdd(a, b)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(result)
	return nil
}

func opcodeSub(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	result, err := checkedSub(a, b)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(result)
	return nil
}

func opcodeBoolAnd(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != 0 && b != 0)
	return nil
}

func opcodeBoolOr(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != 0 || b != 0)
	return nil
}

func opcodeNumEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a == b)
	return nil
}

func opcodeNumEqualVerify(op *parsedOpcode, vm *Engine) error {
	if err := opcodeNumEqual(op, vm); err != nil {
		return err
	}
	return opcodeVerify(op, vm)
}

func opcodeNumNotEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != b)
	return nil
}

func opcodeLessThan(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a < b)
	return nil
}

func opcodeGreaterThan(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a > b)
	return nil
}

func opcodeLessThanOrEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a <= b)
	return nil
}

func opcodeGreaterThanOrEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a >= b)
	return nil
}

func opcodeMin(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a < b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeMax(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a > b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeWithin(op *parsedOpcode, vm *Engine) error {
	maxVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	minVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	x, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}
