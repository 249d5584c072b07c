package txscript

import "github.com/pkg/errors"

// ScriptBuilder provides a facility for building custom scripts. It allows
// you to push opcodes, ints, and data while respecting canonical encoding.
// In general it does not ensure the script it creates is valid. However, in
// certain parts it does canonicalize the pushes, e.g. simple int pushes.
type ScriptBuilder struct {
	script []byte
	err    error
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+1 > MaxScriptSize {
		b.err = errors.Errorf("adding an opcode would exceed the maximum allowed script length of %d", MaxScriptSize)
		return b
	}
	b.script = append(b.script, opcode)
	return b
}

// AddData pushes the passed data to the end of the script, using the
// canonical minimal-encoding rule.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	dataLen := len(data)

	if dataLen == 0 || (dataLen == 1 && data[0] == 0) {
		b.script = append(b.script, OpFalse)
		return b
	} else if dataLen == 1 && data[0] <= 16 {
		b.script = append(b.script, OpTrue+data[0]-1)
		return b
	} else if dataLen == 1 && data[0] == 0x81 {
		b.script = append(b.script, Op1Negate)
		return b
	}

	if len(b.script)+dataLen+5 > MaxScriptSize {
		b.err = errors.Errorf("adding %d bytes of data would exceed the maximum allowed script length of %d", dataLen, MaxScriptSize)
		return b
	}

	switch {
	case dataLen < OpPushData1:
		b.script = append(b.script, byte((OpData1-1)+dataLen))
	case dataLen <= 0xff:
		b.script = append(b.script, OpPushData1, byte(dataLen))
	case dataLen <= 0xffff:
		b.script = append(b.script, OpPushData2, byte(dataLen), byte(dataLen>>8))
	default:
		b.script = append(b.script, OpPushData4,
			byte(dataLen), byte(dataLen>>8), byte(dataLen>>16), byte(dataLen>>24))
	}
	b.script = append(b.script, data...)
	return b
}

// AddInt64 pushes the passed int64 to the end of the script.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if val == 0 {
		b.script = append(b.script, OpFalse)
		return b
	}
	if val == -1 || (val >= 1 && val <= 16) {
		b.script = append(b.script, byte((OpTrue-1)+val))
		return b
	}

	return b.AddData(scriptNum(val).Bytes())
}

// AddOps pushes the passed opcode byte string to the end of the script.
func (b *ScriptBuilder) AddOps(opcodes []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+len(opcodes) > MaxScriptSize {
		b.err = errors.Errorf("adding opcodes would exceed the maximum allowed script length of %d", MaxScriptSize)
		return b
	}
	b.script = append(b.script, opcodes...)
	return b
}

// Reset resets the script so it has no content.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.script = b.script[0:0]
	b.err = nil
	return b
}

// Script returns the currently built script, or an error if one occurred
// while building it.
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}

// NewScriptBuilder returns a new instance of a script builder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{script: make([]byte, 0, 500)}
}
