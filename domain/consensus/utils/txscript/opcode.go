package txscript

import "fmt"

// An opcode defines the information related to a txscript opcode.  opfunc, if
// present, is the function to call to actually execute the opcode.
type opcode struct {
	value  byte
	name   string
	length int
	opfunc func(*parsedOpcode, *Engine) error
}

// These constants are the values of the official opcodes used on the btcd-
// derived Kaspa script system.
const (
	OpFalse              = 0x00
	OpData1              = 0x01
	OpData2              = 0x02
	OpData3              = 0x03
	OpData4              = 0x04
	OpData5              = 0x05
	OpData6              = 0x06
	OpData7              = 0x07
	OpData8              = 0x08
	OpData9              = 0x09
	OpData10             = 0x0a
	OpData11             = 0x0b
	OpData12             = 0x0c
	OpData13             = 0x0d
	OpData14             = 0x0e
	OpData15             = 0x0f
	OpData16             = 0x10
	OpData17             = 0x11
	OpData18             = 0x12
	OpData19             = 0x13
	OpData20             = 0x14
	OpData21             = 0x15
	OpData22             = 0x16
	OpData23             = 0x17
	OpData24             = 0x18
	OpData25             = 0x19
	OpData26             = 0x1a
	OpData27             = 0x1b
	OpData28             = 0x1c
	OpData29             = 0x1d
	OpData30             = 0x1e
	OpData31             = 0x1f
	OpData32             = 0x20
	OpData33             = 0x21
	OpData34             = 0x22
	OpData35             = 0x23
	OpData36             = 0x24
	OpData37             = 0x25
	OpData38             = 0x26
	OpData39             = 0x27
	OpData40             = 0x28
	OpData41             = 0x29
	OpData42             = 0x2a
	OpData43             = 0x2b
	OpData44             = 0x2c
	OpData45             = 0x2d
	OpData46             = 0x2e
	OpData47             = 0x2f
	OpData48             = 0x30
	OpData49             = 0x31
	OpData50             = 0x32
	OpData51             = 0x33
	OpData52             = 0x34
	OpData53             = 0x35
	OpData54             = 0x36
	OpData55             = 0x37
	OpData56             = 0x38
	OpData57             = 0x39
	OpData58             = 0x3a
	OpData59             = 0x3b
	OpData60             = 0x3c
	OpData61             = 0x3d
	OpData62             = 0x3e
	OpData63             = 0x3f
	OpData64             = 0x40
	OpData65             = 0x41
	OpData66             = 0x42
	OpData67             = 0x43
	OpData68             = 0x44
	OpData69             = 0x45
	OpData70             = 0x46
	OpData71             = 0x47
	OpData72             = 0x48
	OpData73             = 0x49
	OpData74             = 0x4a
	OpData75             = 0x4b
	OpPushData1          = 0x4c
	OpPushData2          = 0x4d
	OpPushData4          = 0x4e
	Op1Negate            = 0x4f
	OpReserved           = 0x50
	OpTrue               = 0x51
	Op2                  = 0x52
	Op3                  = 0x53
	Op4                  = 0x54
	Op5                  = 0x55
	Op6                  = 0x56
	Op7                  = 0x57
	Op8                  = 0x58
	Op9                  = 0x59
	Op10                 = 0x5a
	Op11                 = 0x5b
	Op12                 = 0x5c
	Op13                 = 0x5d
	Op14                 = 0x5e
	Op15                 = 0x5f
	Op16                 = 0x60
	OpNop                = 0x61
	OpVer                = 0x62
	OpIf                 = 0x63
	OpNotIf              = 0x64
	OpVerIf              = 0x65
	OpVerNotIf           = 0x66
	OpElse               = 0x67
	OpEndIf              = 0x68
	OpVerify             = 0x69
	OpReturn             = 0x6a
	OpToAltStack         = 0x6b
	OpFromAltStack       = 0x6c
	Op2Drop              = 0x6d
	Op2Dup               = 0x6e
	Op3Dup               = 0x6f
	Op2Over              = 0x70
	Op2Rot               = 0x71
	Op2Swap              = 0x72
	OpIfDup              = 0x73
	OpDepth              = 0x74
	OpDrop               = 0x75
	OpDup                = 0x76
	OpNip                = 0x77
	OpOver               = 0x78
	OpPick               = 0x79
	OpRoll               = 0x7a
	OpRot                = 0x7b
	OpSwap               = 0x7c
	OpTuck               = 0x7d
	OpCat                = 0x7e
	OpSubStr             = 0x7f
	OpLeft               = 0x80
	OpRight              = 0x81
	OpSize               = 0x82
	OpInvert             = 0x83
	OpAnd                = 0x84
	OpOr                 = 0x85
	OpXor                = 0x86
	OpEqual              = 0x87
	OpEqualVerify        = 0x88
	OpReserved1          = 0x89
	OpReserved2          = 0x8a
	Op1Add               = 0x8b
	Op1Sub               = 0x8c
	Op2Mul               = 0x8d
	Op2Div               = 0x8e
	OpNegate             = 0x8f
	OpAbs                = 0x90
	OpNot                = 0x91
	Op0NotEqual          = 0x92
	OpAdd                = 0x93
	OpSub                = 0x94
	OpMul                = 0x95
	OpDiv                = 0x96
	OpMod                = 0x97
	OpLShift             = 0x98
	OpRShift             = 0x99
	OpBoolAnd            = 0x9a
	OpBoolOr             = 0x9b
	OpNumEqual           = 0x9c
	OpNumEqualVerify     = 0x9d
	OpNumNotEqual        = 0x9e
	OpLessThan           = 0x9f
	OpGreaterThan        = 0xa0
	OpLessThanOrEqual    = 0xa1
	OpGreaterThanOrEqual = 0xa2
	OpMin                = 0xa3
	OpMax                = 0xa4
	OpWithin             = 0xa5
	OpUnknown166         = 0xa6
	OpUnknown167         = 0xa7
	OpSHA256             = 0xa8
	OpCheckMultiSigECDSA = 0xa9
	OpBlake2b            = 0xaa
	OpCheckSigECDSA      = 0xab
	OpCheckSig           = 0xac
	OpCheckSigVerify     = 0xad
	OpCheckMultiSig      = 0xae
	OpCheckMultiSigVerify = 0xaf
	OpCheckLockTimeVerify = 0xb0
	OpCheckSequenceVerify = 0xb1
	OpTxVersion           = 0xb2
	OpTxLockTime          = 0xb3
	OpTxSubnetId          = 0xb4
	OpTxGas               = 0xb5
	OpTxPayload           = 0xb6
	OpTxInputCount        = 0xb7
	OpTxOutputCount       = 0xb8
	OpTxInputIndex        = 0xb9
	OpTxInputAmount       = 0xba
	OpTxInputSpk          = 0xbb
	OpTxInputBlockDaaScore = 0xbc
	OpTxInputIsCoinbase   = 0xbd
	OpTxInputSeq          = 0xbe
	OpTxOutputAmount      = 0xbf
	OpTxOutputSpk         = 0xc0
	OpOutpointTxId        = 0xc1
	OpOutpointIndex       = 0xc2
	OpTxInputSigOpCount   = 0xc3
)

// Conditional execution constants.
const (
	OpCondFalse = 0
	OpCondTrue  = 1
	OpCondSkip  = 2
)

// opcodeArray associates an opcode value with its handler, textual name, and
// data-length rule (0 = no data, positive = exact data length, negative =
// a length prefix of size -n bytes precedes the data).
var opcodeArray [256]opcode

func init() {
	opcodeArray[OpFalse] = opcode{OpFalse, "OP_0", 1, opcodeFalse}
	for data := byte(OpData1); data <= OpData75; data++ {
		opcodeArray[data] = opcode{data, fmt.Sprintf("OP_DATA_%d", data), int(data) + 1, opcodePushData}
	}
	opcodeArray[OpPushData1] = opcode{OpPushData1, "OP_PUSHDATA1", -1, opcodePushData}
	opcodeArray[OpPushData2] = opcode{OpPushData2, "OP_PUSHDATA2", -2, opcodePushData}
	opcodeArray[OpPushData4] = opcode{OpPushData4, "OP_PUSHDATA4", -4, opcodePushData}
	opcodeArray[Op1Negate] = opcode{Op1Negate, "OP_1NEGATE", 1, opcodeNegative1}
	opcodeArray[OpReserved] = opcode{OpReserved, "OP_RESERVED", 1, opcodeReserved}
	opcodeArray[OpTrue] = opcode{OpTrue, "OP_1", 1, opcodeN(1)}
	for i, name := range []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15", "16"} {
		val := byte(Op2 + i)
		opcodeArray[val] = opcode{val, "OP_" + name, 1, opcodeN(i + 2)}
	}

	opcodeArray[OpNop] = opcode{OpNop, "OP_NOP", 1, opcodeNop}
	opcodeArray[OpVer] = opcode{OpVer, "OP_VER", 1, opcodeReserved}
	opcodeArray[OpIf] = opcode{OpIf, "OP_IF", 1, opcodeIf}
	opcodeArray[OpNotIf] = opcode{OpNotIf, "OP_NOTIF", 1, opcodeNotIf}
	opcodeArray[OpVerIf] = opcode{OpVerIf, "OP_VERIF", 1, opcodeReserved}
	opcodeArray[OpVerNotIf] = opcode{OpVerNotIf, "OP_VERNOTIF", 1, opcodeReserved}
	opcodeArray[OpElse] = opcode{OpElse, "OP_ELSE", 1, opcodeElse}
	opcodeArray[OpEndIf] = opcode{OpEndIf, "OP_ENDIF", 1, opcodeEndif}
	opcodeArray[OpVerify] = opcode{OpVerify, "OP_VERIFY", 1, opcodeVerify}
	opcodeArray[OpReturn] = opcode{OpReturn, "OP_RETURN", 1, opcodeReturn}

	opcodeArray[OpToAltStack] = opcode{OpToAltStack, "OP_TOALTSTACK", 1, opcodeToAltStack}
	opcodeArray[OpFromAltStack] = opcode{OpFromAltStack, "OP_FROMALTSTACK", 1, opcodeFromAltStack}
	opcodeArray[Op2Drop] = opcode{Op2Drop, "OP_2DROP", 1, opcode2Drop}
	opcodeArray[Op2Dup] = opcode{Op2Dup, "OP_2DUP", 1, opcode2Dup}
	opcodeArray[Op3Dup] = opcode{Op3Dup, "OP_3DUP", 1, opcode3Dup}
	opcodeArray[Op2Over] = opcode{Op2Over, "OP_2OVER", 1, opcode2Over}
	opcodeArray[Op2Rot] = opcode{Op2Rot, "OP_2ROT", 1, opcode2Rot}
	opcodeArray[Op2Swap] = opcode{Op2Swap, "OP_2SWAP", 1, opcode2Swap}
	opcodeArray[OpIfDup] = opcode{OpIfDup, "OP_IFDUP", 1, opcodeIfDup}
	opcodeArray[OpDepth] = opcode{OpDepth, "OP_DEPTH", 1, opcodeDepth}
	opcodeArray[OpDrop] = opcode{OpDrop, "OP_DROP", 1, opcodeDrop}
	opcodeArray[OpDup] = opcode{OpDup, "OP_DUP", 1, opcodeDup}
	opcodeArray[OpNip] = opcode{OpNip, "OP_NIP", 1, opcodeNip}
	opcodeArray[OpOver] = opcode{OpOver, "OP_OVER", 1, opcodeOver}
	opcodeArray[OpPick] = opcode{OpPick, "OP_PICK", 1, opcodePick}
	opcodeArray[OpRoll] = opcode{OpRoll, "OP_ROLL", 1, opcodeRoll}
	opcodeArray[OpRot] = opcode{OpRot, "OP_ROT", 1, opcodeRot}
	opcodeArray[OpSwap] = opcode{OpSwap, "OP_SWAP", 1, opcodeSwap}
	opcodeArray[OpTuck] = opcode{OpTuck, "OP_TUCK", 1, opcodeTuck}

	opcodeArray[OpCat] = opcode{OpCat, "OP_CAT", 1, opcodeDisabled}
	opcodeArray[OpSubStr] = opcode{OpSubStr, "OP_SUBSTR", 1, opcodeDisabled}
	opcodeArray[OpLeft] = opcode{OpLeft, "OP_LEFT", 1, opcodeDisabled}
	opcodeArray[OpRight] = opcode{OpRight, "OP_RIGHT", 1, opcodeDisabled}
	opcodeArray[OpSize] = opcode{OpSize, "OP_SIZE", 1, opcodeSize}
	opcodeArray[OpInvert] = opcode{OpInvert, "OP_INVERT", 1, opcodeDisabled}
	opcodeArray[OpAnd] = opcode{OpAnd, "OP_AND", 1, opcodeDisabled}
	opcodeArray[OpOr] = opcode{OpOr, "OP_OR", 1, opcodeDisabled}
	opcodeArray[OpXor] = opcode{OpXor, "OP_XOR", 1, opcodeDisabled}
	opcodeArray[OpEqual] = opcode{OpEqual, "OP_EQUAL", 1, opcodeEqual}
	opcodeArray[OpEqualVerify] = opcode{OpEqualVerify, "OP_EQUALVERIFY", 1, opcodeEqualVerify}
	opcodeArray[OpReserved1] = opcode{OpReserved1, "OP_RESERVED1", 1, opcodeReserved}
	opcodeArray[OpReserved2] = opcode{OpReserved2, "OP_RESERVED2", 1, opcodeReserved}

	opcodeArray[Op1Add] = opcode{Op1Add, "OP_1ADD", 1, opcode1Add}
	opcodeArray[Op1Sub] = opcode{Op1Sub, "OP_1SUB", 1, opcode1Sub}
	opcodeArray[Op2Mul] = opcode{Op2Mul, "OP_2MUL", 1, opcodeDisabled}
	opcodeArray[Op2Div] = opcode{Op2Div, "OP_2DIV", 1, opcodeDisabled}
	opcodeArray[OpNegate] = opcode{OpNegate, "OP_NEGATE", 1, opcodeNegate}
	opcodeArray[OpAbs] = opcode{OpAbs, "OP_ABS", 1, opcodeAbs}
	opcodeArray[OpNot] = opcode{OpNot, "OP_NOT", 1, opcodeNot}
	opcodeArray[Op0NotEqual] = opcode{Op0NotEqual, "OP_0NOTEQUAL", 1, opcode0NotEqual}
	opcodeArray[OpAdd] = opcode{OpAdd, "OP_ADD", 1, opcodeAdd}
	opcodeArray[OpSub] = opcode{OpSub, "OP_SUB", 1, opcodeSub}
	opcodeArray[OpMul] = opcode{OpMul, "OP_MUL", 1, opcodeDisabled}
	opcodeArray[OpDiv] = opcode{OpDiv, "OP_DIV", 1, opcodeDisabled}
	opcodeArray[OpMod] = opcode{OpMod, "OP_MOD", 1, opcodeDisabled}
	opcodeArray[OpLShift] = opcode{OpLShift, "OP_LSHIFT", 1, opcodeDisabled}
	opcodeArray[OpRShift] = opcode{OpRShift, "OP_RSHIFT", 1, opcodeDisabled}
	opcodeArray[OpBoolAnd] = opcode{OpBoolAnd, "OP_BOOLAND", 1, opcodeBoolAnd}
	opcodeArray[OpBoolOr] = opcode{OpBoolOr, "OP_BOOLOR", 1, opcodeBoolOr}
	opcodeArray[OpNumEqual] = opcode{OpNumEqual, "OP_NUMEQUAL", 1, opcodeNumEqual}
	opcodeArray[OpNumEqualVerify] = opcode{OpNumEqualVerify, "OP_NUMEQUALVERIFY", 1, opcodeNumEqualVerify}
	opcodeArray[OpNumNotEqual] = opcode{OpNumNotEqual, "OP_NUMNOTEQUAL", 1, opcodeNumNotEqual}
	opcodeArray[OpLessThan] = opcode{OpLessThan, "OP_LESSTHAN", 1, opcodeLessThan}
	opcodeArray[OpGreaterThan] = opcode{OpGreaterThan, "OP_GREATERTHAN", 1, opcodeGreaterThan}
	opcodeArray[OpLessThanOrEqual] = opcode{OpLessThanOrEqual, "OP_LESSTHANOREQUAL", 1, opcodeLessThanOrEqual}
	opcodeArray[OpGreaterThanOrEqual] = opcode{OpGreaterThanOrEqual, "OP_GREATERTHANOREQUAL", 1, opcodeGreaterThanOrEqual}
	opcodeArray[OpMin] = opcode{OpMin, "OP_MIN", 1, opcodeMin}
	opcodeArray[OpMax] = opcode{OpMax, "OP_MAX", 1, opcodeMax}
	opcodeArray[OpWithin] = opcode{OpWithin, "OP_WITHIN", 1, opcodeWithin}

	opcodeArray[OpUnknown166] = opcode{OpUnknown166, "OP_UNKNOWN166", 1, opcodeInvalid}
	opcodeArray[OpUnknown167] = opcode{OpUnknown167, "OP_UNKNOWN167", 1, opcodeInvalid}
	opcodeArray[OpSHA256] = opcode{OpSHA256, "OP_SHA256", 1, opcodeSHA256}
	opcodeArray[OpCheckMultiSigECDSA] = opcode{OpCheckMultiSigECDSA, "OP_CHECKMULTISIGECDSA", 1, opcodeCheckMultiSigECDSA}
	opcodeArray[OpBlake2b] = opcode{OpBlake2b, "OP_BLAKE2B", 1, opcodeBlake2b}
	opcodeArray[OpCheckSigECDSA] = opcode{OpCheckSigECDSA, "OP_CHECKSIGECDSA", 1, opcodeCheckSigECDSA}
	opcodeArray[OpCheckSig] = opcode{OpCheckSig, "OP_CHECKSIG", 1, opcodeCheckSig}
	opcodeArray[OpCheckSigVerify] = opcode{OpCheckSigVerify, "OP_CHECKSIGVERIFY", 1, opcodeCheckSigVerify}
	opcodeArray[OpCheckMultiSig] = opcode{OpCheckMultiSig, "OP_CHECKMULTISIG", 1, opcodeCheckMultiSig}
	opcodeArray[OpCheckMultiSigVerify] = opcode{OpCheckMultiSigVerify, "OP_CHECKMULTISIGVERIFY", 1, opcodeCheckMultiSigVerify}

	opcodeArray[OpCheckLockTimeVerify] = opcode{OpCheckLockTimeVerify, "OP_CHECKLOCKTIMEVERIFY", 1, opcodeCheckLockTimeVerify}
	opcodeArray[OpCheckSequenceVerify] = opcode{OpCheckSequenceVerify, "OP_CHECKSEQUENCEVERIFY", 1, opcodeCheckSequenceVerify}

	opcodeArray[OpTxInputCount] = opcode{OpTxInputCount, "OP_TXINPUTCOUNT", 1, opcodeTxInputCount}
	opcodeArray[OpTxInputIndex] = opcode{OpTxInputIndex, "OP_TXINPUTINDEX", 1, opcodeTxInputIndex}
	opcodeArray[OpTxInputAmount] = opcode{OpTxInputAmount, "OP_TXINPUTAMOUNT", 1, opcodeTxInputAmount}
	opcodeArray[OpTxInputSpk] = opcode{OpTxInputSpk, "OP_TXINPUTSPK", 1, opcodeTxInputSpk}
	opcodeArray[OpTxOutputAmount] = opcode{OpTxOutputAmount, "OP_TXOUTPUTAMOUNT", 1, opcodeTxOutputAmount}
	opcodeArray[OpTxOutputSpk] = opcode{OpTxOutputSpk, "OP_TXOUTPUTSPK", 1, opcodeTxOutputSpk}

	// Reserved introspection opcodes: decodable (so scripts containing them
	// parse), but fail if ever executed.
	for _, reserved := range []byte{
		OpTxVersion, OpTxLockTime, OpTxSubnetId, OpTxGas, OpTxPayload,
		OpTxOutputCount, OpTxInputBlockDaaScore, OpTxInputIsCoinbase,
		OpTxInputSeq, OpOutpointTxId, OpOutpointIndex, OpTxInputSigOpCount,
	} {
		opcodeArray[reserved] = opcode{reserved, fmt.Sprintf("OP_RESERVEDINTROSPECTION_%x", reserved), 1, opcodeInvalid}
	}

	// Any byte not explicitly assigned above decodes as an invalid opcode.
	for i := range opcodeArray {
		if opcodeArray[i].name == "" {
			b := byte(i)
			opcodeArray[i] = opcode{b, fmt.Sprintf("OP_UNKNOWN%d", b), 1, opcodeInvalid}
		}
	}
}

// parsedOpcode represents an opcode that has been parsed and includes any
// potential data associated with it.
type parsedOpcode struct {
	opcode *opcode
	data   []byte
}

// isDisabled returns whether or not the opcode is disabled and thus is
// always bad to see in the instruction stream.
func (pop *parsedOpcode) isDisabled() bool {
	switch pop.opcode.value {
	case OpCat, OpSubStr, OpLeft, OpRight, OpInvert, OpAnd, OpOr, OpXor,
		Op2Mul, Op2Div, OpMul, OpDiv, OpMod, OpLShift, OpRShift:
		return true
	default:
		return false
	}
}

// alwaysIllegal returns whether or not the opcode is always illegal when
// present in a script, even if it is not executed.
func (pop *parsedOpcode) alwaysIllegal() bool {
	switch pop.opcode.value {
	case OpVerIf, OpVerNotIf:
		return true
	default:
		return false
	}
}

// isReservedIntrospection reports whether pop is one of the reserved
// introspection/OpTx*/OpOutpoint* opcodes (or OpUnknown166/167), which
// fail whenever executed, regardless of source. Like other non-conditional
// opcodes they are skipped inside an untaken branch.
func (pop *parsedOpcode) isReservedIntrospection() bool {
	switch pop.opcode.value {
	case OpTxVersion, OpTxLockTime, OpTxSubnetId, OpTxGas, OpTxPayload,
		OpTxOutputCount, OpTxInputBlockDaaScore, OpTxInputIsCoinbase,
		OpTxInputSeq, OpOutpointTxId, OpOutpointIndex, OpTxInputSigOpCount,
		OpUnknown166, OpUnknown167:
		return true
	default:
		return false
	}
}

// isConditional returns whether or not the opcode is a conditional opcode
// which is always executed even if it is contained in a non-executed
// branch. This is needed because the conditional opcodes are the ones that
// manage the condStack.
func (pop *parsedOpcode) isConditional() bool {
	switch pop.opcode.value {
	case OpIf, OpNotIf, OpElse, OpEndIf:
		return true
	default:
		return false
	}
}

// checkMinimalDataPush returns whether the given push was the minimal way to
// push the data it contains onto the stack.
func (pop *parsedOpcode) checkMinimalDataPush() error {
	data := pop.data
	dataLen := len(data)
	opcodeVal := pop.opcode.value

	if dataLen == 0 && opcodeVal != OpFalse {
		return scriptError(ErrMalformedPush, "zero length data push not using OP_0")
	} else if dataLen == 1 && data[0] >= 1 && data[0] <= 16 {
		if opcodeVal != OpTrue+byte(data[0]-1) {
			return scriptError(ErrMalformedPush, "data push of the value 1-16 must use OP_1 through OP_16")
		}
	} else if dataLen == 1 && data[0] == 0x81 {
		if opcodeVal != Op1Negate {
			return scriptError(ErrMalformedPush, "data push of the value -1 must use OP_1NEGATE")
		}
	} else if dataLen <= 75 {
		if int(opcodeVal) != dataLen+OpData1-1 {
			return scriptError(ErrMalformedPush, "data push directly using a standard opcode was not used")
		}
	} else if dataLen <= 255 {
		if opcodeVal != OpPushData1 {
			return scriptError(ErrMalformedPush, "data push of 76 to 255 bytes did not use OP_PUSHDATA1")
		}
	} else if dataLen <= 65535 {
		if opcodeVal != OpPushData2 {
			return scriptError(ErrMalformedPush, "data push of 256 to 65535 bytes did not use OP_PUSHDATA2")
		}
	}
	return nil
}

func (pop *parsedOpcode) print(oneline bool) string {
	if pop.opcode.length == 1 {
		return pop.opcode.name
	}
	return fmt.Sprintf("%s 0x%x", pop.opcode.name, pop.data)
}

// opcodeN returns a handler that pushes the integer n.
func opcodeN(n int) func(*parsedOpcode, *Engine) error {
	return func(op *parsedOpcode, vm *Engine) error {
		vm.dstack.PushInt(scriptNum(n))
		return nil
	}
}
