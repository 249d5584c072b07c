package txscript

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// Limits enforced by the VM, consensus-fixed.
const (
	MaxScriptSize        = 10000
	MaxScriptElementSize = 520
	MaxOpsPerScript      = 201
	MaxStackSize         = 244
	MaxPubKeysPerMultiSig = 20
)

// parseScript preparses the script in bytes into a list of parsedOpcodes
// while applying a number of sanity checks.
func parseScript(script []byte) ([]parsedOpcode, error) {
	var retScript []parsedOpcode
	for i := 0; i < len(script); {
		instr := script[i]
		op := &opcodeArray[instr]
		pop := parsedOpcode{opcode: op}

		switch {
		case op.length == 1:
			i++

		case op.length > 1:
			if len(script[i:]) < op.length {
				return nil, scriptError(ErrMalformedPush,
					"opcode requires more bytes than available")
			}
			pop.data = script[i+1 : i+op.length]
			i += op.length

		case op.length < 0:
			var l int
			off := i + 1
			switch op.length {
			case -1:
				if len(script[off:]) < 1 {
					return nil, scriptError(ErrMalformedPush, "push data element length not available")
				}
				l = int(script[off])
				off++
			case -2:
				if len(script[off:]) < 2 {
					return nil, scriptError(ErrMalformedPush, "push data element length not available")
				}
				l = int(script[off]) | int(script[off+1])<<8
				off += 2
			case -4:
				if len(script[off:]) < 4 {
					return nil, scriptError(ErrMalformedPush, "push data element length not available")
				}
				l = int(script[off]) | int(script[off+1])<<8 | int(script[off+2])<<16 | int(script[off+3])<<24
				off += 4
			}
			if l < 0 || len(script[off:]) < l {
				return nil, scriptError(ErrMalformedPush, "push data element length exceeds script size")
			}
			pop.data = script[off : off+l]
			i = off + l
		}

		retScript = append(retScript, pop)
	}
	return retScript, nil
}

func parseScriptAndVerifySize(script []byte) ([]parsedOpcode, error) {
	if len(script) > MaxScriptSize {
		return nil, scriptError(ErrScriptSizeExceeded, "script size is larger than max allowed size")
	}
	return parseScript(script)
}

// unparseScript reversed the action of parseScript and returns the
// parsedOpcode list as a concatenated list of bytes.
func unparseScript(pops []parsedOpcode) ([]byte, error) {
	var script []byte
	for _, pop := range pops {
		script = append(script, pop.opcode.value)
		if pop.opcode.length == 1 {
			continue
		}
		script = append(script, pop.data...)
	}
	return script, nil
}

// isPushOnly returns true if every opcode in the parsed script is a push
// operation (including OP_1 through OP_16 and OP_1NEGATE), false otherwise.
func isPushOnly(pops []parsedOpcode) bool {
	for _, pop := range pops {
		if pop.opcode.value > Op16 {
			return false
		}
	}
	return true
}

// IsPushOnlyScript returns whether or not the passed script only pushes data.
func IsPushOnlyScript(script []byte) bool {
	pops, err := parseScript(script)
	if err != nil {
		return false
	}
	return isPushOnly(pops)
}

// isScriptHash returns true if the script passed is a pay-to-script-hash
// transaction, false otherwise: OP_BLAKE2B OP_DATA_32 <32 bytes> OP_EQUAL.
func isScriptHash(pops []parsedOpcode) bool {
	return len(pops) == 3 &&
		pops[0].opcode.value == OpBlake2b &&
		pops[1].opcode.value == OpData32 &&
		len(pops[1].data) == 32 &&
		pops[2].opcode.value == OpEqual
}

// IsScriptHash returns whether or not the passed script is a pay-to-
// script-hash script.
func IsScriptHash(script []byte) bool {
	pops, err := parseScript(script)
	if err != nil {
		return false
	}
	return isScriptHash(pops)
}

// IsUnspendable returns whether the passed script is unspendable, or
// guaranteed to fail at execution. This allows inputs to be pruned
// instantly when entering the UTXO set.
func IsUnspendable(script []byte) bool {
	pops, err := parseScript(script)
	if err != nil || len(pops) == 0 {
		return false
	}
	return pops[0].opcode.value == OpReturn
}

// GetSigOpCount walks a decoded scriptPubKey (optionally preceded by its
// signatureScript, for P2SH descent) and counts the declared signature
// operations, context-free. Every OpCheckSig*(Verify) opcode contributes 1;
// every OpCheckMultiSig*(Verify) opcode contributes the preceding
// small-integer push, or MaxPubKeysPerMultiSig if the preceding push wasn't
// a small integer constant.
func GetSigOpCount(signatureScript, scriptPubKey []byte) int {
	pkPops, err := parseScript(scriptPubKey)
	if err != nil {
		return 0
	}

	count := getSigOpCount(pkPops, true)

	if !isScriptHash(pkPops) {
		return count
	}

	sigPops, err := parseScript(signatureScript)
	if err != nil || !isPushOnly(sigPops) || len(sigPops) == 0 {
		return 0
	}

	redeemScript := sigPops[len(sigPops)-1].data
	redeemPops, err := parseScript(redeemScript)
	if err != nil {
		return 0
	}
	return getSigOpCount(redeemPops, true)
}

func getSigOpCount(pops []parsedOpcode, precise bool) int {
	numSigOps := 0
	prevOp := byte(OpInvalidOpCode)
	for _, pop := range pops {
		switch pop.opcode.value {
		case OpCheckSig, OpCheckSigVerify, OpCheckSigECDSA:
			numSigOps++
		case OpCheckMultiSig, OpCheckMultiSigVerify, OpCheckMultiSigECDSA:
			if precise && prevOp >= OpTrue && prevOp <= Op16 {
				numSigOps += asSmallInt(prevOp)
			} else {
				numSigOps += MaxPubKeysPerMultiSig
			}
		}
		prevOp = pop.opcode.value
	}
	return numSigOps
}

// asSmallInt converts an opcode known to be in the range [OP_1, OP_16] to
// its corresponding integer.
func asSmallInt(op byte) int {
	if op == OpFalse {
		return 0
	}
	return int(op - (OpTrue - 1))
}

// OpInvalidOpCode is a sentinel used by getSigOpCount when there is no
// previous opcode (script start); it never matches OpTrue..Op16.
const OpInvalidOpCode = 0xff

// payToScriptHashScript returns a valid pay-to-script-hash script for the
// given script hash (Blake2b-256 of a redeem script).
func payToScriptHashScript(scriptHash []byte) ([]byte, error) {
	return NewScriptBuilder().
		AddOp(OpBlake2b).
		AddData(scriptHash).
		AddOp(OpEqual).
		Script()
}

// payToPubKeyScript returns a script of the form "<pubkey> OP_CHECKSIG" -
// the canonical Kaspa P2PK script, keyed to the given Schnorr public key.
func payToPubKeyScript(pubKey []byte) ([]byte, error) {
	return NewScriptBuilder().AddData(pubKey).AddOp(OpCheckSig).Script()
}

// NewScriptPublicKeyFromScript is a convenience constructor building an
// externalapi.ScriptPublicKey of the current (version 0) script version.
func NewScriptPublicKeyFromScript(script []byte) (*externalapi.ScriptPublicKey, error) {
	return externalapi.NewScriptPublicKey(0, script)
}
