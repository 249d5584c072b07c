package txscript

import (
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/hashserialization"
)

// Engine is the virtual machine that executes Kaspa scripts. Its source is
// either a TxInput paired with its spent UTXO entries - in which case the
// introspection opcodes and signature checks are available - or a
// standalone script pair with no transaction context, in which case the
// introspection and lock-time opcodes fail, and a signature check fails
// once it needs a sighash (an empty signature still just pushes false).
type Engine struct {
	scripts   [][]parsedOpcode
	scriptIdx int
	scriptOff int

	dstack stack
	astack stack

	condStack []int
	numOps    int

	isP2SH          bool
	savedFirstStack [][]byte

	sigCache *SigCache

	// TxInput-source fields. tx is nil for a standalone engine.
	tx           *externalapi.DomainTransaction
	txInputIndex int
	utxoEntries  []*externalapi.UTXOEntry
	reusedValues *hashserialization.SighashReusedValues
}

func (vm *Engine) hasTxSource() bool {
	return vm.tx != nil
}

// isBranchExecuting returns whether or not the current conditional branch is
// actively executing. It properly handles nested conditionals.
func (vm *Engine) isBranchExecuting() bool {
	if len(vm.condStack) == 0 {
		return true
	}
	return vm.condStack[len(vm.condStack)-1] == OpCondTrue
}

// executeOpcode performs execution on the passed opcode, taking into
// account whether or not it is hidden by conditionals, but some rules still
// must be tested in this case.
func (vm *Engine) executeOpcode(pop *parsedOpcode) error {
	if pop.isDisabled() {
		return scriptError(ErrOpcodeDisabled, "attempt to execute disabled opcode "+pop.opcode.name)
	}

	if pop.alwaysIllegal() {
		return scriptError(ErrOpcodeReserved, "attempt to execute reserved opcode "+pop.opcode.name)
	}

	if pop.opcode.value > Op16 {
		vm.numOps++
		if vm.numOps > MaxOpsPerScript {
			return scriptError(ErrTooManyOperations, "exceeded max operation limit")
		}
	} else if len(pop.data) > MaxScriptElementSize {
		return scriptError(ErrNumberTooBig, "element size exceeds max allowed size")
	}

	if !vm.isBranchExecuting() && !pop.isConditional() {
		return nil
	}

	// Reserved introspection opcodes fail when executed; inside an untaken
	// branch they were already skipped above.
	if pop.isReservedIntrospection() {
		return scriptError(ErrInvalidOpcode, "attempt to execute reserved introspection opcode "+pop.opcode.name)
	}

	if vm.isBranchExecuting() && pop.opcode.value >= 0 && pop.opcode.value <= OpPushData4 {
		if err := pop.checkMinimalDataPush(); err != nil {
			return err
		}
	}

	return pop.opcode.opfunc(pop, vm)
}

func (vm *Engine) validPC() error {
	if vm.scriptIdx >= len(vm.scripts) {
		return scriptError(ErrInvalidState, "past end of scripts")
	}
	if vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
		return scriptError(ErrInvalidState, "past end of script")
	}
	return nil
}

// CheckErrorCondition returns nil if the running script has ended and was
// successful, leaving a true boolean on the stack. An error otherwise,
// including if the script has not finished.
func (vm *Engine) CheckErrorCondition(finalScript bool) error {
	if vm.scriptIdx < len(vm.scripts) {
		return scriptError(ErrInvalidState, "error check when script unfinished")
	}

	if finalScript {
		if vm.dstack.Depth() > 1 {
			return scriptError(ErrCleanStack, "stack contains unexpected items")
		} else if vm.dstack.Depth() < 1 {
			return scriptError(ErrEmptyStack, "stack empty at end of script execution")
		}
	}

	v, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !v {
		return scriptError(ErrEvalFalse, "false stack entry at end of script execution")
	}
	return nil
}

// Step executes the next instruction and moves the program counter to the
// next opcode in the script, or the next script if the current has ended.
// It returns true if the last opcode was successfully executed and there is
// nothing left to run.
func (vm *Engine) Step() (done bool, err error) {
	if err := vm.validPC(); err != nil {
		return true, err
	}
	opcode := &vm.scripts[vm.scriptIdx][vm.scriptOff]
	vm.scriptOff++

	if err := vm.executeOpcode(opcode); err != nil {
		return true, err
	}

	combinedStackSize := vm.dstack.Depth() + vm.astack.Depth()
	if combinedStackSize > MaxStackSize {
		return false, scriptError(ErrStackSizeExceeded, "combined stack size exceeds max allowed")
	}

	if vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
		if len(vm.condStack) != 0 {
			return false, scriptError(ErrUnbalancedConditional, "end of script reached in conditional execution")
		}

		_ = vm.astack.DropN(vm.astack.Depth())

		vm.numOps = 0
		vm.scriptOff = 0
		if vm.scriptIdx == 0 && vm.isP2SH {
			vm.scriptIdx++
			vm.savedFirstStack = getStack(&vm.dstack)
		} else if vm.scriptIdx == 1 && vm.isP2SH {
			vm.scriptIdx++
			if err := vm.CheckErrorCondition(false); err != nil {
				return false, err
			}

			script := vm.savedFirstStack[len(vm.savedFirstStack)-1]
			pops, err := parseScript(script)
			if err != nil {
				return false, err
			}
			vm.scripts = append(vm.scripts, pops)
			setStack(&vm.dstack, vm.savedFirstStack[:len(vm.savedFirstStack)-1])
		} else {
			vm.scriptIdx++
		}

		if vm.scriptIdx < len(vm.scripts) && vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
			vm.scriptIdx++
		}
		if vm.scriptIdx >= len(vm.scripts) {
			return true, nil
		}
	}
	return false, nil
}

// Execute runs all scripts in the script engine and returns nil for
// successful validation or an error otherwise.
func (vm *Engine) Execute() error {
	done := false
	var err error
	for !done {
		done, err = vm.Step()
		if err != nil {
			return err
		}
	}
	return vm.CheckErrorCondition(true)
}

func getStack(s *stack) [][]byte {
	array := make([][]byte, s.Depth())
	for i := range array {
		array[len(array)-i-1], _ = s.PeekByteArray(int32(i))
	}
	return array
}

func setStack(s *stack, data [][]byte) {
	_ = s.DropN(s.Depth())
	for i := range data {
		s.PushByteArray(data[i])
	}
}

// GetStack returns the contents of the primary stack, bottom to top.
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// NewEngine returns a new script engine for the given TxInput source: the
// transaction spending input inputIndex, and the UTXO entries its inputs
// reference (in input order). scriptPubKey is the locking script of the
// output being spent.
func NewEngine(
	scriptPubKey *externalapi.ScriptPublicKey, tx *externalapi.DomainTransaction, inputIndex int,
	utxoEntries []*externalapi.UTXOEntry, sigCache *SigCache,
) (*Engine, error) {

	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return nil, scriptError(ErrInvalidInputIndex, "transaction input index out of range")
	}
	scriptSig := tx.Inputs[inputIndex].SignatureScript

	if len(scriptSig) == 0 && len(scriptPubKey.Script) == 0 {
		return nil, scriptError(ErrEvalFalse, "false stack entry at end of script execution")
	}

	vm := Engine{
		sigCache:     sigCache,
		tx:           tx,
		txInputIndex: inputIndex,
		utxoEntries:  utxoEntries,
		reusedValues: &hashserialization.SighashReusedValues{},
	}

	parsedScriptSig, err := parseScriptAndVerifySize(scriptSig)
	if err != nil {
		return nil, err
	}
	if !isPushOnly(parsedScriptSig) {
		return nil, scriptError(ErrSignatureScriptNotPushOnly, "signature script is not push only")
	}

	parsedScriptPubKey, err := parseScriptAndVerifySize(scriptPubKey.Script)
	if err != nil {
		return nil, err
	}

	vm.scripts = [][]parsedOpcode{parsedScriptSig, parsedScriptPubKey}
	if len(scriptSig) == 0 {
		vm.scriptIdx++
	}

	if isScriptHash(vm.scripts[1]) {
		if !isPushOnly(vm.scripts[0]) {
			return nil, scriptError(ErrSignatureScriptNotPushOnly, "pay to script hash is not push only")
		}
		vm.isP2SH = true
	}

	return &vm, nil
}

// NewStandaloneEngine returns a new script engine for a bare pair of
// scripts with no owning transaction. Introspection and lock-time opcodes
// always fail in a standalone engine; signature checks fail once they need
// a sighash, so an empty signature still pushes false.
func NewStandaloneEngine(signatureScript, scriptPubKey []byte, sigCache *SigCache) (*Engine, error) {
	if len(signatureScript) == 0 && len(scriptPubKey) == 0 {
		return nil, scriptError(ErrEvalFalse, "false stack entry at end of script execution")
	}

	vm := Engine{sigCache: sigCache}

	parsedScriptSig, err := parseScriptAndVerifySize(signatureScript)
	if err != nil {
		return nil, err
	}
	if !isPushOnly(parsedScriptSig) {
		return nil, scriptError(ErrSignatureScriptNotPushOnly, "signature script is not push only")
	}

	parsedScriptPubKey, err := parseScriptAndVerifySize(scriptPubKey)
	if err != nil {
		return nil, err
	}

	vm.scripts = [][]parsedOpcode{parsedScriptSig, parsedScriptPubKey}
	if len(signatureScript) == 0 {
		vm.scriptIdx++
	}

	if isScriptHash(vm.scripts[1]) {
		if !isPushOnly(vm.scripts[0]) {
			return nil, scriptError(ErrSignatureScriptNotPushOnly, "pay to script hash is not push only")
		}
		vm.isP2SH = true
	}

	return &vm, nil
}
