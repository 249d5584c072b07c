package txscript

import (
	"testing"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/hashserialization"
)

func buildSpendingTx(lockTime uint64, sequence uint64, scriptPubKey *externalapi.ScriptPublicKey, amount uint64) (
	*externalapi.DomainTransaction, []*externalapi.UTXOEntry) {

	tx := &externalapi.DomainTransaction{
		Version: 0,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.DomainOutpoint{
				TransactionID: externalapi.DomainTransactionID{0xaa},
				Index:         0,
			},
			Sequence:   sequence,
			SigOpCount: 1,
		}},
		Outputs: []*externalapi.DomainTransactionOutput{
			{Value: amount - 1000, ScriptPublicKey: scriptPubKey},
		},
		LockTime:     lockTime,
		SubnetworkID: externalapi.SubnetworkIDNative,
	}
	utxoEntries := []*externalapi.UTXOEntry{
		externalapi.NewUTXOEntry(amount, scriptPubKey, false, 0),
	}
	return tx, utxoEntries
}

// §8 scenario 4: a P2PK output is spendable by a valid Schnorr signature
// over SIG_HASH_ALL, and the engine accepts.
func TestEngineP2PKAccept(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %s", err)
	}
	pubKey, err := privKey.SchnorrPublicKey()
	if err != nil {
		t.Fatalf("SchnorrPublicKey: %s", err)
	}
	serializedPubKey, err := pubKey.SerializeCompressed()
	if err != nil {
		t.Fatalf("SerializeCompressed: %s", err)
	}
	// Kaspa Schnorr public keys pushed to scripts are 32-byte x-only
	// encodings; drop the leading parity byte a compressed secp256k1
	// encoding carries.
	xOnlyPubKey := serializedPubKey[len(serializedPubKey)-32:]

	scriptPubKeyScript, err := PayToPubKeyScript(xOnlyPubKey)
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %s", err)
	}
	scriptPubKey, err := NewScriptPublicKeyFromScript(scriptPubKeyScript)
	if err != nil {
		t.Fatalf("NewScriptPublicKeyFromScript: %s", err)
	}

	tx, utxoEntries := buildSpendingTx(0, 0, scriptPubKey, 100_000_000)
	reusedValues := &hashserialization.SighashReusedValues{}
	err = SignTxInputP2PK(tx, 0, externalapi.SigHashAll, utxoEntries, reusedValues, privKey)
	if err != nil {
		t.Fatalf("SignTxInputP2PK: %s", err)
	}

	vm, err := NewEngine(scriptPubKey, tx, 0, utxoEntries, NewSigCache())
	if err != nil {
		t.Fatalf("NewEngine: %s", err)
	}
	if err := vm.Execute(); err != nil {
		t.Fatalf("expected P2PK spend to validate, got error: %s", err)
	}
}

func TestEngineP2PKRejectsWrongKey(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %s", err)
	}
	otherKey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %s", err)
	}
	pubKey, err := privKey.SchnorrPublicKey()
	if err != nil {
		t.Fatalf("SchnorrPublicKey: %s", err)
	}
	serializedPubKey, err := pubKey.SerializeCompressed()
	if err != nil {
		t.Fatalf("SerializeCompressed: %s", err)
	}
	xOnlyPubKey := serializedPubKey[len(serializedPubKey)-32:]

	scriptPubKeyScript, err := PayToPubKeyScript(xOnlyPubKey)
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %s", err)
	}
	scriptPubKey, err := NewScriptPublicKeyFromScript(scriptPubKeyScript)
	if err != nil {
		t.Fatalf("NewScriptPublicKeyFromScript: %s", err)
	}

	tx, utxoEntries := buildSpendingTx(0, 0, scriptPubKey, 100_000_000)
	reusedValues := &hashserialization.SighashReusedValues{}
	// Sign with the wrong key - must fail validation.
	err = SignTxInputP2PK(tx, 0, externalapi.SigHashAll, utxoEntries, reusedValues, otherKey)
	if err != nil {
		t.Fatalf("SignTxInputP2PK: %s", err)
	}

	vm, err := NewEngine(scriptPubKey, tx, 0, utxoEntries, NewSigCache())
	if err != nil {
		t.Fatalf("NewEngine: %s", err)
	}
	if err := vm.Execute(); err == nil {
		t.Fatal("expected signature from the wrong key to fail validation")
	}
}

// §8 scenario 5: a CLTV stack value whose type (seconds vs. DAA score)
// disagrees with the transaction's own LockTime type is a hard rejection,
// independent of the numeric comparison.
func TestCheckLockTimeVerifyMismatchedTypes(t *testing.T) {
	scriptPubKeyScript, err := NewScriptBuilder().
		AddInt64(500_000_000_001).
		AddOp(OpCheckLockTimeVerify).
		AddOp(OpTrue).
		Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}
	scriptPubKey, err := NewScriptPublicKeyFromScript(scriptPubKeyScript)
	if err != nil {
		t.Fatalf("NewScriptPublicKeyFromScript: %s", err)
	}

	tx, utxoEntries := buildSpendingTx(100, 0, scriptPubKey, 100_000_000)
	tx.Inputs[0].SignatureScript = []byte{}

	vm, err := NewEngine(scriptPubKey, tx, 0, utxoEntries, NewSigCache())
	if err != nil {
		t.Fatalf("NewEngine: %s", err)
	}
	err = vm.Execute()
	if err == nil {
		t.Fatal("expected mismatched lock time types to fail")
	}
	if !IsErrorCode(err, ErrMismatchedLockTimeTypes) {
		t.Fatalf("expected ErrMismatchedLockTimeTypes, got %v", err)
	}
}

func TestCheckLockTimeVerifyFinalizedInputFails(t *testing.T) {
	scriptPubKeyScript, err := NewScriptBuilder().
		AddInt64(100).
		AddOp(OpCheckLockTimeVerify).
		AddOp(OpTrue).
		Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}
	scriptPubKey, err := NewScriptPublicKeyFromScript(scriptPubKeyScript)
	if err != nil {
		t.Fatalf("NewScriptPublicKeyFromScript: %s", err)
	}

	tx, utxoEntries := buildSpendingTx(200, externalapi.MaxTxInSequenceNum, scriptPubKey, 100_000_000)
	tx.Inputs[0].SignatureScript = []byte{}

	vm, err := NewEngine(scriptPubKey, tx, 0, utxoEntries, NewSigCache())
	if err != nil {
		t.Fatalf("NewEngine: %s", err)
	}
	if err := vm.Execute(); err == nil {
		t.Fatal("expected a finalized input to reject OP_CHECKLOCKTIMEVERIFY")
	}
}

func TestEnginePushOnlySignatureScriptRequired(t *testing.T) {
	scriptPubKeyScript, err := NewScriptBuilder().AddOp(OpTrue).Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}
	sigScript, err := NewScriptBuilder().AddOp(OpDup).Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}

	_, err = NewStandaloneEngine(sigScript, scriptPubKeyScript, NewSigCache())
	if err == nil {
		t.Fatal("expected non-push-only signature script to be rejected at construction")
	}
	if !IsErrorCode(err, ErrSignatureScriptNotPushOnly) {
		t.Fatalf("expected ErrSignatureScriptNotPushOnly, got %v", err)
	}
}

func TestEngineStandaloneScriptArithmetic(t *testing.T) {
	scriptPubKeyScript, err := NewScriptBuilder().
		AddInt64(2).AddInt64(3).AddOp(OpAdd).AddInt64(5).AddOp(OpNumEqual).
		Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}

	vm, err := NewStandaloneEngine(nil, scriptPubKeyScript, NewSigCache())
	if err != nil {
		t.Fatalf("NewStandaloneEngine: %s", err)
	}
	if err := vm.Execute(); err != nil {
		t.Fatalf("expected 2+3==5 to validate, got: %s", err)
	}
}

func TestEngineUnbalancedConditionalFails(t *testing.T) {
	scriptPubKeyScript, err := NewScriptBuilder().
		AddOp(OpTrue).AddOp(OpIf).AddOp(OpTrue).
		Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}

	vm, err := NewStandaloneEngine(nil, scriptPubKeyScript, NewSigCache())
	if err != nil {
		t.Fatalf("NewStandaloneEngine: %s", err)
	}
	err = vm.Execute()
	if err == nil || !IsErrorCode(err, ErrUnbalancedConditional) {
		t.Fatalf("expected ErrUnbalancedConditional, got %v", err)
	}
}

func TestOpIfRejectsNonBooleanConditionValue(t *testing.T) {
	scriptPubKeyScript, err := NewScriptBuilder().
		AddInt64(2).AddOp(OpIf).AddOp(OpTrue).AddOp(OpEndIf).
		Script()
	if err != nil {
		t.Fatalf("building script: %s", err)
	}

	vm, err := NewStandaloneEngine(nil, scriptPubKeyScript, NewSigCache())
	if err != nil {
		t.Fatalf("NewStandaloneEngine: %s", err)
	}
	err = vm.Execute()
	if err == nil || !IsErrorCode(err, ErrMalformedPush) {
		t.Fatalf("expected a non-0/1 OP_IF condition to be ErrMalformedPush, got %v", err)
	}
}
