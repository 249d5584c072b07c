package txmass

import (
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/hashserialization"
)

// Calculator computes a transaction's compute mass and KIP-0009 storage
// mass under a fixed set of Params. It is grounded on the teacher's
// CountTxMass (domain-wide per-byte/per-scriptPubKey-byte/per-sigop sum),
// extended with the storage-mass combinator KIP-0009 adds on top.
type Calculator struct {
	params Params
}

// New returns a Calculator configured with params.
func New(params Params) *Calculator {
	return &Calculator{params: params}
}

// ComputeMass computes tx's compute mass: its serialized size (signature
// scripts as they currently stand, empty or not) weighted by
// MassPerTxByte, plus each output's (2 + len(script)) weighted by
// MassPerScriptPubKeyByte, plus the sum of declared input SigOpCounts
// weighted by MassPerSigOp. Coinbase transactions still price by size (the
// teacher's CountTxMass returns early for coinbase only because it skips
// the sigop walk, which needs no spent UTXOs to look up on a coinbase).
func (c *Calculator) ComputeMass(tx *externalapi.DomainTransaction) (uint64, error) {
	serialized, err := hashserialization.Serialize(tx)
	if err != nil {
		return 0, err
	}
	sizeMass := uint64(len(serialized)) * c.params.MassPerTxByte

	if tx.IsCoinbase() {
		return sizeMass, nil
	}

	var scriptPubKeyMass uint64
	for _, output := range tx.Outputs {
		scriptPubKeyMass += uint64(2+len(output.ScriptPublicKey.Script)) * c.params.MassPerScriptPubKeyByte
	}

	var sigOpMass uint64
	for _, input := range tx.Inputs {
		sigOpMass += uint64(input.SigOpCount) * c.params.MassPerSigOp
	}

	return sizeMass + scriptPubKeyMass + sigOpMass, nil
}

// ComputeMassForUnsignedTx computes tx's compute mass as ComputeMass does,
// then adds the mass the as-yet-absent signatures will add once tx is
// signed: SIGNATURE_SIZE (a 65-byte OP_DATA_65 push plus the 1-byte sighash
// type) per required signature per input, weighted by MassPerTxByte. This
// is what the generator uses to price a candidate input before it has been
// signed.
func (c *Calculator) ComputeMassForUnsignedTx(tx *externalapi.DomainTransaction, minSigsPerInput uint64) (uint64, error) {
	baseMass, err := c.ComputeMass(tx)
	if err != nil {
		return 0, err
	}
	if minSigsPerInput == 0 {
		minSigsPerInput = 1
	}
	unsignedMass := externalapi.SignatureSize * c.params.MassPerTxByte * minSigsPerInput * uint64(len(tx.Inputs))
	return baseMass + unsignedMass, nil
}

// SignatureMassPerInput is the compute-mass contribution of a single future
// signature on a single input: SIGNATURE_SIZE bytes weighted by
// MassPerTxByte. The generator adds this once per accumulated UTXO input to
// estimate the mass of the transaction it is still assembling.
func (c *Calculator) SignatureMassPerInput() uint64 {
	return externalapi.SignatureSize * c.params.MassPerTxByte
}

// InputMass is the compute-mass contribution of a single empty-signature
// TransactionInput's own serialized bytes (outpoint + zero-length
// signature script + SigOpCount + sequence), weighted by MassPerTxByte.
func (c *Calculator) InputMass() uint64 {
	// 36-byte outpoint + 8-byte zero script length + 1-byte SigOpCount +
	// 8-byte sequence, as hashserialization writes an unsigned input.
	const emptyInputSize = 36 + 8 + 1 + 8
	return emptyInputSize * c.params.MassPerTxByte
}

// ScriptPublicKeyMass is the compute-mass contribution of a single output's
// scriptPublicKey: (2 + len(script)) bytes weighted by
// MassPerScriptPubKeyByte. The generator uses this to reserve room for the
// eventual change output before it knows the rest of the transaction's
// shape.
func (c *Calculator) ScriptPublicKeyMass(scriptPublicKey *externalapi.ScriptPublicKey) uint64 {
	return uint64(2+len(scriptPublicKey.Script)) * c.params.MassPerScriptPubKeyByte
}

// SigOpMassPerInput is the compute-mass contribution of a single input's
// declared SigOpCount, assuming the standard single-signature case
// (SigOpCount == 1). The generator adds this once per accumulated UTXO
// input, alongside InputMass and SignatureMassPerInput, to track the exact
// mass a relay-style transaction will carry before it is built.
func (c *Calculator) SigOpMassPerInput() uint64 {
	return c.params.MassPerSigOp
}

// TxByteMass weights a count of raw wire bytes by MassPerTxByte. The
// generator uses this to reserve the fixed, per-input-independent part of a
// transaction's serialized size (version, element counts, locktime,
// subnetwork ID, gas, payload, and the change output's own non-script
// fields) against the mass ceiling before it knows how many inputs will
// ultimately be accumulated.
func (c *Calculator) TxByteMass(byteCount int) uint64 {
	return uint64(byteCount) * c.params.MassPerTxByte
}

// OverallMass is the mass charged against a transaction: the larger of its
// compute mass and its storage mass.
func OverallMass(computeMass, storageMass uint64) uint64 {
	if storageMass > computeMass {
		return storageMass
	}
	return computeMass
}
