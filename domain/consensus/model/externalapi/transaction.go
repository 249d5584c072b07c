package externalapi

// DomainTransactionInput is a single input of a DomainTransaction: a
// reference to a previous output, the (initially empty) script that
// satisfies it, its sequence number, and the number of signature operations
// it is declared to carry (used by the mass calculator without needing to
// decode SignatureScript/ScriptPublicKey again).
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       byte
}

// Clone returns a clone of input.
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	if input == nil {
		return nil
	}
	sigScriptClone := make([]byte, len(input.SignatureScript))
	copy(sigScriptClone, input.SignatureScript)
	return &DomainTransactionInput{
		PreviousOutpoint: input.PreviousOutpoint,
		SignatureScript:  sigScriptClone,
		Sequence:         input.Sequence,
		SigOpCount:       input.SigOpCount,
	}
}

// DomainTransactionOutput is a single output of a DomainTransaction: the
// amount it carries (must be > 0 for a non-coinbase transaction) and the
// script that locks it.
type DomainTransactionOutput struct {
	Value           uint64
	ScriptPublicKey *ScriptPublicKey
}

// Clone returns a clone of output.
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	if output == nil {
		return nil
	}
	return &DomainTransactionOutput{
		Value:           output.Value,
		ScriptPublicKey: output.ScriptPublicKey.Clone(),
	}
}

// DomainTransaction is a Kaspa transaction: the wire-shaped fields, plus a
// Mass field that is zero until the mass calculator (or the generator, on
// its behalf) sets it, and an ID field that stays nil until a caller (such
// as the generator) stores a computed ID in it.
type DomainTransaction struct {
	Version      uint16
	Inputs       []*DomainTransactionInput
	Outputs      []*DomainTransactionOutput
	LockTime     uint64
	SubnetworkID DomainSubnetworkID
	Gas          uint64
	Payload      []byte

	// Mass is the transaction's protocol mass (compute/storage combined).
	// It is zero until set by the mass calculator.
	Mass uint64

	// ID is the transaction's ID. hashserialization.TransactionID
	// computes it but does not store it here; it is nil until a caller
	// sets it.
	ID *DomainTransactionID
}

// IsCoinbase reports whether tx belongs to the coinbase subnetwork.
func (tx *DomainTransaction) IsCoinbase() bool {
	return tx.SubnetworkID == SubnetworkIDCoinbase
}

// Clone returns a deep clone of tx.
func (tx *DomainTransaction) Clone() *DomainTransaction {
	if tx == nil {
		return nil
	}
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}
	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}
	payloadClone := make([]byte, len(tx.Payload))
	copy(payloadClone, tx.Payload)

	return &DomainTransaction{
		Version:      tx.Version,
		Inputs:       inputsClone,
		Outputs:      outputsClone,
		LockTime:     tx.LockTime,
		SubnetworkID: tx.SubnetworkID,
		Gas:          tx.Gas,
		Payload:      payloadClone,
		Mass:         tx.Mass,
		ID:           tx.ID.Clone(),
	}
}
