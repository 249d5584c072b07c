package externalapi

// DataKind classifies what role a SignableTransaction plays in the
// generator's output tree.
type DataKind uint8

const (
	// DataKindNoOp marks the terminal "nothing more to emit" value
	// returned once the generator's UTXO stream is exhausted.
	DataKindNoOp DataKind = iota
	// DataKindNode marks an intermediate relay transaction that
	// consolidates many UTXOs into a single change-addressed output.
	DataKindNode
	// DataKindEdge marks the terminal relay transaction of a stage; its
	// output seeds the next stage.
	DataKindEdge
	// DataKindFinal marks the payment transaction carrying the caller's
	// requested outputs.
	DataKindFinal
)

// String renders the DataKind using its short name.
func (k DataKind) String() string {
	switch k {
	case DataKindNoOp:
		return "NoOp"
	case DataKindNode:
		return "Node"
	case DataKindEdge:
		return "Edge"
	case DataKindFinal:
		return "Final"
	default:
		return "Unknown"
	}
}

// SignableTransaction pairs a DomainTransaction with the UTXO entries that
// back each of its inputs (index-aligned, same length as tx.Inputs), plus
// the amounts the generator already computed for it. Entries and
// tx.Inputs MUST be kept the same length - callers index them together when
// building signature hashes (the sighash procedure needs each input's
// previous UTXOEntry).
type SignableTransaction struct {
	Transaction *DomainTransaction

	// Entries holds the UTXO entry consumed by tx.Inputs[i] at index i.
	Entries []*UTXOEntry

	// AggregateInputAmount is the sum of Entries[i].Amount.
	AggregateInputAmount uint64

	// AggregateOutputAmount is the sum of tx.Outputs[i].Value.
	AggregateOutputAmount uint64

	// ChangeAmount is the value paid back to the change address, if any
	// output of tx is a change output (zero if the change was dust and
	// was absorbed into Fee instead).
	ChangeAmount uint64

	// Fee is the fee paid by this transaction, as computed by the mass
	// calculator/generator.
	Fee uint64

	// Kind classifies the transaction's role in the generator's output
	// tree.
	Kind DataKind
}

// NewSignableTransaction constructs a SignableTransaction, asserting the
// struct-of-arrays length invariant between tx.Inputs and entries in debug
// builds is the caller's responsibility; this constructor trusts its input.
func NewSignableTransaction(tx *DomainTransaction, entries []*UTXOEntry, aggregateInputAmount,
	aggregateOutputAmount, changeAmount, fee uint64, kind DataKind) *SignableTransaction {

	return &SignableTransaction{
		Transaction:           tx,
		Entries:               entries,
		AggregateInputAmount:  aggregateInputAmount,
		AggregateOutputAmount: aggregateOutputAmount,
		ChangeAmount:          changeAmount,
		Fee:                   fee,
		Kind:                  kind,
	}
}

// PopulateInputSigOpCountsAndSignatureScripts wires input.SigOpCount and
// input.SignatureScript onto stx.Transaction's inputs in place. It is used
// by callers who just finished signing the transaction to stamp the final
// signature scripts back onto the wire transaction before submission.
func (stx *SignableTransaction) PopulateInputSigOpCountsAndSignatureScripts(signatureScripts [][]byte, sigOpCounts []byte) {
	for i, input := range stx.Transaction.Inputs {
		if i < len(signatureScripts) {
			input.SignatureScript = signatureScripts[i]
		}
		if i < len(sigOpCounts) {
			input.SigOpCount = sigOpCounts[i]
		}
	}
}
