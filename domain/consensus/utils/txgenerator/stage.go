package txgenerator

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// Stage is one level of the generator's batching pipeline. The first stage
// draws UTXOs straight from the context's priority list and main iterator;
// each subsequent stage draws from the synthetic relay-output UTXOs its
// predecessor accumulated while emitting relay (Node and Edge)
// transactions. Stages form a
// singly-linked history via previous.
type Stage struct {
	previous *Stage
	iterator UTXOIterator

	// nextAccumulator collects the synthetic UTXOs (at
	// UnacceptedDAAScore) produced by this stage's Node and Edge
	// transactions;
	// it seeds the iterator of the stage allocated after this one.
	nextAccumulator []*externalapi.UTXOEntryReference

	aggregateInputValue  uint64
	aggregateFees        uint64
	numberOfTransactions int

	// data is the in-progress candidate transaction this stage is
	// accumulating UTXOs into. It is reset every time a transaction is
	// emitted.
	data stageData
}

// stageData is the struct-of-arrays accumulation of UTXOs committed to the
// transaction the generator is currently assembling within a Stage.
type stageData struct {
	entries    []*externalapi.UTXOEntry
	inputs     []*externalapi.DomainTransactionInput
	refs       []*externalapi.UTXOEntryReference
	inputValue uint64
	inputMass  uint64
}

func newFirstStage() *Stage {
	return &Stage{}
}

// newChildStage allocates the stage downstream of s, whose iterator draws
// from the synthetic UTXOs s accumulated while emitting Node and Edge
// transactions.
func newChildStage(previous *Stage) *Stage {
	return &Stage{
		previous: previous,
		iterator: NewSliceUTXOIterator(previous.nextAccumulator),
	}
}

func (s *Stage) isFirst() bool {
	return s.previous == nil
}

// hasSplit reports whether this stage has already emitted at least one
// relay transaction. Once it has, no later candidate built from this
// stage's remaining inputs alone can account for the value that already
// left through those earlier relays, so it can never become Final - it can
// only ever promote to another Edge.
func (s *Stage) hasSplit() bool {
	return len(s.nextAccumulator) > 0
}

// addUTXO commits ref to the stage's in-progress candidate transaction.
func (s *Stage) addUTXO(ref *externalapi.UTXOEntryReference, input *externalapi.DomainTransactionInput, inputMass uint64) {
	s.data.entries = append(s.data.entries, ref.UTXOEntry)
	s.data.inputs = append(s.data.inputs, input)
	s.data.refs = append(s.data.refs, ref)
	s.data.inputValue += ref.Amount
	s.data.inputMass += inputMass
}

// resetData clears the in-progress candidate transaction after it has been
// emitted (or stashed away) so the stage can start accumulating the next
// one from scratch.
func (s *Stage) resetData() {
	s.data = stageData{}
}

// recordEmission folds a just-emitted transaction's input value and fee
// into the stage's running totals.
func (s *Stage) recordEmission(inputValue, fee uint64) {
	s.aggregateInputValue += inputValue
	s.aggregateFees += fee
	s.numberOfTransactions++
}
