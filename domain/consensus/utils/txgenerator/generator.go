package txgenerator

import (
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/hashserialization"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txmass"
)

// massBoundaryNumerator/Denominator express the 4/5 fraction of the mass
// ceiling at which the generator stops accumulating further UTXOs into the
// current candidate transaction and attempts to finish it, even before its
// target value has been reached.
const (
	massBoundaryNumerator   = 4
	massBoundaryDenominator = 5
)

// Generator is the coordinator described by the transaction generator
// pipeline: it pulls UTXOs from a GeneratorContext, batches them against
// mass and value targets, and emits a lazy sequence of SignableTransactions
// via repeated calls to NextTransaction.
type Generator struct {
	settings *GeneratorSettings
	massCalc *txmass.Calculator
	ctx      *GeneratorContext
}

// New constructs a Generator from settings.
func New(settings *GeneratorSettings) *Generator {
	return &Generator{
		settings: settings,
		massCalc: settings.MassCalculator,
		ctx:      newGeneratorContext(settings),
	}
}

// GeneratorSummary aggregates the counters a Generator has accumulated
// across every NextTransaction call so far.
type GeneratorSummary struct {
	AggregatedUTXOs      int
	AggregateFees        uint64
	NumberOfTransactions int
	FinalTransactionID   *externalapi.DomainTransactionID
}

// Summary returns the generator's running counters.
func (g *Generator) Summary() *GeneratorSummary {
	return &GeneratorSummary{
		AggregatedUTXOs:      g.ctx.aggregatedUtxos,
		AggregateFees:        g.ctx.aggregateFees,
		NumberOfTransactions: g.ctx.numberOfTransactions,
		FinalTransactionID:   g.ctx.finalTransactionID,
	}
}

// NextTransaction produces the next SignableTransaction in the generator's
// output sequence: zero or more relay ("Node") batches, zero or more stage
// ("Edge") transactions, and finally either a Final payment transaction or
// a NoOp once nothing more can be emitted.
func (g *Generator) NextTransaction() (*externalapi.SignableTransaction, error) {
	if g.ctx.isDone {
		return noOpTransaction(), nil
	}

	for {
		ref, ok := g.ctx.nextUTXO()
		if !ok {
			return g.finishOnExhaustion()
		}

		input := &externalapi.DomainTransactionInput{
			PreviousOutpoint: *ref.Outpoint,
			Sequence:         externalapi.MaxTxInSequenceNum,
			SigOpCount:       1,
		}
		inputMass := g.massCalc.InputMass() + g.massCalc.SignatureMassPerInput() + g.massCalc.SigOpMassPerInput()

		if len(g.ctx.stage.data.inputs) > 0 && g.ctx.stage.data.inputMass+inputMass > g.massCeiling() {
			g.ctx.pushStash(ref)
			return g.emitRelay()
		}

		g.ctx.stage.addUTXO(ref, input, inputMass)
		g.ctx.aggregatedUtxos++

		if !g.settings.isSweep() && g.reachedPaymentBoundary() {
			stx, shouldContinue, err := g.tryFinishStandardStageProcessing()
			if err != nil {
				return nil, err
			}
			if !shouldContinue {
				return stx, nil
			}
		}
	}
}

// massCeiling is the mass budget left for accumulating further inputs: the
// standard transaction mass ceiling, minus room reserved for the fields a
// relay-style transaction carries regardless of input count (version,
// element counts, locktime, subnetwork ID, gas, payload, and the change
// output's own value/version/length-count bytes and scriptPublicKey), and
// any caller-reserved headroom. Reserving these up front makes the
// per-input running mass check in NextTransaction an exact predictor of the
// single-output relay transaction buildRelayLikeTransaction will compute.
func (g *Generator) massCeiling() uint64 {
	const fixedNonChangeBytes = 2 + 8 + 8 + 8 + 20 + 8 + 8 // version, in/out counts, locktime, subnetwork, gas, payload count
	const changeOutputNonScriptBytes = 8 + 2 + 8           // value, scriptPublicKey version, script length count

	changeScript := g.settings.changeScriptPublicKey
	fixedBytes := fixedNonChangeBytes + len(g.settings.Payload) + changeOutputNonScriptBytes + len(changeScript.Script)
	fixedMass := g.massCalc.TxByteMass(fixedBytes)
	changeScriptPubKeyMass := g.massCalc.ScriptPublicKeyMass(changeScript)

	return externalapi.MaximumStandardTransactionMass - fixedMass - changeScriptPubKeyMass - g.settings.AdditionalCompoundTransactionMass
}

// targetValue is the sum of the caller's requested final output values.
func (g *Generator) targetValue() uint64 {
	var sum uint64
	for _, output := range g.settings.FinalOutputs {
		sum += output.Value
	}
	return sum
}

// reachedPaymentBoundary reports whether the current stage's candidate
// transaction has accumulated enough mass or value to attempt finishing.
func (g *Generator) reachedPaymentBoundary() bool {
	massBoundary := (massBoundaryNumerator * externalapi.MaximumStandardTransactionMass) / massBoundaryDenominator
	if g.ctx.stage.data.inputMass >= massBoundary {
		return true
	}

	target := g.targetValue()
	if g.settings.Fees.Source == externalapi.FeeSourceReceiver {
		return g.ctx.stage.data.inputValue >= saturatingSub(target, g.ctx.aggregateFees)
	}

	priorityFee := uint64(0)
	if g.settings.Fees.Source == externalapi.FeeSourceSender {
		priorityFee = g.settings.Fees.Amount
	}
	return g.ctx.stage.data.inputValue >= target+priorityFee
}

// feeForMass returns the fee a transaction of the given mass should pay:
// the caller's explicit fee if one was configured, otherwise the
// mass-derived minimum relay fee.
func (g *Generator) feeForMass(mass uint64) uint64 {
	if g.settings.Fees.Source != externalapi.FeeSourceNone {
		return g.settings.Fees.Amount
	}
	return txmass.MinimumRequiredTransactionRelayFee(mass)
}

// buildCandidateTransaction assembles the transaction the current stage
// would emit if it stopped accumulating now: the caller's final outputs
// plus a placeholder change output, and computes its compute and storage
// mass.
func (g *Generator) buildCandidateTransaction() (*externalapi.DomainTransaction, uint64, uint64, error) {
	data := g.ctx.stage.data
	outputs := cloneOutputs(g.settings.FinalOutputs)
	outputs = append(outputs, &externalapi.DomainTransactionOutput{
		Value:           0,
		ScriptPublicKey: g.settings.changeScriptPublicKey,
	})

	tx := &externalapi.DomainTransaction{
		Version:      0,
		Inputs:       data.inputs,
		Outputs:      outputs,
		SubnetworkID: externalapi.SubnetworkIDNative,
		Payload:      g.settings.Payload,
	}

	computeMass, err := g.massCalc.ComputeMassForUnsignedTx(tx, 1)
	if err != nil {
		return nil, 0, 0, err
	}
	storageMass := g.massCalc.StorageMass(entryValues(data.entries), outputValues(outputs), false)
	return tx, computeMass, storageMass, nil
}

// tryFinishStandardStageProcessing decides whether to reject the current
// stage's candidate transaction (need more value - keep accumulating),
// promote it to an Edge transaction (its mass is too high to ever become
// Final, or this stage has already split off an earlier relay and so can no
// longer account for that relay's value on its own), or emit it as the
// Final payment transaction.
func (g *Generator) tryFinishStandardStageProcessing() (stx *externalapi.SignableTransaction, shouldContinue bool, err error) {
	tx, computeMass, storageMass, err := g.buildCandidateTransaction()
	if err != nil {
		return nil, false, err
	}
	fullMass := txmass.OverallMass(computeMass, storageMass)

	if fullMass > externalapi.MaximumStandardTransactionMass || g.ctx.stage.hasSplit() {
		stx, err = g.emitEdge()
		return stx, false, err
	}

	fee := g.feeForMass(fullMass)
	target := g.targetValue()
	if g.ctx.stage.data.inputValue < target+fee {
		return nil, true, nil
	}

	stx, err = g.emitFinal(tx, computeMass, storageMass)
	return stx, false, err
}

// finishOnExhaustion implements the generator's behavior once the UTXO
// source (stash, stage iterator, priority list and main iterator) has
// nothing left to offer.
func (g *Generator) finishOnExhaustion() (*externalapi.SignableTransaction, error) {
	if g.ctx.aggregatedUtxos < 2 {
		g.ctx.isDone = true
		return noOpTransaction(), nil
	}

	if g.ctx.stage.hasSplit() {
		if len(g.ctx.stage.data.inputs) == 0 {
			// This stage already handed every input off to earlier
			// relay transactions with nothing left pending; there is
			// no trailing Edge to emit, just continue from the child
			// stage those relays seeded.
			g.ctx.stage = newChildStage(g.ctx.stage)
			return g.NextTransaction()
		}
		return g.emitEdge()
	}

	tx, computeMass, storageMass, err := g.buildCandidateTransaction()
	if err != nil {
		return nil, err
	}
	fullMass := txmass.OverallMass(computeMass, storageMass)
	fee := g.feeForMass(fullMass)
	data := g.ctx.stage.data

	if data.inputValue < fee {
		g.ctx.isDone = true
		return nil, NewInsufficientFundsError(fee-data.inputValue, "final")
	}

	if g.settings.isSweep() {
		changeValue := data.inputValue - fee
		if txmass.IsTransactionOutputDust(changeValue, len(g.settings.changeScriptPublicKey.Script)) {
			g.ctx.isDone = true
			return noOpTransaction(), nil
		}
	}

	return g.emitFinal(tx, computeMass, storageMass)
}

// emitFinal finalizes and emits tx as the generator's Final payment
// transaction, dropping its change output if it would be dust (absorbing
// the value into the fee instead) and re-scoring mass afterward.
func (g *Generator) emitFinal(tx *externalapi.DomainTransaction, computeMass, storageMass uint64) (*externalapi.SignableTransaction, error) {
	data := g.ctx.stage.data
	target := g.targetValue()
	fee := g.feeForMass(txmass.OverallMass(computeMass, storageMass))

	var changeValue uint64
	if g.settings.Fees.Source == externalapi.FeeSourceReceiver && len(tx.Outputs) > 1 {
		primary := tx.Outputs[0]
		if primary.Value <= fee {
			return nil, NewInsufficientFundsError(fee-primary.Value+1, "final")
		}
		primary.Value -= fee
		var paid uint64
		for _, output := range tx.Outputs[:len(tx.Outputs)-1] {
			paid += output.Value
		}
		changeValue = saturatingSub(data.inputValue, paid)
	} else {
		if data.inputValue < target+fee {
			return nil, NewInsufficientFundsError(target+fee-data.inputValue, "final")
		}
		changeValue = data.inputValue - target - fee
	}

	if changeValue > 0 && txmass.IsTransactionOutputDust(changeValue, len(g.settings.changeScriptPublicKey.Script)) {
		fee += changeValue
		changeValue = 0
	}

	if changeValue == 0 {
		tx.Outputs = tx.Outputs[:len(tx.Outputs)-1]
	} else {
		tx.Outputs[len(tx.Outputs)-1].Value = changeValue
	}

	recomputedMass, err := g.massCalc.ComputeMassForUnsignedTx(tx, 1)
	if err != nil {
		return nil, err
	}
	recomputedStorage := g.massCalc.StorageMass(entryValues(data.entries), outputValues(tx.Outputs), false)
	tx.Mass = txmass.OverallMass(recomputedMass, recomputedStorage)
	if tx.Mass > externalapi.MaximumStandardTransactionMass {
		return nil, ErrMassCalculation
	}

	id := hashserialization.TransactionID(tx)
	tx.ID = id

	var aggregateOutput uint64
	for _, output := range tx.Outputs {
		aggregateOutput += output.Value
	}

	entries := cloneEntries(data.entries)
	stx := externalapi.NewSignableTransaction(tx, entries, data.inputValue, aggregateOutput, changeValue, fee, externalapi.DataKindFinal)

	g.ctx.stage.recordEmission(data.inputValue, fee)
	g.ctx.aggregateFees += fee
	g.ctx.numberOfTransactions++
	g.ctx.finalTransactionID = id
	g.ctx.isDone = true
	g.ctx.stage.resetData()

	return stx, nil
}

// emitRelay emits the current stage's accumulated inputs as an
// intermediate relay ("Node") transaction paying its aggregate value, minus
// the fee feeForMass assigns, back to the change address.
func (g *Generator) emitRelay() (*externalapi.SignableTransaction, error) {
	return g.buildRelayLikeTransaction(externalapi.DataKindNode)
}

// emitEdge emits the current stage's accumulated inputs as the terminal
// relay transaction of the stage, seeding a new Stage with the resulting
// change output as a synthetic UTXO.
func (g *Generator) emitEdge() (*externalapi.SignableTransaction, error) {
	return g.buildRelayLikeTransaction(externalapi.DataKindEdge)
}

func (g *Generator) buildRelayLikeTransaction(kind externalapi.DataKind) (*externalapi.SignableTransaction, error) {
	data := g.ctx.stage.data
	if len(data.inputs) == 0 {
		g.ctx.isDone = true
		return nil, NewInsufficientFundsError(0, "accumulator")
	}

	changeOutput := &externalapi.DomainTransactionOutput{Value: 0, ScriptPublicKey: g.settings.changeScriptPublicKey}
	tx := &externalapi.DomainTransaction{
		Version:      0,
		Inputs:       data.inputs,
		Outputs:      []*externalapi.DomainTransactionOutput{changeOutput},
		SubnetworkID: externalapi.SubnetworkIDNative,
	}

	computeMass, err := g.massCalc.ComputeMassForUnsignedTx(tx, 1)
	if err != nil {
		return nil, err
	}
	fee := g.feeForMass(computeMass)
	if data.inputValue <= fee {
		return nil, NewInsufficientFundsError(fee-data.inputValue+1, "relay")
	}
	changeOutput.Value = data.inputValue - fee
	tx.Mass = computeMass

	id := hashserialization.TransactionID(tx)
	tx.ID = id

	entries := cloneEntries(data.entries)
	stx := externalapi.NewSignableTransaction(tx, entries, data.inputValue, changeOutput.Value, changeOutput.Value, fee, kind)

	// Both Node and Edge relays feed their change output forward as a
	// synthetic UTXO for the stage's eventual successor: a fragmented
	// stage may emit several Node batches before a final Edge hands the
	// whole accumulated set off to the next stage, and none of that
	// value should be lost along the way.
	syntheticEntry := externalapi.NewUTXOEntry(changeOutput.Value, g.settings.changeScriptPublicKey, false, externalapi.UnacceptedDAAScore)
	syntheticOutpoint := externalapi.NewDomainOutpoint(id, 0)
	g.ctx.stage.nextAccumulator = append(g.ctx.stage.nextAccumulator,
		externalapi.NewUTXOEntryReference(nil, syntheticEntry, syntheticOutpoint))

	g.ctx.stage.recordEmission(data.inputValue, fee)
	g.ctx.aggregateFees += fee
	g.ctx.numberOfTransactions++
	g.ctx.stage.resetData()

	if kind == externalapi.DataKindEdge {
		g.ctx.stage = newChildStage(g.ctx.stage)
	}

	return stx, nil
}

func noOpTransaction() *externalapi.SignableTransaction {
	return externalapi.NewSignableTransaction(nil, nil, 0, 0, 0, 0, externalapi.DataKindNoOp)
}

func cloneOutputs(outputs []*externalapi.DomainTransactionOutput) []*externalapi.DomainTransactionOutput {
	cloned := make([]*externalapi.DomainTransactionOutput, len(outputs))
	for i, output := range outputs {
		cloned[i] = output.Clone()
	}
	return cloned
}

func cloneEntries(entries []*externalapi.UTXOEntry) []*externalapi.UTXOEntry {
	cloned := make([]*externalapi.UTXOEntry, len(entries))
	for i, entry := range entries {
		cloned[i] = entry.Clone()
	}
	return cloned
}

func entryValues(entries []*externalapi.UTXOEntry) []uint64 {
	values := make([]uint64, len(entries))
	for i, entry := range entries {
		values[i] = entry.Amount
	}
	return values
}

func outputValues(outputs []*externalapi.DomainTransactionOutput) []uint64 {
	values := make([]uint64, len(outputs))
	for i, output := range outputs {
		values[i] = output.Value
	}
	return values
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
