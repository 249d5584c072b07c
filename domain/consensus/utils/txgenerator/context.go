package txgenerator

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// GeneratorContext is the generator's mutable state: the UTXO sources, the
// current Stage, the stash of UTXOs deferred because they didn't fit in the
// transaction being assembled, and the running counters surfaced by
// Summary().
type GeneratorContext struct {
	settings *GeneratorSettings

	priorityIdx  int
	priorityUsed map[externalapi.DomainOutpoint]bool

	stage *Stage

	// stash is the FIFO of UTXOs that didn't fit in a prior candidate
	// transaction's mass budget; they are retried first on the next
	// call, ahead of the stage's own iterator.
	stash []*externalapi.UTXOEntryReference

	aggregatedUtxos      int
	aggregateFees        uint64
	numberOfTransactions int
	finalTransactionID   *externalapi.DomainTransactionID
	isDone               bool
}

func newGeneratorContext(settings *GeneratorSettings) *GeneratorContext {
	used := make(map[externalapi.DomainOutpoint]bool, len(settings.PriorityUTXOs))
	for _, ref := range settings.PriorityUTXOs {
		used[*ref.Outpoint] = true
	}
	return &GeneratorContext{
		settings:     settings,
		priorityUsed: used,
		stage:        newFirstStage(),
	}
}

// popStash pops the oldest stashed UTXO, if any.
func (ctx *GeneratorContext) popStash() (*externalapi.UTXOEntryReference, bool) {
	if len(ctx.stash) == 0 {
		return nil, false
	}
	ref := ctx.stash[0]
	ctx.stash = ctx.stash[1:]
	return ref, true
}

func (ctx *GeneratorContext) pushStash(ref *externalapi.UTXOEntryReference) {
	ctx.stash = append(ctx.stash, ref)
}

// nextPriority pops the next not-yet-consumed priority UTXO, if any.
func (ctx *GeneratorContext) nextPriority() (*externalapi.UTXOEntryReference, bool) {
	if ctx.priorityIdx >= len(ctx.settings.PriorityUTXOs) {
		return nil, false
	}
	ref := ctx.settings.PriorityUTXOs[ctx.priorityIdx]
	ctx.priorityIdx++
	return ref, true
}

// nextSource pulls from the main UTXO source, skipping anything already
// claimed by the priority list.
func (ctx *GeneratorContext) nextSource() (*externalapi.UTXOEntryReference, bool) {
	if ctx.settings.SourceUTXOs == nil {
		return nil, false
	}
	for {
		ref, ok := ctx.settings.SourceUTXOs.Next()
		if !ok {
			return nil, false
		}
		if ctx.priorityUsed[*ref.Outpoint] {
			continue
		}
		return ref, true
	}
}

// nextUTXO implements the generator's fetch order: stash FIFO, the current
// stage's own iterator (only set for stages after the first), the priority
// list, then the main source filtered against the priority set.
func (ctx *GeneratorContext) nextUTXO() (*externalapi.UTXOEntryReference, bool) {
	if ref, ok := ctx.popStash(); ok {
		return ref, true
	}
	if ctx.stage.iterator != nil {
		if ref, ok := ctx.stage.iterator.Next(); ok {
			return ref, true
		}
	}
	if ref, ok := ctx.nextPriority(); ok {
		return ref, true
	}
	return ctx.nextSource()
}
