package txgenerator

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// UTXOIterator is a pull-model source of UTXOs: callers who hold the set in
// memory, or who stream it from a node's UTXO index, both implement it the
// same way.
type UTXOIterator interface {
	// Next returns the next UTXO, or ok=false once the source is
	// exhausted.
	Next() (*externalapi.UTXOEntryReference, bool)
}

// SliceUTXOIterator is a UTXOIterator over an in-memory slice, consumed
// front to back.
type SliceUTXOIterator struct {
	entries []*externalapi.UTXOEntryReference
	pos     int
}

// NewSliceUTXOIterator wraps entries as a UTXOIterator.
func NewSliceUTXOIterator(entries []*externalapi.UTXOEntryReference) *SliceUTXOIterator {
	return &SliceUTXOIterator{entries: entries}
}

// Next implements UTXOIterator.
func (it *SliceUTXOIterator) Next() (*externalapi.UTXOEntryReference, bool) {
	if it == nil || it.pos >= len(it.entries) {
		return nil, false
	}
	entry := it.entries[it.pos]
	it.pos++
	return entry, true
}
