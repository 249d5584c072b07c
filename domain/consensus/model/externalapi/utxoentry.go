package externalapi

// UTXOEntry houses details about an individual transaction output in a UTXO
// set: whether it was contained in a coinbase transaction, the DAA score of
// the block that accepted it, its locking script, and how much it pays.
type UTXOEntry struct {
	Amount          uint64
	ScriptPublicKey *ScriptPublicKey
	BlockDAAScore   uint64
	IsCoinbase      bool
}

// NewUTXOEntry creates a new UTXOEntry representing the given output.
func NewUTXOEntry(amount uint64, scriptPublicKey *ScriptPublicKey, isCoinbase bool, blockDAAScore uint64) *UTXOEntry {
	return &UTXOEntry{
		Amount:          amount,
		ScriptPublicKey: scriptPublicKey.Clone(),
		BlockDAAScore:   blockDAAScore,
		IsCoinbase:      isCoinbase,
	}
}

// Clone returns a clone of entry.
func (entry *UTXOEntry) Clone() *UTXOEntry {
	if entry == nil {
		return nil
	}
	return &UTXOEntry{
		Amount:          entry.Amount,
		ScriptPublicKey: entry.ScriptPublicKey.Clone(),
		BlockDAAScore:   entry.BlockDAAScore,
		IsCoinbase:      entry.IsCoinbase,
	}
}

// Equal returns whether entry equals to other.
func (entry *UTXOEntry) Equal(other *UTXOEntry) bool {
	if entry == nil || other == nil {
		return entry == other
	}
	return entry.Amount == other.Amount &&
		entry.ScriptPublicKey.Equal(other.ScriptPublicKey) &&
		entry.BlockDAAScore == other.BlockDAAScore &&
		entry.IsCoinbase == other.IsCoinbase
}

// OutpointAndUTXOEntryPair pairs an outpoint with the UTXO entry it refers
// to. It is the plain (address-less) pairing used internally by mass
// calculation and transaction validation; UTXOEntryReference (below) is the
// address-aware version the generator works with.
type OutpointAndUTXOEntryPair struct {
	Outpoint  *DomainOutpoint
	UTXOEntry *UTXOEntry
}

// UTXOEntryReference extends a UTXOEntry with the outpoint it was found at
// and, optionally, the address it was swept from. The generator uses the
// pair (Outpoint.TransactionID, Outpoint.Index) as the unique identity for
// duplicate-filtering against the priority UTXO set.
type UTXOEntryReference struct {
	Address *string
	*UTXOEntry
	Outpoint *DomainOutpoint
}

// NewUTXOEntryReference builds a UTXOEntryReference.
func NewUTXOEntryReference(address *string, entry *UTXOEntry, outpoint *DomainOutpoint) *UTXOEntryReference {
	return &UTXOEntryReference{Address: address, UTXOEntry: entry, Outpoint: outpoint}
}

// Id returns the (txID, index) identity of the underlying outpoint, used as
// the map key for duplicate filtering.
func (ref *UTXOEntryReference) Id() DomainOutpoint {
	return *ref.Outpoint
}
