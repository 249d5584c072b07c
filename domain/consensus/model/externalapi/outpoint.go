package externalapi

import "fmt"

// DomainOutpoint is a combination of a transaction ID and an index into its
// outputs, uniquely identifying an output that can be spent.
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// NewDomainOutpoint instantiates a new DomainOutpoint from the given
// transaction ID and output index.
func NewDomainOutpoint(transactionID *DomainTransactionID, index uint32) *DomainOutpoint {
	return &DomainOutpoint{TransactionID: *transactionID, Index: index}
}

// String stringifies the outpoint as "txID:index".
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// Clone returns a clone of op.
func (op *DomainOutpoint) Clone() *DomainOutpoint {
	if op == nil {
		return nil
	}
	clone := *op
	return &clone
}

// Equal returns whether op equals to other.
func (op *DomainOutpoint) Equal(other *DomainOutpoint) bool {
	if op == nil || other == nil {
		return op == other
	}
	return op.TransactionID.Equal(&other.TransactionID) && op.Index == other.Index
}
