package externalapi

// FeeSource classifies who is expected to cover a transaction's fee.
type FeeSource uint8

const (
	// FeeSourceNone means no fee policy has been selected yet.
	FeeSourceNone FeeSource = iota
	// FeeSourceSender means the fee is deducted from the sender's change,
	// i.e. the requested payment outputs are paid in full.
	FeeSourceSender
	// FeeSourceReceiver means the fee is deducted from the first payment
	// output, i.e. the receiver nets out less than the nominal amount.
	FeeSourceReceiver
)

// Fees pairs a fee amount with the policy describing who pays it.
type Fees struct {
	Amount uint64
	Source FeeSource
}

// FeesFromSigned builds a Fees value from a signed amount: a negative amount
// means the receiver pays (it is subtracted from their payment), a positive
// amount means the sender pays (it is added on top of requested outputs).
// Zero means no fee policy (FeeSourceNone).
func FeesFromSigned(amount int64) Fees {
	switch {
	case amount < 0:
		return Fees{Amount: uint64(-amount), Source: FeeSourceReceiver}
	case amount > 0:
		return Fees{Amount: uint64(amount), Source: FeeSourceSender}
	default:
		return Fees{Amount: 0, Source: FeeSourceNone}
	}
}
