// Package txgenerator implements the UTXO-selecting transaction generator:
// a multi-stage batching pipeline that consumes a stream of UTXOs and
// emits a tree of relay ("Node"), stage ("Edge") and final payment
// transactions, respecting mass ceilings and storage-mass/dust rules.
package txgenerator

import "github.com/pkg/errors"

// InsufficientFundsError reports that the UTXO source was exhausted (or a
// candidate transaction's mass ceiling was hit) before enough value had
// been aggregated. Origin names which stage of the pipeline detected the
// shortfall: "accumulator", "relay", or "final".
type InsufficientFundsError struct {
	Needed uint64
	Origin string
}

func (e *InsufficientFundsError) Error() string {
	return errors.Errorf("insufficient funds: needed %d more Sompi (origin: %s)", e.Needed, e.Origin).Error()
}

// NewInsufficientFundsError constructs an InsufficientFundsError.
func NewInsufficientFundsError(needed uint64, origin string) error {
	return &InsufficientFundsError{Needed: needed, Origin: origin}
}

// ErrMassCalculation is returned when a candidate transaction's mass
// exceeds the standard ceiling after every accumulation option (stashing,
// promoting to a new stage) has been exhausted.
var ErrMassCalculation = errors.New("mass calculation error: transaction mass exceeds the standard ceiling")

// ErrInvalidTransactionOutputs is returned when a caller-supplied final
// output has a zero amount. Final outputs carry only a scriptPublicKey, so
// their network is not checked.
var ErrInvalidTransactionOutputs = errors.New("invalid transaction output: zero amount")

// ErrInvalidPriorityFeeConfig is returned when an explicit fee is
// configured with anything other than exactly one final output (including
// none, as in sweep mode) - fee-from-single-output
// semantics only make sense when there is exactly one payment output.
var ErrInvalidPriorityFeeConfig = errors.New("invalid priority fee configuration: an explicit fee requires exactly one final output")

// ErrChangeAddressNetworkMismatch is returned when the configured change
// address's network prefix disagrees with the generator's network prefix.
var ErrChangeAddressNetworkMismatch = errors.New("change address network mismatch")
