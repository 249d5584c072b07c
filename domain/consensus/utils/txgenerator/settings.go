package txgenerator

import (
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txmass"
	"github.com/kaspanet/kaspa-tx-sdk/util"
)

// GeneratorSettings is the caller-supplied, immutable-after-construction
// configuration a Generator is built from: where its UTXOs come from, what
// it is paying out (or sweeping, if FinalOutputs is empty), who receives
// change, and under what mass-pricing parameters.
type GeneratorSettings struct {
	NetworkPrefix util.Bech32Prefix

	ChangeAddress         *util.Address
	changeScriptPublicKey *externalapi.ScriptPublicKey

	// FinalOutputs is the caller's requested payment outputs. Empty means
	// sweep mode: the generator consolidates every available UTXO into a
	// single change-addressed transaction.
	FinalOutputs []*externalapi.DomainTransactionOutput

	// Fees is the caller's fee policy. FeeSourceNone lets the generator
	// derive the fee from mass; FeeSourceSender/FeeSourceReceiver pin an
	// explicit amount, which is only valid with exactly one FinalOutput.
	Fees externalapi.Fees

	Payload []byte

	// PriorityUTXOs are consumed before SourceUTXOs, and SourceUTXOs is
	// filtered against them by (txID, index) so neither source can hand
	// back the same UTXO twice.
	PriorityUTXOs []*externalapi.UTXOEntryReference

	SourceUTXOs UTXOIterator

	MassCalculator *txmass.Calculator

	// AdditionalCompoundTransactionMass is reserved headroom subtracted
	// from the per-transaction mass ceiling, e.g. for a payload the
	// caller plans to attach afterward.
	AdditionalCompoundTransactionMass uint64
}

// NewGeneratorSettings validates and constructs a GeneratorSettings.
func NewGeneratorSettings(
	networkPrefix util.Bech32Prefix,
	changeAddress *util.Address,
	finalOutputs []*externalapi.DomainTransactionOutput,
	fees externalapi.Fees,
	payload []byte,
	priorityUTXOs []*externalapi.UTXOEntryReference,
	sourceUTXOs UTXOIterator,
	massCalculator *txmass.Calculator,
) (*GeneratorSettings, error) {

	if changeAddress.Prefix != networkPrefix {
		return nil, ErrChangeAddressNetworkMismatch
	}
	changeScriptPublicKey, err := util.ScriptPublicKeyForAddress(changeAddress)
	if err != nil {
		return nil, err
	}

	for _, output := range finalOutputs {
		if output.Value == 0 {
			return nil, ErrInvalidTransactionOutputs
		}
	}

	if fees.Source != externalapi.FeeSourceNone && len(finalOutputs) != 1 {
		return nil, ErrInvalidPriorityFeeConfig
	}

	return &GeneratorSettings{
		NetworkPrefix:         networkPrefix,
		ChangeAddress:         changeAddress,
		changeScriptPublicKey: changeScriptPublicKey,
		FinalOutputs:          finalOutputs,
		Fees:                  fees,
		Payload:               payload,
		PriorityUTXOs:         priorityUTXOs,
		SourceUTXOs:           sourceUTXOs,
		MassCalculator:        massCalculator,
	}, nil
}

// isSweep reports whether the generator runs in sweep mode (no payment
// outputs requested - every UTXO is consolidated to the change address).
func (s *GeneratorSettings) isSweep() bool {
	return len(s.FinalOutputs) == 0
}
