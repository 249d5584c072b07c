// Package txmass implements Kaspa's compute-mass and KIP-0009 storage-mass
// arithmetic: the per-network parameters a transaction's fee is priced
// against, and the harmonic/arithmetic mean combinator that makes storage
// mass sensitive to how a transaction's value is split across its outputs.
package txmass

import "github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"

// Params holds the per-network mass-pricing parameters a Calculator is
// configured with. They mirror the teacher's transactionvalidator
// constructor parameters, extended with the storage-mass parameter KIP-0009
// introduces.
type Params struct {
	MassPerTxByte           uint64
	MassPerScriptPubKeyByte uint64
	MassPerSigOp            uint64
	StorageMassParameter    uint64
}

// MainnetParams returns the mass-pricing parameters Kaspa mainnet uses.
func MainnetParams() Params {
	return Params{
		MassPerTxByte:           1,
		MassPerScriptPubKeyByte: 10,
		MassPerSigOp:            1000,
		StorageMassParameter:    10_000 * externalapi.SompiPerKaspa,
	}
}
