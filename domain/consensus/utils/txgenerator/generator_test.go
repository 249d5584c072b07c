package txgenerator

import (
	"testing"

	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txmass"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txscript"
	"github.com/kaspanet/kaspa-tx-sdk/util"
)

func testChangeAddress(t *testing.T) *util.Address {
	t.Helper()
	addr, err := util.NewAddress(util.Bech32PrefixKaspa, util.AddressVersionPubKey, make([]byte, 32))
	if err != nil {
		t.Fatalf("NewAddress: %s", err)
	}
	return addr
}

func testPaymentScriptPublicKey(t *testing.T) *externalapi.ScriptPublicKey {
	t.Helper()
	pubKey := make([]byte, 32)
	pubKey[0] = 0x07
	script, err := txscript.PayToPubKeyScript(pubKey)
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %s", err)
	}
	spk, err := txscript.NewScriptPublicKeyFromScript(script)
	if err != nil {
		t.Fatalf("NewScriptPublicKeyFromScript: %s", err)
	}
	return spk
}

func sourceUTXOs(n int, amount uint64) []*externalapi.UTXOEntryReference {
	spk, err := txscript.PayToPubKeyScript(make([]byte, 32))
	if err != nil {
		panic(err)
	}
	scriptPublicKey, err := txscript.NewScriptPublicKeyFromScript(spk)
	if err != nil {
		panic(err)
	}

	refs := make([]*externalapi.UTXOEntryReference, n)
	for i := 0; i < n; i++ {
		var txID externalapi.DomainTransactionID
		txID[0] = byte(i)
		txID[1] = byte(i >> 8)
		entry := externalapi.NewUTXOEntry(amount, scriptPublicKey, false, 1)
		outpoint := externalapi.NewDomainOutpoint(&txID, 0)
		refs[i] = externalapi.NewUTXOEntryReference(nil, entry, outpoint)
	}
	return refs
}

func TestGeneratorBatchSplitsLargeUTXOSetAcrossRelayTransactions(t *testing.T) {
	changeAddress := testChangeAddress(t)
	paymentSPK := testPaymentScriptPublicKey(t)

	// A higher MassPerSigOp than mainnet's exercises the batch-split path
	// with a modest UTXO count: at mainnet's real weighting, a few dozen
	// single-sigop inputs don't carry enough mass to ever threaten the
	// ceiling, so forcing the split within a small, readable test fixture
	// means pricing sigops heavier than MainnetParams does.
	massCalc := txmass.New(txmass.Params{
		MassPerTxByte:           1,
		MassPerScriptPubKeyByte: 10,
		MassPerSigOp:            2000,
		StorageMassParameter:    txmass.MainnetParams().StorageMassParameter,
	})

	const utxoCount = 60
	const utxoAmount = 1 * externalapi.SompiPerKaspa
	const paymentAmount = 50 * externalapi.SompiPerKaspa

	settings, err := NewGeneratorSettings(
		util.Bech32PrefixKaspa,
		changeAddress,
		[]*externalapi.DomainTransactionOutput{{Value: paymentAmount, ScriptPublicKey: paymentSPK}},
		externalapi.Fees{Source: externalapi.FeeSourceSender, Amount: 1000},
		nil,
		nil,
		NewSliceUTXOIterator(sourceUTXOs(utxoCount, utxoAmount)),
		massCalc,
	)
	if err != nil {
		t.Fatalf("NewGeneratorSettings: %s", err)
	}

	generator := New(settings)

	var relays []*externalapi.SignableTransaction
	var final *externalapi.SignableTransaction

	for i := 0; i < utxoCount+5; i++ {
		stx, err := generator.NextTransaction()
		if err != nil {
			t.Fatalf("NextTransaction: %s", err)
		}
		if stx.Transaction != nil && stx.Transaction.Mass > externalapi.MaximumStandardTransactionMass {
			t.Fatalf("transaction %d exceeds mass ceiling: %d", i, stx.Transaction.Mass)
		}
		switch stx.Kind {
		case externalapi.DataKindNode, externalapi.DataKindEdge:
			relays = append(relays, stx)
		case externalapi.DataKindFinal:
			final = stx
		case externalapi.DataKindNoOp:
			if final == nil {
				t.Fatalf("generator emitted NoOp before a Final transaction")
			}
		}
		if final != nil {
			break
		}
	}

	if len(relays) == 0 {
		t.Fatalf("expected at least one relay transaction before the final payment, got none")
	}
	if final == nil {
		t.Fatalf("generator never emitted a Final transaction")
	}

	lastRelay := relays[len(relays)-1]
	lastRelayID := lastRelay.Transaction.ID
	foundRelayInput := false
	for _, input := range final.Transaction.Inputs {
		if input.PreviousOutpoint.TransactionID.Equal(lastRelayID) {
			foundRelayInput = true
		}
	}
	if !foundRelayInput {
		t.Fatalf("final transaction does not spend an output of the last relay transaction")
	}
}

func TestGeneratorInsufficientFundsWhenUTXOsDoNotCoverPayment(t *testing.T) {
	changeAddress := testChangeAddress(t)
	paymentSPK := testPaymentScriptPublicKey(t)
	massCalc := txmass.New(txmass.MainnetParams())

	settings, err := NewGeneratorSettings(
		util.Bech32PrefixKaspa,
		changeAddress,
		[]*externalapi.DomainTransactionOutput{{Value: 50 * externalapi.SompiPerKaspa, ScriptPublicKey: paymentSPK}},
		externalapi.Fees{},
		nil,
		nil,
		NewSliceUTXOIterator(sourceUTXOs(2, 1*externalapi.SompiPerKaspa)),
		massCalc,
	)
	if err != nil {
		t.Fatalf("NewGeneratorSettings: %s", err)
	}

	generator := New(settings)
	_, err = generator.NextTransaction()
	if err == nil {
		t.Fatalf("expected an InsufficientFundsError, got nil")
	}
	if _, ok := err.(*InsufficientFundsError); !ok {
		t.Fatalf("expected *InsufficientFundsError, got %T: %s", err, err)
	}
}

func TestGeneratorSweepModeAbsorbsDustChangeIntoNoOp(t *testing.T) {
	changeAddress := testChangeAddress(t)
	massCalc := txmass.New(txmass.MainnetParams())

	// 1400 Sompi per UTXO: two of them cover the ~2712 Sompi relay fee a
	// 2-input consolidation carries (dominated by the 2x1000 Sompi sigop
	// cost) with only ~88 Sompi of change left over, below the ~546
	// Sompi dust threshold for a 34-byte P2PK scriptPublicKey.
	const dustUTXOAmount = 1400

	settings, err := NewGeneratorSettings(
		util.Bech32PrefixKaspa,
		changeAddress,
		nil,
		externalapi.Fees{},
		nil,
		nil,
		NewSliceUTXOIterator(sourceUTXOs(2, dustUTXOAmount)),
		massCalc,
	)
	if err != nil {
		t.Fatalf("NewGeneratorSettings: %s", err)
	}

	generator := New(settings)
	stx, err := generator.NextTransaction()
	if err != nil {
		t.Fatalf("NextTransaction: %s", err)
	}
	if stx.Kind != externalapi.DataKindNoOp {
		t.Fatalf("expected a dust sweep to collapse to NoOp, got kind %s", stx.Kind)
	}
}

func TestGeneratorSweepModeConsolidatesAvailableUTXOs(t *testing.T) {
	changeAddress := testChangeAddress(t)
	massCalc := txmass.New(txmass.MainnetParams())

	settings, err := NewGeneratorSettings(
		util.Bech32PrefixKaspa,
		changeAddress,
		nil,
		externalapi.Fees{},
		nil,
		nil,
		NewSliceUTXOIterator(sourceUTXOs(5, 1*externalapi.SompiPerKaspa)),
		massCalc,
	)
	if err != nil {
		t.Fatalf("NewGeneratorSettings: %s", err)
	}

	generator := New(settings)
	stx, err := generator.NextTransaction()
	if err != nil {
		t.Fatalf("NextTransaction: %s", err)
	}
	if stx.Kind != externalapi.DataKindFinal {
		t.Fatalf("expected a sweep of 5 UTXOs to finish as Final, got kind %s", stx.Kind)
	}
	if len(stx.Transaction.Inputs) != 5 {
		t.Fatalf("expected all 5 UTXOs to be consolidated, got %d inputs", len(stx.Transaction.Inputs))
	}
}
