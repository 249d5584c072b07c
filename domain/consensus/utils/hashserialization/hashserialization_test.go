package hashserialization

import (
	"testing"

	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
)

func buildTestTransaction() *externalapi.DomainTransaction {
	spk, _ := externalapi.NewScriptPublicKey(0, []byte{0xa9, 0x14})
	return &externalapi.DomainTransaction{
		Version: 1,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.DomainOutpoint{
				TransactionID: externalapi.DomainTransactionID{0x01},
				Index:         0,
			},
			SignatureScript: []byte{1, 2, 3},
			Sequence:        0,
			SigOpCount:      1,
		}},
		Outputs: []*externalapi.DomainTransactionOutput{
			{Value: 100_000_000, ScriptPublicKey: spk},
		},
		LockTime:     0,
		SubnetworkID: externalapi.SubnetworkIDNative,
		Gas:          0,
		Payload:      nil,
	}
}

// A non-coinbase transaction's ID is computed by serializing with signature
// scripts excluded. Recomputing the ID after mutating a signature script
// must therefore leave it unchanged (§8: "serialize(T, excludeSigs=true,
// includeMass=false) fed through Blake2b-256 keyed TransactionID equals
// T.id").
func TestTransactionIDExcludesSignatureScript(t *testing.T) {
	tx := buildTestTransaction()
	id1 := TransactionID(tx)

	tx.Inputs[0].SignatureScript = []byte{0xff, 0xff, 0xff, 0xff, 0xff}
	id2 := TransactionID(tx)

	if !id1.Equal(id2) {
		t.Fatalf("TransactionID changed after mutating signature script: %s != %s", id1, id2)
	}
}

func TestTransactionIDIncludesSignatureScriptForCoinbase(t *testing.T) {
	tx := buildTestTransaction()
	tx.SubnetworkID = externalapi.SubnetworkIDCoinbase
	id1 := TransactionID(tx)

	tx.Inputs[0].SignatureScript = []byte{0xff, 0xff, 0xff, 0xff, 0xff}
	id2 := TransactionID(tx)

	if id1.Equal(id2) {
		t.Fatal("coinbase TransactionID did not change after mutating signature script")
	}
}

func TestTransactionHashIncludesMassWhenRequested(t *testing.T) {
	tx := buildTestTransaction()
	withoutMass := TransactionHash(tx, false)

	tx.Mass = 1234
	withMassUnrequested := TransactionHash(tx, false)
	if !withoutMass.Equal(withMassUnrequested) {
		t.Fatal("TransactionHash(includeMass=false) changed after setting Mass")
	}

	withMass := TransactionHash(tx, true)
	if withoutMass.Equal(withMass) {
		t.Fatal("TransactionHash(includeMass=true) did not change when Mass was set")
	}
}

func TestTransactionIDAndHashDiffer(t *testing.T) {
	tx := buildTestTransaction()
	id := TransactionID(tx)
	hash := TransactionHash(tx, false)
	if id.AsHash().Equal(hash) {
		t.Fatal("TransactionID and TransactionHash collided despite different preimages and keys")
	}
}

// §8 scenario 3: native subnetwork, empty payload => payloadHash == ZeroHash.
func TestPayloadHashZeroForNativeEmptyPayload(t *testing.T) {
	tx := buildTestTransaction()
	reused := &SighashReusedValues{}
	hash, err := payloadHash(tx, reused)
	if err != nil {
		t.Fatal(err)
	}
	if !hash.Equal(&externalapi.ZeroHash) {
		t.Fatalf("payloadHash = %s, want ZeroHash", hash)
	}
}

func TestPayloadHashNonZeroWhenPayloadPresent(t *testing.T) {
	tx := buildTestTransaction()
	tx.Payload = []byte{0x01, 0x02}
	reused := &SighashReusedValues{}
	hash, err := payloadHash(tx, reused)
	if err != nil {
		t.Fatal(err)
	}
	if hash.Equal(&externalapi.ZeroHash) {
		t.Fatal("payloadHash was ZeroHash with a non-empty payload")
	}
}

func TestPayloadHashNonZeroForNonNativeEmptyPayload(t *testing.T) {
	tx := buildTestTransaction()
	tx.SubnetworkID = externalapi.SubnetworkIDRegistry
	reused := &SighashReusedValues{}
	hash, err := payloadHash(tx, reused)
	if err != nil {
		t.Fatal(err)
	}
	if hash.Equal(&externalapi.ZeroHash) {
		t.Fatal("payloadHash was ZeroHash for a non-native subnetwork with empty payload")
	}
}

func utxoEntriesFor(tx *externalapi.DomainTransaction) []*externalapi.UTXOEntry {
	entries := make([]*externalapi.UTXOEntry, len(tx.Inputs))
	spk, _ := externalapi.NewScriptPublicKey(0, []byte{0x76, 0xa9})
	for i := range tx.Inputs {
		entries[i] = externalapi.NewUTXOEntry(500_000_000, spk, false, 0)
	}
	return entries
}

// Schnorr sighash must be deterministic: recomputing it for identical inputs
// returns identical bytes (§8).
func TestSchnorrSignatureHashDeterministic(t *testing.T) {
	tx := buildTestTransaction()
	entries := utxoEntriesFor(tx)

	h1, err := CalculateSchnorrSignatureHash(tx, 0, externalapi.SigHashAll, entries, &SighashReusedValues{})
	if err != nil {
		t.Fatal(err)
	}
	h2, err := CalculateSchnorrSignatureHash(tx, 0, externalapi.SigHashAll, entries, &SighashReusedValues{})
	if err != nil {
		t.Fatal(err)
	}
	if !h1.Equal(h2) {
		t.Fatalf("CalculateSchnorrSignatureHash not deterministic: %s != %s", h1, h2)
	}
}

func TestSchnorrSignatureHashVariesWithHashType(t *testing.T) {
	tx := buildTestTransaction()
	tx.Outputs = append(tx.Outputs, tx.Outputs[0].Clone())
	entries := utxoEntriesFor(tx)

	all, err := CalculateSchnorrSignatureHash(tx, 0, externalapi.SigHashAll, entries, &SighashReusedValues{})
	if err != nil {
		t.Fatal(err)
	}
	single, err := CalculateSchnorrSignatureHash(tx, 0, externalapi.SigHashSingle, entries, &SighashReusedValues{})
	if err != nil {
		t.Fatal(err)
	}
	if all.Equal(single) {
		t.Fatal("SigHashAll and SigHashSingle produced the same sighash")
	}
}

func TestSchnorrSignatureHashRejectsInvalidType(t *testing.T) {
	tx := buildTestTransaction()
	entries := utxoEntriesFor(tx)

	_, err := CalculateSchnorrSignatureHash(tx, 0, externalapi.SigHashAnyOneCanPay, entries, &SighashReusedValues{})
	if err == nil {
		t.Fatal("expected an error for bare ANYONECANPAY sighash type")
	}
}

func TestECDSASignatureHashDiffersFromSchnorr(t *testing.T) {
	tx := buildTestTransaction()
	entries := utxoEntriesFor(tx)

	schnorr, err := CalculateSchnorrSignatureHash(tx, 0, externalapi.SigHashAll, entries, &SighashReusedValues{})
	if err != nil {
		t.Fatal(err)
	}
	ecdsa, err := CalculateECDSASignatureHash(tx, 0, externalapi.SigHashAll, entries, &SighashReusedValues{})
	if err != nil {
		t.Fatal(err)
	}
	if schnorr.Equal(ecdsa) {
		t.Fatal("Schnorr and ECDSA sighashes collided")
	}
}

func TestSignatureHashReusedValuesCacheHitsMatchMisses(t *testing.T) {
	tx := buildTestTransaction()
	tx.Inputs = append(tx.Inputs, tx.Inputs[0].Clone())
	tx.Inputs[1].PreviousOutpoint.Index = 1
	entries := utxoEntriesFor(tx)

	reused := &SighashReusedValues{}
	first, err := CalculateSchnorrSignatureHash(tx, 0, externalapi.SigHashAll, entries, reused)
	if err != nil {
		t.Fatal(err)
	}
	// Second call reuses the cached component hashes; compare against a
	// completely fresh reusedValues to make sure caching didn't change the
	// result.
	second, err := CalculateSchnorrSignatureHash(tx, 1, externalapi.SigHashAll, entries, reused)
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := CalculateSchnorrSignatureHash(tx, 1, externalapi.SigHashAll, entries, &SighashReusedValues{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Equal(fresh) {
		t.Fatal("cached reused values produced a different sighash than a fresh computation")
	}
	if first.Equal(second) {
		t.Fatal("two distinct inputs produced the same sighash")
	}
}
