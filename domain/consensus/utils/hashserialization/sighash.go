package hashserialization

import (
	"crypto/sha256"

	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/util/binaryserializer"
)

// SighashReusedValues caches the five component hashes that are identical
// across every input of a single transaction, so that signing N inputs
// costs O(N) hashing work instead of O(N^2). Zero value is "nothing cached
// yet"; each accessor below lazily fills its field on first use.
type SighashReusedValues struct {
	previousOutputsHash *externalapi.DomainHash
	sequencesHash       *externalapi.DomainHash
	sigOpCountsHash     *externalapi.DomainHash
	outputsHash         *externalapi.DomainHash
	payloadHash         *externalapi.DomainHash
}

// CalculateSchnorrSignatureHash calculates the hash that a Schnorr
// signature for input inputIndex of tx must sign. utxoEntries must be
// populated in tx.Inputs order - entries[i] is the UTXO that
// tx.Inputs[i].PreviousOutpoint spends.
func CalculateSchnorrSignatureHash(
	tx *externalapi.DomainTransaction, inputIndex int, hashType externalapi.SigHashType,
	utxoEntries []*externalapi.UTXOEntry, reusedValues *SighashReusedValues,
) (*externalapi.DomainHash, error) {

	if err := externalapi.CheckSigHashType(hashType); err != nil {
		return nil, err
	}

	hashWriter := newBlake2bHasher(signingHashKey)
	if err := binaryserializer.PutUint16(hashWriter, littleEndian, tx.Version); err != nil {
		return nil, err
	}

	previousOutputsHash, err := previousOutputsHash(tx, hashType, reusedValues)
	if err != nil {
		return nil, err
	}
	if _, err := hashWriter.Write(previousOutputsHash[:]); err != nil {
		return nil, err
	}

	sequencesHash, err := sequencesHash(tx, hashType, reusedValues)
	if err != nil {
		return nil, err
	}
	if _, err := hashWriter.Write(sequencesHash[:]); err != nil {
		return nil, err
	}

	sigOpCountsHash, err := sigOpCountsHash(tx, hashType, reusedValues)
	if err != nil {
		return nil, err
	}
	if _, err := hashWriter.Write(sigOpCountsHash[:]); err != nil {
		return nil, err
	}

	input := tx.Inputs[inputIndex]
	entry := utxoEntries[inputIndex]

	if err := writeOutpoint(hashWriter, &input.PreviousOutpoint); err != nil {
		return nil, err
	}
	if err := binaryserializer.PutUint16(hashWriter, littleEndian, entry.ScriptPublicKey.Version); err != nil {
		return nil, err
	}
	if err := writeVarBytes(hashWriter, entry.ScriptPublicKey.Script); err != nil {
		return nil, err
	}
	if err := binaryserializer.PutUint64(hashWriter, littleEndian, entry.Amount); err != nil {
		return nil, err
	}
	if err := binaryserializer.PutUint64(hashWriter, littleEndian, input.Sequence); err != nil {
		return nil, err
	}
	if _, err := hashWriter.Write([]byte{input.SigOpCount}); err != nil {
		return nil, err
	}

	outputsHash, err := outputsHash(tx, hashType, inputIndex, reusedValues)
	if err != nil {
		return nil, err
	}
	if _, err := hashWriter.Write(outputsHash[:]); err != nil {
		return nil, err
	}

	if err := binaryserializer.PutUint64(hashWriter, littleEndian, tx.LockTime); err != nil {
		return nil, err
	}
	if _, err := hashWriter.Write(tx.SubnetworkID[:]); err != nil {
		return nil, err
	}
	if err := binaryserializer.PutUint64(hashWriter, littleEndian, tx.Gas); err != nil {
		return nil, err
	}

	payloadHash, err := payloadHash(tx, reusedValues)
	if err != nil {
		return nil, err
	}
	if _, err := hashWriter.Write(payloadHash[:]); err != nil {
		return nil, err
	}

	if _, err := hashWriter.Write([]byte{byte(hashType)}); err != nil {
		return nil, err
	}

	var result externalapi.DomainHash
	copy(result[:], hashWriter.Sum(nil))
	return &result, nil
}

// CalculateECDSASignatureHash calculates the hash an ECDSA signature for
// this input must sign: the SHA-256 digest of the constant domain
// separator "TransactionSigningHashECDSA" concatenated with the Schnorr
// signing hash's bytes.
func CalculateECDSASignatureHash(
	tx *externalapi.DomainTransaction, inputIndex int, hashType externalapi.SigHashType,
	utxoEntries []*externalapi.UTXOEntry, reusedValues *SighashReusedValues,
) (*externalapi.DomainHash, error) {

	schnorrHash, err := CalculateSchnorrSignatureHash(tx, inputIndex, hashType, utxoEntries, reusedValues)
	if err != nil {
		return nil, err
	}

	sha := sha256.New()
	sha.Write([]byte("TransactionSigningHashECDSA"))
	sha.Write(schnorrHash[:])

	var result externalapi.DomainHash
	copy(result[:], sha.Sum(nil))
	return &result, nil
}

func previousOutputsHash(
	tx *externalapi.DomainTransaction, hashType externalapi.SigHashType, reusedValues *SighashReusedValues,
) (*externalapi.DomainHash, error) {
	if hashType.IsSigHashAnyOneCanPay() {
		return &externalapi.ZeroHash, nil
	}
	if reusedValues.previousOutputsHash != nil {
		return reusedValues.previousOutputsHash, nil
	}

	hashWriter := newBlake2bHasher(signingHashKey)
	for _, input := range tx.Inputs {
		if err := writeOutpoint(hashWriter, &input.PreviousOutpoint); err != nil {
			return nil, err
		}
	}

	var result externalapi.DomainHash
	copy(result[:], hashWriter.Sum(nil))
	reusedValues.previousOutputsHash = &result
	return &result, nil
}

func sequencesHash(
	tx *externalapi.DomainTransaction, hashType externalapi.SigHashType, reusedValues *SighashReusedValues,
) (*externalapi.DomainHash, error) {
	if hashType.IsSigHashSingle() || hashType.IsSigHashAnyOneCanPay() || hashType.IsSigHashNone() {
		return &externalapi.ZeroHash, nil
	}
	if reusedValues.sequencesHash != nil {
		return reusedValues.sequencesHash, nil
	}

	hashWriter := newBlake2bHasher(signingHashKey)
	for _, input := range tx.Inputs {
		if err := binaryserializer.PutUint64(hashWriter, littleEndian, input.Sequence); err != nil {
			return nil, err
		}
	}

	var result externalapi.DomainHash
	copy(result[:], hashWriter.Sum(nil))
	reusedValues.sequencesHash = &result
	return &result, nil
}

func sigOpCountsHash(
	tx *externalapi.DomainTransaction, hashType externalapi.SigHashType, reusedValues *SighashReusedValues,
) (*externalapi.DomainHash, error) {
	if hashType.IsSigHashAnyOneCanPay() {
		return &externalapi.ZeroHash, nil
	}
	if reusedValues.sigOpCountsHash != nil {
		return reusedValues.sigOpCountsHash, nil
	}

	hashWriter := newBlake2bHasher(signingHashKey)
	for _, input := range tx.Inputs {
		if _, err := hashWriter.Write([]byte{input.SigOpCount}); err != nil {
			return nil, err
		}
	}

	var result externalapi.DomainHash
	copy(result[:], hashWriter.Sum(nil))
	reusedValues.sigOpCountsHash = &result
	return &result, nil
}

func outputsHash(
	tx *externalapi.DomainTransaction, hashType externalapi.SigHashType, inputIndex int, reusedValues *SighashReusedValues,
) (*externalapi.DomainHash, error) {
	if hashType.IsSigHashNone() {
		return &externalapi.ZeroHash, nil
	}

	if hashType.IsSigHashSingle() {
		// SigHashSingle commits only to the output at the same index as
		// this input, and is never cached across inputs.
		if inputIndex >= len(tx.Outputs) {
			return &externalapi.ZeroHash, nil
		}

		hashWriter := newBlake2bHasher(signingHashKey)
		if err := writeTransactionOutput(hashWriter, tx.Outputs[inputIndex]); err != nil {
			return nil, err
		}

		var result externalapi.DomainHash
		copy(result[:], hashWriter.Sum(nil))
		return &result, nil
	}

	if reusedValues.outputsHash != nil {
		return reusedValues.outputsHash, nil
	}

	hashWriter := newBlake2bHasher(signingHashKey)
	for _, output := range tx.Outputs {
		if err := writeTransactionOutput(hashWriter, output); err != nil {
			return nil, err
		}
	}

	var result externalapi.DomainHash
	copy(result[:], hashWriter.Sum(nil))
	reusedValues.outputsHash = &result
	return &result, nil
}

// payloadHash hashes the transaction's payload, reporting the zero hash for
// a native-subnetwork transaction with an empty payload.
func payloadHash(tx *externalapi.DomainTransaction, reusedValues *SighashReusedValues) (*externalapi.DomainHash, error) {
	if tx.SubnetworkID == externalapi.SubnetworkIDNative && len(tx.Payload) == 0 {
		return &externalapi.ZeroHash, nil
	}
	if reusedValues.payloadHash != nil {
		return reusedValues.payloadHash, nil
	}

	hashWriter := newBlake2bHasher(signingHashKey)
	if err := writeVarBytes(hashWriter, tx.Payload); err != nil {
		return nil, err
	}

	var result externalapi.DomainHash
	copy(result[:], hashWriter.Sum(nil))
	reusedValues.payloadHash = &result
	return &result, nil
}

