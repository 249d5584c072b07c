// Package hashserialization implements the canonical Kaspa transaction
// serialisation and the Blake2b/SHA-256 pipelines built on top of it:
// TransactionID, TransactionHash, and the Schnorr/ECDSA signing hashes.
package hashserialization

import (
	"bytes"
	"io"

	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/util/binaryserializer"
	"github.com/pkg/errors"
)

// txEncoding is a bitmask controlling which transaction fields
// serializeTransaction writes in full versus zeroes/omits.
type txEncoding uint8

const (
	txEncodingFull txEncoding = 0

	// txEncodingExcludeSignatureScript causes each input's
	// SignatureScript to be written as zero-length, and its SigOpCount
	// byte to be omitted entirely. Used when computing a TransactionID
	// for a non-coinbase transaction, since the ID must not change as
	// inputs get signed.
	txEncodingExcludeSignatureScript txEncoding = 1 << iota

	// txEncodingIncludeMass causes the transaction's Mass field to be
	// appended after the payload. Used by TransactionHash when the
	// caller wants a hash that commits to the computed mass.
	txEncodingIncludeMass
)

// TransactionID computes the transaction's ID: the Blake2b-256 hash, keyed
// with "TransactionID", of the canonical serialisation with signature
// scripts excluded - unless tx is a coinbase transaction, in which case
// signature scripts are included. Mass is always excluded.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	encoding := txEncodingFull
	if !tx.IsCoinbase() {
		encoding = txEncodingExcludeSignatureScript
	}

	writer := newBlake2bHasher(transactionIDKey)
	err := serializeTransaction(writer, tx, encoding)
	if err != nil {
		// serializeTransaction only fails on write errors, and a
		// hash.Hash never returns one.
		panic(errors.Wrap(err, "TransactionID failed; this should never happen for structurally-valid transactions"))
	}

	var id externalapi.DomainTransactionID
	copy(id[:], writer.Sum(nil))
	return &id
}

// TransactionHash computes the transaction's non-ID hash: the Blake2b-256
// hash, keyed with "TransactionHash", of the full canonical serialisation
// (signature scripts always included), with Mass included iff includeMass
// is set.
func TransactionHash(tx *externalapi.DomainTransaction, includeMass bool) *externalapi.DomainHash {
	encoding := txEncodingFull
	if includeMass {
		encoding = txEncodingIncludeMass
	}

	writer := newBlake2bHasher(transactionHashKey)
	err := serializeTransaction(writer, tx, encoding)
	if err != nil {
		panic(errors.Wrap(err, "TransactionHash failed; this should never happen for structurally-valid transactions"))
	}

	var h externalapi.DomainHash
	copy(h[:], writer.Sum(nil))
	return &h
}

// Serialize returns tx's full canonical wire serialisation (signature
// scripts included, mass excluded) - the byte layout the mass calculator
// measures serializedSize against.
func Serialize(tx *externalapi.DomainTransaction) ([]byte, error) {
	var buf bytes.Buffer
	if err := serializeTransaction(&buf, tx, txEncodingFull); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func serializeTransaction(w io.Writer, tx *externalapi.DomainTransaction, encoding txEncoding) error {
	if err := binaryserializer.PutUint16(w, littleEndian, tx.Version); err != nil {
		return err
	}

	if err := writeElementCount(w, uint64(len(tx.Inputs))); err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		if err := writeTransactionInput(w, input, encoding); err != nil {
			return err
		}
	}

	if err := writeElementCount(w, uint64(len(tx.Outputs))); err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		if err := writeTransactionOutput(w, output); err != nil {
			return err
		}
	}

	if err := binaryserializer.PutUint64(w, littleEndian, tx.LockTime); err != nil {
		return err
	}

	if _, err := w.Write(tx.SubnetworkID[:]); err != nil {
		return err
	}

	if err := binaryserializer.PutUint64(w, littleEndian, tx.Gas); err != nil {
		return err
	}

	if err := writeVarBytes(w, tx.Payload); err != nil {
		return err
	}

	if encoding&txEncodingIncludeMass != 0 {
		if err := binaryserializer.PutUint64(w, littleEndian, tx.Mass); err != nil {
			return err
		}
	}

	return nil
}

func writeTransactionInput(w io.Writer, input *externalapi.DomainTransactionInput, encoding txEncoding) error {
	if err := writeOutpoint(w, &input.PreviousOutpoint); err != nil {
		return err
	}

	excludeSig := encoding&txEncodingExcludeSignatureScript != 0
	if excludeSig {
		if err := writeVarBytes(w, nil); err != nil {
			return err
		}
	} else {
		if err := writeVarBytes(w, input.SignatureScript); err != nil {
			return err
		}
		if _, err := w.Write([]byte{input.SigOpCount}); err != nil {
			return err
		}
	}

	return binaryserializer.PutUint64(w, littleEndian, input.Sequence)
}

func writeOutpoint(w io.Writer, outpoint *externalapi.DomainOutpoint) error {
	if _, err := w.Write(outpoint.TransactionID[:]); err != nil {
		return err
	}
	return binaryserializer.PutUint32(w, littleEndian, outpoint.Index)
}

func writeTransactionOutput(w io.Writer, output *externalapi.DomainTransactionOutput) error {
	if err := binaryserializer.PutUint64(w, littleEndian, output.Value); err != nil {
		return err
	}
	if err := binaryserializer.PutUint16(w, littleEndian, output.ScriptPublicKey.Version); err != nil {
		return err
	}
	return writeVarBytes(w, output.ScriptPublicKey.Script)
}

func writeVarBytes(w io.Writer, data []byte) error {
	if err := writeElementCount(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func writeElementCount(w io.Writer, count uint64) error {
	return binaryserializer.PutUint64(w, littleEndian, count)
}
