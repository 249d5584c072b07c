package txscript

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/hashserialization"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

func blake2bSum256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// PayToPubKeyScript returns the canonical Kaspa P2PK locking script for the
// given 32-byte x-only Schnorr public key.
func PayToPubKeyScript(schnorrPubKey []byte) ([]byte, error) {
	if len(schnorrPubKey) != schnorrPublicKeySize {
		return nil, errors.Errorf("schnorr public key must be %d bytes, got %d",
			schnorrPublicKeySize, len(schnorrPubKey))
	}
	return payToPubKeyScript(schnorrPubKey)
}

// PayToScriptHashScript returns the pay-to-script-hash locking script
// wrapping redeemScript (OP_BLAKE2B <blake2b(redeemScript)> OP_EQUAL).
func PayToScriptHashScript(redeemScript []byte) ([]byte, error) {
	hash := blake2bSum256(redeemScript)
	return payToScriptHashScript(hash[:])
}

// PayToScriptHashScriptFromHash returns the pay-to-script-hash locking
// script for an already-computed 32-byte Blake2b script hash, e.g. one
// decoded from a ScriptHash address payload.
func PayToScriptHashScriptFromHash(scriptHash []byte) ([]byte, error) {
	if len(scriptHash) != 32 {
		return nil, errors.Errorf("script hash must be 32 bytes, got %d", len(scriptHash))
	}
	return payToScriptHashScript(scriptHash)
}

// PayToPubKeyScriptECDSA returns the "<pubkey> OP_CHECKSIGECDSA" locking
// script for the given 33-byte compressed ECDSA public key.
func PayToPubKeyScriptECDSA(ecdsaPubKey []byte) ([]byte, error) {
	if len(ecdsaPubKey) != ecdsaPublicKeySize {
		return nil, errors.Errorf("ecdsa public key must be %d bytes, got %d",
			ecdsaPublicKeySize, len(ecdsaPubKey))
	}
	return NewScriptBuilder().AddData(ecdsaPubKey).AddOp(OpCheckSigECDSA).Script()
}

// RawTxInSignatureSchnorr produces a raw Schnorr signature, with the given
// SigHashType byte appended, for input inputIndex of tx. reusedValues may be
// shared across multiple inputs of the same transaction, amortizing the
// component hashes they have in common.
func RawTxInSignatureSchnorr(
	tx *externalapi.DomainTransaction, inputIndex int, hashType externalapi.SigHashType,
	utxoEntries []*externalapi.UTXOEntry, reusedValues *hashserialization.SighashReusedValues,
	privKey *secp256k1.PrivateKey,
) ([]byte, error) {

	if err := externalapi.CheckSigHashType(hashType); err != nil {
		return nil, err
	}
	sigHash, err := hashserialization.CalculateSchnorrSignatureHash(tx, inputIndex, hashType, utxoEntries, reusedValues)
	if err != nil {
		return nil, err
	}
	secpHash := secp256k1.Hash(*sigHash)
	signature, err := privKey.SchnorrSign(&secpHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed signing transaction input")
	}
	serialized := signature.Serialize()
	return append(serialized[:], byte(hashType)), nil
}

// RawTxInSignatureECDSA is the OP_CHECKSIGECDSA counterpart of
// RawTxInSignatureSchnorr.
func RawTxInSignatureECDSA(
	tx *externalapi.DomainTransaction, inputIndex int, hashType externalapi.SigHashType,
	utxoEntries []*externalapi.UTXOEntry, reusedValues *hashserialization.SighashReusedValues,
	privKey *secp256k1.PrivateKey,
) ([]byte, error) {

	if err := externalapi.CheckSigHashType(hashType); err != nil {
		return nil, err
	}
	sigHash, err := hashserialization.CalculateECDSASignatureHash(tx, inputIndex, hashType, utxoEntries, reusedValues)
	if err != nil {
		return nil, err
	}
	secpHash := secp256k1.Hash(*sigHash)
	signature, err := privKey.ECDSASign(&secpHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed signing transaction input")
	}
	serialized := signature.Serialize()
	return append(serialized[:], byte(hashType)), nil
}

// SignTxInputP2PK signs input inputIndex of tx for a plain "<pubkey>
// OP_CHECKSIG" output and writes the resulting signature script directly
// into tx.Inputs[inputIndex].SignatureScript.
func SignTxInputP2PK(
	tx *externalapi.DomainTransaction, inputIndex int, hashType externalapi.SigHashType,
	utxoEntries []*externalapi.UTXOEntry, reusedValues *hashserialization.SighashReusedValues,
	privKey *secp256k1.PrivateKey,
) error {

	sig, err := RawTxInSignatureSchnorr(tx, inputIndex, hashType, utxoEntries, reusedValues, privKey)
	if err != nil {
		return err
	}
	signatureScript, err := NewScriptBuilder().AddData(sig).Script()
	if err != nil {
		return err
	}
	tx.Inputs[inputIndex].SignatureScript = signatureScript
	return nil
}

// SignTxInputP2SH signs input inputIndex of tx for a pay-to-script-hash
// output, given the already-satisfied pushes that belong before the redeem
// script on the signature script's stack (e.g. a single Schnorr signature
// for a 1-of-1 redeem script). It appends the redeem script itself as the
// final push, per the P2SH convention the engine expects.
func SignTxInputP2SH(
	tx *externalapi.DomainTransaction, inputIndex int, redeemScript []byte, pushes [][]byte,
) error {
	builder := NewScriptBuilder()
	for _, push := range pushes {
		builder.AddData(push)
	}
	builder.AddData(redeemScript)
	signatureScript, err := builder.Script()
	if err != nil {
		return err
	}
	tx.Inputs[inputIndex].SignatureScript = signatureScript
	return nil
}
