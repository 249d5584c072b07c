package txscript

import (
	"crypto/sha256"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/hashserialization"
	"golang.org/x/crypto/blake2b"
)

func opcodeSHA256(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := sha256.Sum256(b)
	vm.dstack.PushByteArray(h[:])
	return nil
}

func opcodeBlake2b(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := blake2b.Sum256(b)
	vm.dstack.PushByteArray(h[:])
	return nil
}

// schnorrPublicKeySize is the length, in bytes, of a Kaspa Schnorr public
// key as pushed onto a script stack (x-only, no sign byte).
const schnorrPublicKeySize = 32

// ecdsaPublicKeySize is the length of a compressed secp256k1 ECDSA public
// key as pushed onto a script stack.
const ecdsaPublicKeySize = 33

// schnorrSignatureSize is the length of a raw Schnorr signature, before the
// one-byte sighash type suffix script signatures carry.
const schnorrSignatureSize = 64

// ecdsaSignatureSize is the length of a raw (r, s) ECDSA signature, before
// the one-byte sighash type suffix.
const ecdsaSignatureSize = 64

// splitSignature splits a script-pushed signature into its raw signature
// bytes and trailing SigHashType byte. It requires exactly one extra byte
// past the raw signature length - the sighash type - same as the source.
func splitSignature(rawSig []byte, sigLen int) (sig []byte, hashType externalapi.SigHashType, err error) {
	if len(rawSig) != sigLen+1 {
		return nil, 0, scriptError(ErrInvalidSigLength, "signature has wrong length")
	}
	return rawSig[:sigLen], externalapi.SigHashType(rawSig[sigLen]), nil
}

func schnorrSigHash(vm *Engine, hashType externalapi.SigHashType) (*externalapi.DomainHash, error) {
	if !vm.hasTxSource() {
		return nil, scriptError(ErrInvalidState, "signature checks require a transaction source")
	}
	if err := externalapi.CheckSigHashType(hashType); err != nil {
		return nil, scriptError(ErrInvalidSigHashType, err.Error())
	}
	return hashserialization.CalculateSchnorrSignatureHash(
		vm.tx, vm.txInputIndex, hashType, vm.utxoEntries, vm.reusedValues)
}

func ecdsaSigHash(vm *Engine, hashType externalapi.SigHashType) (*externalapi.DomainHash, error) {
	if !vm.hasTxSource() {
		return nil, scriptError(ErrInvalidState, "signature checks require a transaction source")
	}
	if err := externalapi.CheckSigHashType(hashType); err != nil {
		return nil, scriptError(ErrInvalidSigHashType, err.Error())
	}
	return hashserialization.CalculateECDSASignatureHash(
		vm.tx, vm.txInputIndex, hashType, vm.utxoEntries, vm.reusedValues)
}

// verifySchnorr checks a raw Schnorr signature against a 32-byte x-only
// public key over msg, consulting and populating vm.sigCache.
func verifySchnorr(vm *Engine, rawSig, rawSig64 []byte, pubKeyBytes []byte, msg *externalapi.DomainHash) (bool, error) {
	if cached, ok := vm.sigCache.SchnorrVerified(rawSig, pubKeyBytes, msg); ok {
		return cached, nil
	}

	pubKey, err := secp256k1.DeserializeSchnorrPubKey(pubKeyBytes)
	if err != nil {
		return false, nil
	}
	sig, err := secp256k1.DeserializeSchnorrSignatureFromSlice(rawSig64)
	if err != nil {
		return false, nil
	}
	secpHash := secp256k1.Hash(*msg)
	valid := pubKey.Verify(&secpHash, sig)

	vm.sigCache.SetSchnorrVerified(rawSig, pubKeyBytes, msg, valid)
	return valid, nil
}

// verifyECDSA checks a raw ECDSA signature against a 33-byte compressed
// public key over msg, consulting and populating vm.sigCache.
func verifyECDSA(vm *Engine, rawSig, rawSig64 []byte, pubKeyBytes []byte, msg *externalapi.DomainHash) (bool, error) {
	if cached, ok := vm.sigCache.ECDSAVerified(rawSig, pubKeyBytes, msg); ok {
		return cached, nil
	}

	pubKey, err := secp256k1.DeserializeECDSAPubKey(pubKeyBytes)
	if err != nil {
		return false, nil
	}
	sig, err := secp256k1.DeserializeECDSASignatureFromSlice(rawSig64)
	if err != nil {
		return false, nil
	}
	secpHash := secp256k1.Hash(*msg)
	valid := pubKey.Verify(&secpHash, sig)

	vm.sigCache.SetECDSAVerified(rawSig, pubKeyBytes, msg, valid)
	return valid, nil
}

func opcodeCheckSig(op *parsedOpcode, vm *Engine) error {
	pubKeyBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	rawSig, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if len(rawSig) == 0 {
		vm.dstack.PushBool(false)
		return nil
	}
	if len(pubKeyBytes) != schnorrPublicKeySize {
		return scriptError(ErrPubKeyFormat, "schnorr public key must be 32 bytes")
	}

	sig, hashType, err := splitSignature(rawSig, schnorrSignatureSize)
	if err != nil {
		return err
	}
	msg, err := schnorrSigHash(vm, hashType)
	if err != nil {
		return err
	}
	valid, err := verifySchnorr(vm, rawSig, sig, pubKeyBytes, msg)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(valid)
	return nil
}

func opcodeCheckSigVerify(op *parsedOpcode, vm *Engine) error {
	if err := opcodeCheckSig(op, vm); err != nil {
		return err
	}
	return opcodeVerify(op, vm)
}

func opcodeCheckSigECDSA(op *parsedOpcode, vm *Engine) error {
	pubKeyBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	rawSig, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if len(rawSig) == 0 {
		vm.dstack.PushBool(false)
		return nil
	}
	if len(pubKeyBytes) != ecdsaPublicKeySize {
		return scriptError(ErrPubKeyFormat, "ecdsa public key must be 33 bytes compressed")
	}

	sig, hashType, err := splitSignature(rawSig, ecdsaSignatureSize)
	if err != nil {
		return err
	}
	msg, err := ecdsaSigHash(vm, hashType)
	if err != nil {
		return err
	}
	valid, err := verifyECDSA(vm, rawSig, sig, pubKeyBytes, msg)
	if err != nil {
		return err
	}
	vm.dstack.PushBool(valid)
	return nil
}

// opMultiSig implements the shared body of OP_CHECKMULTISIG[ECDSA] and their
// VERIFY variants: pubKeyCount pubkeys, then sigCount signatures, are popped
// (pubkeys closest to the top). Signatures are matched against pubkeys in
// order - advancing the pubkey cursor on every attempt, the signature
// cursor only on a match - so a pubkey may be skipped but never matched
// twice and a signature may never be checked against an earlier pubkey than
// the one before it matched. Every signature must be present; there is no
// Bitcoin-style leading dummy element to pop.
func opMultiSig(op *parsedOpcode, vm *Engine, ecdsa bool) error {
	pubKeyCount, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numPubKeys := int(pubKeyCount)
	if numPubKeys < 0 || numPubKeys > MaxPubKeysPerMultiSig {
		return scriptError(ErrInvalidPubKeyCount, "invalid number of pubkeys")
	}
	pubKeys := make([][]byte, numPubKeys)
	for i := numPubKeys - 1; i >= 0; i-- {
		pubKeys[i], err = vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	vm.numOps += numPubKeys
	if vm.numOps > MaxOpsPerScript {
		return scriptError(ErrTooManyOperations, "too many operations")
	}

	sigCount, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numSigs := int(sigCount)
	if numSigs < 0 || numSigs > numPubKeys {
		return scriptError(ErrInvalidSigCount, "invalid number of signatures")
	}
	rawSigs := make([][]byte, numSigs)
	for i := numSigs - 1; i >= 0; i-- {
		rawSigs[i], err = vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	sigLen, keyLen := schnorrSignatureSize, schnorrPublicKeySize
	if ecdsa {
		sigLen, keyLen = ecdsaSignatureSize, ecdsaPublicKeySize
	}

	pubKeyIdx := 0
	sigIdx := 0
	for sigIdx < numSigs {
		remainingSigs := numSigs - sigIdx
		remainingKeys := numPubKeys - pubKeyIdx
		if remainingSigs > remainingKeys {
			break
		}

		rawSig := rawSigs[sigIdx]
		if len(rawSig) == 0 {
			return scriptError(ErrInvalidSigLength, "multisig signature slot is empty")
		}
		pubKeyBytes := pubKeys[pubKeyIdx]
		if len(pubKeyBytes) != keyLen {
			return scriptError(ErrPubKeyFormat, "public key has wrong length for signature scheme")
		}

		sig, hashType, err := splitSignature(rawSig, sigLen)
		if err != nil {
			return err
		}

		var msg *externalapi.DomainHash
		var matched bool
		if ecdsa {
			msg, err = ecdsaSigHash(vm, hashType)
			if err != nil {
				return err
			}
			matched, err = verifyECDSA(vm, rawSig, sig, pubKeyBytes, msg)
		} else {
			msg, err = schnorrSigHash(vm, hashType)
			if err != nil {
				return err
			}
			matched, err = verifySchnorr(vm, rawSig, sig, pubKeyBytes, msg)
		}
		if err != nil {
			return err
		}

		pubKeyIdx++
		if matched {
			sigIdx++
		}
	}

	vm.dstack.PushBool(sigIdx == numSigs)
	return nil
}

func opcodeCheckMultiSig(op *parsedOpcode, vm *Engine) error {
	return opMultiSig(op, vm, false)
}

func opcodeCheckMultiSigVerify(op *parsedOpcode, vm *Engine) error {
	if err := opcodeCheckMultiSig(op, vm); err != nil {
		return err
	}
	return opcodeVerify(op, vm)
}

func opcodeCheckMultiSigECDSA(op *parsedOpcode, vm *Engine) error {
	return opMultiSig(op, vm, true)
}
