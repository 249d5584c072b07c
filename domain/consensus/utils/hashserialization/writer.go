package hashserialization

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

var littleEndian = binary.LittleEndian

// transactionIDKey, transactionHashKey and signingHashKey are the Blake2b
// keys this package hashes with. Each one scopes its hash to a single
// purpose so that, for example, a TransactionID can never collide with a
// TransactionSigningHash even if the preimage bytes happened to coincide.
const (
	transactionIDKey  = "TransactionID"
	transactionHashKey = "TransactionHash"
	signingHashKey     = "TransactionSigningHash"
)

// newBlake2bHasher returns a new keyed Blake2b-256 hash.Hash. Blake2b allows
// keys up to 64 bytes; every key used in this package is well under that.
func newBlake2bHasher(key string) hash.Hash {
	h, err := blake2b.New256([]byte(key))
	if err != nil {
		// Only returns an error for keys longer than 64 bytes or an
		// invalid requested digest size, neither of which can happen
		// with the constant keys/size used here.
		panic(err)
	}
	return h
}
