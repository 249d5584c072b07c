package externalapi

import "encoding/hex"

// DomainHashSize is the size of the array used to store hashes.
const DomainHashSize = 32

// DomainHash is the domain representation of a Blake2b-256 hash.
type DomainHash [DomainHashSize]byte

// ZeroHash is the DomainHash value consisting of all zeroes. It is used as
// the "nothing to hash" sentinel throughout the sighash and serialisation
// code.
var ZeroHash = DomainHash{}

// String returns the Hash as the hexadecimal string of the hash, lowercase.
func (hash DomainHash) String() string {
	return hex.EncodeToString(hash[:])
}

// Clone clones the hash.
func (hash *DomainHash) Clone() *DomainHash {
	if hash == nil {
		return nil
	}
	hashClone := *hash
	return &hashClone
}

// If this doesn't compile, it means the type definition has been changed, so
// it's an indication to update Equal and Clone accordingly.
var _ DomainHash = [DomainHashSize]byte{}

// Equal returns whether hash equals to other.
func (hash *DomainHash) Equal(other *DomainHash) bool {
	if hash == nil || other == nil {
		return hash == other
	}
	return *hash == *other
}

// IsZero reports whether hash is the all-zero sentinel hash.
func (hash *DomainHash) IsZero() bool {
	return hash == nil || *hash == ZeroHash
}

// DomainTransactionID is the ID of a DomainTransaction: the Blake2b-256 hash,
// keyed with "TransactionID", of the transaction's canonical serialisation
// with the signature scripts excluded (included for coinbase transactions).
type DomainTransactionID DomainHash

// String returns the TransactionID as a lowercase hexadecimal string.
func (id DomainTransactionID) String() string {
	return hex.EncodeToString(id[:])
}

// Clone clones the transaction ID.
func (id *DomainTransactionID) Clone() *DomainTransactionID {
	if id == nil {
		return nil
	}
	idClone := *id
	return &idClone
}

// Equal returns whether id equals to other.
func (id *DomainTransactionID) Equal(other *DomainTransactionID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return *id == *other
}

// AsHash reinterprets the transaction ID as a plain DomainHash.
func (id DomainTransactionID) AsHash() DomainHash {
	return DomainHash(id)
}
