package externalapi

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainSubnetworkIDSize is the size, in bytes, of a subnetwork ID.
const DomainSubnetworkIDSize = 20

// DomainSubnetworkID is a 20-byte identifier of a subnetwork.
type DomainSubnetworkID [DomainSubnetworkIDSize]byte

// SubnetworkIDNative is the SubnetworkID of the native subnetwork: all zero.
var SubnetworkIDNative = DomainSubnetworkID{}

// SubnetworkIDCoinbase is the SubnetworkID of the coinbase subnetwork: the
// first byte is 1, the rest are zero.
var SubnetworkIDCoinbase = DomainSubnetworkID{1}

// SubnetworkIDRegistry is the SubnetworkID of the subnetwork registry
// subnetwork: the first byte is 2, the rest are zero.
var SubnetworkIDRegistry = DomainSubnetworkID{2}

// String returns the subnetwork ID as a lowercase hex string.
func (id DomainSubnetworkID) String() string {
	return hex.EncodeToString(id[:])
}

// Equal returns whether id equals to other.
func (id *DomainSubnetworkID) Equal(other *DomainSubnetworkID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return *id == *other
}

// IsNative reports whether id is the native subnetwork.
func (id DomainSubnetworkID) IsNative() bool {
	return id == SubnetworkIDNative
}

// NewSubnetworkIDFromBytes constructs a DomainSubnetworkID from a byte slice.
// Returns a BadLength error if b isn't exactly DomainSubnetworkIDSize bytes.
func NewSubnetworkIDFromBytes(b []byte) (*DomainSubnetworkID, error) {
	if len(b) != DomainSubnetworkIDSize {
		return nil, errors.Wrapf(ErrBadLength, "subnetwork ID length is %d, expected %d",
			len(b), DomainSubnetworkIDSize)
	}
	var id DomainSubnetworkID
	copy(id[:], b)
	return &id, nil
}
