package txscript

import (
	"sync"

	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
)

// sigCacheKey is the triple (signature, public key, signed message) a
// verification result is cached under.
type sigCacheKey struct {
	sig    string
	pubKey string
	msg    externalapi.DomainHash
}

// SigCache implements an Schnorr/ECDSA signature verification cache with a
// deterministic hit/miss behavior: entries are written once, on first
// verification, and never evicted during the life of the cache. Two
// independent maps are kept - one per signature scheme - since a (sig,
// pubkey, msg) triple of one scheme never collides with the meaning of the
// same bytes under the other.
//
// A single SigCache is safe to share across concurrently-verifying engines;
// the module itself is single-threaded, but a host embedding it may not be.
type SigCache struct {
	mtx        sync.RWMutex
	schnorrMap map[sigCacheKey]bool
	ecdsaMap   map[sigCacheKey]bool
}

// NewSigCache returns an empty SigCache ready to use.
func NewSigCache() *SigCache {
	return &SigCache{
		schnorrMap: make(map[sigCacheKey]bool),
		ecdsaMap:   make(map[sigCacheKey]bool),
	}
}

func (c *SigCache) get(table map[sigCacheKey]bool, sig, pubKey []byte, msg *externalapi.DomainHash) (bool, bool) {
	if c == nil {
		return false, false
	}
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	result, ok := table[sigCacheKey{string(sig), string(pubKey), *msg}]
	return result, ok
}

func (c *SigCache) set(table map[sigCacheKey]bool, sig, pubKey []byte, msg *externalapi.DomainHash, result bool) {
	if c == nil {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	table[sigCacheKey{string(sig), string(pubKey), *msg}] = result
}

// SchnorrVerified queries the Schnorr verification cache, returning the
// cached result and whether it was present.
func (c *SigCache) SchnorrVerified(sig, pubKey []byte, msg *externalapi.DomainHash) (bool, bool) {
	return c.get(c.schnorrMap, sig, pubKey, msg)
}

// SetSchnorrVerified records a Schnorr verification result in the cache.
func (c *SigCache) SetSchnorrVerified(sig, pubKey []byte, msg *externalapi.DomainHash, result bool) {
	c.set(c.schnorrMap, sig, pubKey, msg, result)
}

// ECDSAVerified queries the ECDSA verification cache, returning the cached
// result and whether it was present.
func (c *SigCache) ECDSAVerified(sig, pubKey []byte, msg *externalapi.DomainHash) (bool, bool) {
	return c.get(c.ecdsaMap, sig, pubKey, msg)
}

// SetECDSAVerified records an ECDSA verification result in the cache.
func (c *SigCache) SetECDSAVerified(sig, pubKey []byte, msg *externalapi.DomainHash, result bool) {
	c.set(c.ecdsaMap, sig, pubKey, msg, result)
}
