package externalapi

import "github.com/pkg/errors"

// MaxScriptPublicKeyScriptLength is the largest script a ScriptPublicKey may
// carry. Every standard Kaspa output script (P2PK, P2SH) fits comfortably
// under this bound.
const MaxScriptPublicKeyScriptLength = 36

// ScriptPublicKey is the locking script of a transaction output, versioned so
// that future script-engine upgrades can be rolled out without breaking
// existing outputs.
type ScriptPublicKey struct {
	Script  []byte
	Version uint16
}

// NewScriptPublicKey constructs a ScriptPublicKey, cloning script so the
// resulting value is immutable with respect to the caller's slice.
func NewScriptPublicKey(version uint16, script []byte) (*ScriptPublicKey, error) {
	if len(script) > MaxScriptPublicKeyScriptLength {
		return nil, errors.Wrapf(ErrBadLength, "scriptPublicKey script length %d exceeds maximum %d",
			len(script), MaxScriptPublicKeyScriptLength)
	}
	scriptClone := make([]byte, len(script))
	copy(scriptClone, script)
	return &ScriptPublicKey{Script: scriptClone, Version: version}, nil
}

// Clone returns a deep clone of spk, or nil if spk is nil.
func (spk *ScriptPublicKey) Clone() *ScriptPublicKey {
	if spk == nil {
		return nil
	}
	scriptClone := make([]byte, len(spk.Script))
	copy(scriptClone, spk.Script)
	return &ScriptPublicKey{Script: scriptClone, Version: spk.Version}
}

// Equal returns whether spk equals to other.
func (spk *ScriptPublicKey) Equal(other *ScriptPublicKey) bool {
	if spk == nil || other == nil {
		return spk == other
	}
	if spk.Version != other.Version {
		return false
	}
	if len(spk.Script) != len(other.Script) {
		return false
	}
	for i := range spk.Script {
		if spk.Script[i] != other.Script[i] {
			return false
		}
	}
	return true
}
