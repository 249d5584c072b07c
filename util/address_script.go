package util

import (
	"fmt"

	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txscript"
)

// ScriptPublicKeyForAddress builds the scriptPublicKey an output must carry
// to pay to addr: a pay-to-pubkey script for the two pubkey versions, or a
// pay-to-script-hash script wrapping a ScriptHash address's payload.
func ScriptPublicKeyForAddress(addr *Address) (*externalapi.ScriptPublicKey, error) {
	var script []byte
	var err error
	switch addr.Version {
	case AddressVersionPubKey:
		script, err = txscript.PayToPubKeyScript(addr.Payload)
	case AddressVersionPubKeyECDSA:
		script, err = txscript.PayToPubKeyScriptECDSA(addr.Payload)
	case AddressVersionScriptHash:
		script, err = txscript.PayToScriptHashScriptFromHash(addr.Payload)
	default:
		return nil, fmt.Errorf("unknown address version %d", addr.Version)
	}
	if err != nil {
		return nil, err
	}
	return txscript.NewScriptPublicKeyFromScript(script)
}
