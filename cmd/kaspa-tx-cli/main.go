package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/hashserialization"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txgenerator"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txmass"
	"github.com/kaspanet/kaspa-tx-sdk/domain/consensus/utils/txscript"
	"github.com/kaspanet/kaspa-tx-sdk/util"
)

func main() {
	defer handlePanic()

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	networkPrefix, err := util.ParsePrefix(cfg.Network)
	if err != nil {
		return err
	}

	privateKey, publicKey, err := parsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return err
	}

	ownerScriptPublicKey, err := txscript.NewScriptPublicKeyFromScript(mustPayToPubKeyScript(publicKey))
	if err != nil {
		return err
	}
	ownerAddress, err := util.NewAddress(networkPrefix, util.AddressVersionPubKey, publicKey)
	if err != nil {
		return err
	}

	changeAddress := ownerAddress
	if cfg.ChangeAddress != "" {
		changeAddress, err = util.DecodeAddressString(cfg.ChangeAddress)
		if err != nil {
			return err
		}
	}

	var finalOutputs []*externalapi.DomainTransactionOutput
	if !cfg.Sweep {
		toAddress, err := util.DecodeAddressString(cfg.ToAddress)
		if err != nil {
			return err
		}
		paymentScriptPublicKey, err := util.ScriptPublicKeyForAddress(toAddress)
		if err != nil {
			return err
		}
		finalOutputs = []*externalapi.DomainTransactionOutput{
			{Value: cfg.SendAmount, ScriptPublicKey: paymentScriptPublicKey},
		}
	}

	fees := externalapi.FeesFromSigned(cfg.FeeSompi)

	var payload []byte
	if cfg.Payload != "" {
		payload, err = hex.DecodeString(cfg.Payload)
		if err != nil {
			return fmt.Errorf("invalid --payload hex: %w", err)
		}
	}

	sourceUTXOs, err := parseUTXOs(cfg.UTXOs, ownerScriptPublicKey)
	if err != nil {
		return err
	}

	massCalculator := txmass.New(txmass.MainnetParams())
	settings, err := txgenerator.NewGeneratorSettings(
		networkPrefix,
		changeAddress,
		finalOutputs,
		fees,
		payload,
		nil,
		txgenerator.NewSliceUTXOIterator(sourceUTXOs),
		massCalculator,
	)
	if err != nil {
		return err
	}

	generator := txgenerator.New(settings)

	var signed []*externalapi.SignableTransaction
	for {
		stx, err := generator.NextTransaction()
		if err != nil {
			return err
		}
		if stx.Transaction == nil {
			break
		}
		if err := signTransaction(stx, privateKey); err != nil {
			return err
		}
		signed = append(signed, stx)
	}

	return printTransactions(signed)
}

// signTransaction signs every input of stx.Transaction for a plain P2PK
// output with privateKey, using SigHashAll.
func signTransaction(stx *externalapi.SignableTransaction, privateKey *secp256k1.PrivateKey) error {
	reusedValues := &hashserialization.SighashReusedValues{}
	for i := range stx.Transaction.Inputs {
		err := txscript.SignTxInputP2PK(stx.Transaction, i, externalapi.SigHashAll, stx.Entries, reusedValues, privateKey)
		if err != nil {
			return err
		}
	}
	return nil
}

func parsePrivateKey(hexKey string) (*secp256k1.PrivateKey, []byte, error) {
	keyBytes, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --private-key hex: %w", err)
	}
	privateKey, err := secp256k1.DeserializePrivateKeyFromSlice(keyBytes)
	if err != nil {
		return nil, nil, err
	}
	schnorrPubKey, err := privateKey.SchnorrPublicKey()
	if err != nil {
		return nil, nil, err
	}
	serialized, err := schnorrPubKey.SerializeCompressed()
	if err != nil {
		return nil, nil, err
	}
	// SerializeCompressed is 33 bytes (a parity prefix byte plus the
	// 32-byte x-coordinate); Kaspa P2PK addresses and scripts want the
	// bare x-only key.
	return privateKey, serialized[1:], nil
}

func mustPayToPubKeyScript(schnorrPubKey []byte) []byte {
	script, err := txscript.PayToPubKeyScript(schnorrPubKey)
	if err != nil {
		panic(err)
	}
	return script
}

// parseUTXOs decodes "txID:index:amount" triples into UTXOEntryReferences
// locked by scriptPublicKey (the private key's own P2PK script - this CLI
// only spends UTXOs it can sign for itself).
func parseUTXOs(raw []string, scriptPublicKey *externalapi.ScriptPublicKey) ([]*externalapi.UTXOEntryReference, error) {
	refs := make([]*externalapi.UTXOEntryReference, 0, len(raw))
	for _, entry := range raw {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --utxo %q: expected txID:index:amount", entry)
		}

		txIDBytes, err := hex.DecodeString(parts[0])
		if err != nil || len(txIDBytes) != externalapi.DomainHashSize {
			return nil, fmt.Errorf("invalid --utxo %q: txID must be %d hex bytes", entry, externalapi.DomainHashSize)
		}
		var txID externalapi.DomainTransactionID
		copy(txID[:], txIDBytes)

		index, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid --utxo %q: bad index: %w", entry, err)
		}

		amount, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --utxo %q: bad amount: %w", entry, err)
		}

		outpoint := externalapi.NewDomainOutpoint(&txID, uint32(index))
		utxoEntry := externalapi.NewUTXOEntry(amount, scriptPublicKey, false, 0)
		refs = append(refs, externalapi.NewUTXOEntryReference(nil, utxoEntry, outpoint))
	}
	return refs, nil
}

// wireTransaction is the JSON submission shape printed to stdout: the
// transaction's wire fields alongside the generator's bookkeeping, mirroring
// the kind of envelope a JSON-RPC submit-transaction call would take.
type wireTransaction struct {
	ID                    string   `json:"id"`
	Version               uint16   `json:"version"`
	Inputs                []wireInput  `json:"inputs"`
	Outputs               []wireOutput `json:"outputs"`
	LockTime              uint64   `json:"lockTime"`
	SubnetworkID          string   `json:"subnetworkId"`
	Gas                   uint64   `json:"gas"`
	Payload               string   `json:"payload"`
	Mass                  uint64   `json:"mass"`
	Kind                  string   `json:"kind"`
	AggregateInputAmount  uint64   `json:"aggregateInputAmount"`
	AggregateOutputAmount uint64   `json:"aggregateOutputAmount"`
	ChangeAmount          uint64   `json:"changeAmount"`
	Fee                   uint64   `json:"fee"`
}

type wireInput struct {
	PreviousOutpointTransactionID string `json:"previousOutpointTransactionId"`
	PreviousOutpointIndex         uint32 `json:"previousOutpointIndex"`
	SignatureScript               string `json:"signatureScript"`
	Sequence                      uint64 `json:"sequence"`
	SigOpCount                    byte   `json:"sigOpCount"`
}

type wireOutput struct {
	Value                  uint64 `json:"value"`
	ScriptPublicKeyVersion uint16 `json:"scriptPublicKeyVersion"`
	ScriptPublicKeyScript  string `json:"scriptPublicKeyScript"`
}

func printTransactions(signed []*externalapi.SignableTransaction) error {
	out := make([]wireTransaction, len(signed))
	for i, stx := range signed {
		out[i] = toWireTransaction(stx)
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func toWireTransaction(stx *externalapi.SignableTransaction) wireTransaction {
	tx := stx.Transaction

	inputs := make([]wireInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputs[i] = wireInput{
			PreviousOutpointTransactionID: input.PreviousOutpoint.TransactionID.String(),
			PreviousOutpointIndex:         input.PreviousOutpoint.Index,
			SignatureScript:               hex.EncodeToString(input.SignatureScript),
			Sequence:                      input.Sequence,
			SigOpCount:                    input.SigOpCount,
		}
	}

	outputs := make([]wireOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputs[i] = wireOutput{
			Value:                  output.Value,
			ScriptPublicKeyVersion: output.ScriptPublicKey.Version,
			ScriptPublicKeyScript:  hex.EncodeToString(output.ScriptPublicKey.Script),
		}
	}

	id := ""
	if tx.ID != nil {
		id = tx.ID.String()
	}

	return wireTransaction{
		ID:                    id,
		Version:               tx.Version,
		Inputs:                inputs,
		Outputs:               outputs,
		LockTime:              tx.LockTime,
		SubnetworkID:          tx.SubnetworkID.String(),
		Gas:                   tx.Gas,
		Payload:               hex.EncodeToString(tx.Payload),
		Mass:                  tx.Mass,
		Kind:                  stx.Kind.String(),
		AggregateInputAmount:  stx.AggregateInputAmount,
		AggregateOutputAmount: stx.AggregateOutputAmount,
		ChangeAmount:          stx.ChangeAmount,
		Fee:                   stx.Fee,
	}
}

func handlePanic() {
	if err := recover(); err != nil {
		log.Printf("Fatal error: %s", err)
		log.Printf("Stack trace: %s", debug.Stack())
		os.Exit(1)
	}
}
