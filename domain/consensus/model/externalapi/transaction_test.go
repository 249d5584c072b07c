package externalapi

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func buildTestTransaction() *DomainTransaction {
	spk, _ := NewScriptPublicKey(0, []byte{1, 2})
	return &DomainTransaction{
		Version: 1,
		Inputs: []*DomainTransactionInput{{
			PreviousOutpoint: DomainOutpoint{TransactionID: DomainTransactionID{0x01}, Index: 0xffff},
			SignatureScript:  []byte{1, 2, 3},
			Sequence:         0xffffffff,
			SigOpCount:       1,
		}},
		Outputs: []*DomainTransactionOutput{
			{Value: 0xffff, ScriptPublicKey: spk},
		},
		LockTime:     1,
		SubnetworkID: DomainSubnetworkID{0x01},
		Gas:          1,
		Payload:      []byte{0x01},
		Mass:         1,
	}
}

func TestDomainTransactionCloneEqual(t *testing.T) {
	tx := buildTestTransaction()
	clone := tx.Clone()

	if spew.Sdump(tx) != spew.Sdump(clone) {
		t.Fatalf("clone diverges from original:\noriginal: %s\nclone: %s", spew.Sdump(tx), spew.Sdump(clone))
	}

	clone.Inputs[0].SignatureScript[0] = 0xff
	if tx.Inputs[0].SignatureScript[0] == 0xff {
		t.Fatal("mutating the clone's signature script mutated the original")
	}
}

func TestDomainTransactionIsCoinbase(t *testing.T) {
	tx := buildTestTransaction()
	tx.SubnetworkID = SubnetworkIDNative
	if tx.IsCoinbase() {
		t.Fatal("native-subnetwork transaction reported as coinbase")
	}

	tx.SubnetworkID = SubnetworkIDCoinbase
	if !tx.IsCoinbase() {
		t.Fatal("coinbase-subnetwork transaction not reported as coinbase")
	}
}

func TestScriptPublicKeyTooLong(t *testing.T) {
	_, err := NewScriptPublicKey(0, make([]byte, MaxScriptPublicKeyScriptLength+1))
	if err == nil {
		t.Fatal("expected an error constructing an over-long scriptPublicKey")
	}
}

func TestScriptPublicKeyImmutable(t *testing.T) {
	script := []byte{1, 2, 3}
	spk, err := NewScriptPublicKey(0, script)
	if err != nil {
		t.Fatal(err)
	}
	script[0] = 0xff
	if spk.Script[0] == 0xff {
		t.Fatal("mutating the caller's slice mutated the constructed ScriptPublicKey")
	}
}

func TestFeesFromSigned(t *testing.T) {
	tests := []struct {
		amount       int64
		wantAmount   uint64
		wantSource   FeeSource
	}{
		{0, 0, FeeSourceNone},
		{1000, 1000, FeeSourceSender},
		{-1000, 1000, FeeSourceReceiver},
	}
	for _, test := range tests {
		fees := FeesFromSigned(test.amount)
		if fees.Amount != test.wantAmount || fees.Source != test.wantSource {
			t.Errorf("FeesFromSigned(%d) = %+v, want {%d %d}", test.amount, fees, test.wantAmount, test.wantSource)
		}
	}
}

func TestSigHashTypeValidity(t *testing.T) {
	valid := []SigHashType{
		SigHashAll, SigHashNone, SigHashSingle,
		SigHashAll | SigHashAnyOneCanPay,
		SigHashNone | SigHashAnyOneCanPay,
		SigHashSingle | SigHashAnyOneCanPay,
	}
	for _, t2 := range valid {
		if !t2.IsValid() {
			t.Errorf("%v reported invalid", t2)
		}
	}

	invalid := []SigHashType{0, SigHashAnyOneCanPay, SigHashAll | SigHashNone, 0xff}
	for _, t2 := range invalid {
		if t2.IsValid() {
			t.Errorf("%v reported valid", t2)
		}
	}
}
