package txmass

import "testing"

// §8 scenario 2: two inputs of 1_000_000_000 each, two outputs of
// 900_000_000 and 1_050_000_000, C = 10_000 * SompiPerKaspa.
func TestStorageMassTwoByTwoShortCut(t *testing.T) {
	calc := New(MainnetParams())
	inputs := []uint64{1_000_000_000, 1_000_000_000}
	outputs := []uint64{900_000_000, 1_050_000_000}

	got := calc.StorageMass(inputs, outputs, false)
	want := uint64(63)
	if got != want {
		t.Fatalf("StorageMass = %d, want %d", got, want)
	}
}

func TestStorageMassZeroForCoinbase(t *testing.T) {
	calc := New(MainnetParams())
	if got := calc.StorageMass([]uint64{0}, []uint64{5_000_000_000}, true); got != 0 {
		t.Fatalf("StorageMass for coinbase = %d, want 0", got)
	}
}

func TestStorageMassFragmentationPenalizesManySmallOutputs(t *testing.T) {
	calc := New(MainnetParams())
	inputs := []uint64{3_000_000_000, 3_000_000_000, 3_000_000_000}
	outputs := []uint64{100_000_000, 100_000_000, 100_000_000, 100_000_000, 100_000_000, 8_500_000_000}

	got := calc.StorageMass(inputs, outputs, false)
	if got == 0 {
		t.Fatal("expected splitting value across many small outputs to carry nonzero storage mass")
	}
}

func TestMinimumRequiredTransactionRelayFeeFloor(t *testing.T) {
	if got := MinimumRequiredTransactionRelayFee(1); got != 1000 {
		t.Fatalf("fee for mass=1 = %d, want the 1000 Sompi floor", got)
	}
	if got := MinimumRequiredTransactionRelayFee(10_000); got != 10_000 {
		t.Fatalf("fee for mass=10000 = %d, want 10000", got)
	}
}

func TestDustSymmetryWithMinimumRelayFee(t *testing.T) {
	// isDust(v) holds exactly when (v*1000)/(3*(outputSize+148)) < 1000.
	outputSize := 34
	totalSize := 3 * (outputSize + 148)
	boundary := uint64(1000*totalSize) / 1000
	if IsTransactionOutputDust(boundary, outputSize) {
		t.Fatalf("value %d should clear the dust threshold for size %d", boundary, outputSize)
	}
	if !IsTransactionOutputDust(boundary-1, outputSize) {
		t.Fatalf("value %d should be dust for size %d", boundary-1, outputSize)
	}
}

func TestIsTransactionOutputDustShortScriptAlwaysDust(t *testing.T) {
	if !IsTransactionOutputDust(1_000_000, 32) {
		t.Fatal("expected a 32-byte scriptPubKey to always be dust")
	}
}
