package txmass

import "github.com/pkg/errors"

// ErrMassCalculation names a failure to compute a transaction's mass. No
// function in this package returns it: StorageMass has no error result and
// does not compare its input and output counts against anything.
var ErrMassCalculation = errors.New("mass calculation error")

// ErrStorageMassOverflow names an overflow of the storage-mass harmonic
// sum. No function in this package returns it; StorageMass does not check
// its sums for overflow.
var ErrStorageMassOverflow = errors.New("storage mass overflow")
