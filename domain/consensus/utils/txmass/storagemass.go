package txmass

// StorageMass computes a transaction's KIP-0009 storage mass given its
// input and output values and the configured StorageMassParameter (C).
//
// The one-sided/two-by-two short-cut avoids the harmonic-vs-arithmetic mean
// bias that would otherwise penalize simple consolidations and splits: when
// there's a single input, a single output, or exactly two of each, storage
// mass is the plain difference of per-output and per-input harmonic terms.
// In the general case the inputs are instead collapsed to their arithmetic
// mean before taking the harmonic term, which is what makes storage mass
// rise when a transaction fragments value across many small outputs.
//
//	if m==1 || n==1 || (m==2 && n==2): max(0, Σ(C/y_j) − Σ(C/x_i))
//	else:                              max(0, Σ(C/y_j) − n·(C / (Σx_i / n)))
//
// Coinbase transactions (no real inputs) return 0. All division is u64
// integer division, per spec.
func (c *Calculator) StorageMass(inputValues, outputValues []uint64, isCoinbase bool) uint64 {
	if isCoinbase || len(inputValues) == 0 {
		return 0
	}

	n := len(inputValues)
	m := len(outputValues)

	var outputHarmonicSum uint64
	for _, y := range outputValues {
		if y == 0 {
			continue
		}
		outputHarmonicSum += c.params.StorageMassParameter / y
	}

	var inputTerm uint64
	if m == 1 || n == 1 || (m == 2 && n == 2) {
		for _, x := range inputValues {
			if x == 0 {
				continue
			}
			inputTerm += c.params.StorageMassParameter / x
		}
	} else {
		var sum uint64
		for _, x := range inputValues {
			sum += x
		}
		mean := sum / uint64(n)
		if mean != 0 {
			inputTerm = uint64(n) * (c.params.StorageMassParameter / mean)
		}
	}

	if outputHarmonicSum <= inputTerm {
		return 0
	}
	return outputHarmonicSum - inputTerm
}
