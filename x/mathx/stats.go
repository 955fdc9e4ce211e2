package mathx

import "sort"

// MeanF32 returns the arithmetic mean of vs, or 0 for an empty slice.
func MeanF32(vs []float32) float32 {
	if len(vs) == 0 {
		return 0
	}
	var sum float32
	for _, v := range vs {
		sum += v
	}
	return sum / float32(len(vs))
}

// TrimmedMeanF32 sorts a copy of vs, discards the lowest and highest
// `trim` values from each end, and returns the mean of what remains. If
// fewer than 2*trim+1 values are present, ok is false and the caller
// should treat the reading as erroneous.
func TrimmedMeanF32(vs []float32, trim int) (mean float32, ok bool) {
	if len(vs) < 2*trim+1 {
		return 0, false
	}
	cp := make([]float32, len(vs))
	copy(cp, vs)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	mid := cp[trim : len(cp)-trim]
	return MeanF32(mid), true
}

// MinMaxF32 returns the minimum and maximum of vs. Panics on an empty
// slice; callers must check length first.
func MinMaxF32(vs []float32) (min, max float32) {
	min, max = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}
