package sensors

import "context"

// SoilTempProbe reads one soil-temperature probe, in °C.
type SoilTempProbe interface {
	Read(ctx context.Context) (float32, error)
}

// SoilTempArray reads whichever probes were detected at boot (zero to
// four, hardware-revision dependent). A probe that fails to answer has
// its slot zeroed rather than aborting the whole composite sample, per
// §4.2's "detection failures are reported by zeroing the slot".
type SoilTempArray struct {
	Probes []SoilTempProbe // length 0..4, fixed at boot detection time
}

// Read returns up to four temperatures and the count actually populated.
// A failed individual probe read zeroes that slot but does not reduce N;
// the caller (composite sampler) sets the sample-wide error flag instead,
// since zero is a plausible reading for some fields and only the error
// flag is a reliable validity signal (§9).
func (a SoilTempArray) Read(ctx context.Context) (temps [4]float32, n uint8, anyErr bool) {
	n = uint8(len(a.Probes))
	if n > 4 {
		n = 4
	}
	for i := 0; i < int(n); i++ {
		v, err := a.Probes[i].Read(ctx)
		if err != nil {
			anyErr = true
			continue
		}
		temps[i] = v
	}
	return temps, n, anyErr
}
