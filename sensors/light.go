package sensors

import (
	"context"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/x/mathx"
)

// LightBurstReadings is the number of sequential ADC reads per tick.
const LightBurstReadings = 5

// LightSampleSpacing is the delay between successive burst reads.
const LightSampleSpacing = 50 * time.Millisecond

// LightMinValidReadings is the minimum number of successful reads the
// burst needs before a mean can be trusted; below this the whole sample
// is flagged erroneous per §4.2.
const LightMinValidReadings = 3

// RawRead performs a single physical ADC conversion, in the adapter's
// unit (lux for Light, millivolts for ResistiveMoisture, picofarads for a
// CapacitiveMoisture channel). It is the out-of-scope,
// chip-register-level half of the adapter.
type RawRead func(ctx context.Context) (float32, error)

// Light adapts a raw ambient-light ADC into the burst-trimmed policy
// required by §4.2: five sequential reads 50ms apart, sorted, the lowest
// and highest discarded, the mean of the remaining three returned. Fewer
// than LightMinValidReadings successful reads yields an error and a zero
// value, never a partial trim.
type Light struct {
	Raw RawRead
}

func (l Light) Read(ctx context.Context) (Value, error) {
	readings := make([]float32, 0, LightBurstReadings)
	for i := 0; i < LightBurstReadings; i++ {
		if i > 0 {
			if err := sleepCtx(ctx, LightSampleSpacing); err != nil {
				break
			}
		}
		v, err := l.Raw(ctx)
		if err != nil {
			continue
		}
		readings = append(readings, v)
	}

	if len(readings) < LightMinValidReadings {
		return 0, errLightTooFewReadings
	}

	// §4.2 always discards exactly the lowest and highest single reading,
	// regardless of how many of the 5 attempts actually succeeded, as
	// long as at least 3 came back: trim=1 on whatever we collected.
	mean, _ := mathx.TrimmedMeanF32(readings, 1)
	return Value(mean), nil
}

var errLightTooFewReadings = lightErr("light: fewer than 3 valid readings in burst")

type lightErr string

func (e lightErr) Error() string { return string(e) }
