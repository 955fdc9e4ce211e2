package sensors

import (
	"context"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/types"
	"github.com/rx178nwj/SoilMonitorRev2/x/mathx"
)

// ResistiveSampleCount is the number of ADC samples averaged per tick.
const ResistiveSampleCount = 10

// ResistiveSampleSpacing is the delay between successive ADC samples.
const ResistiveSampleSpacing = 10 * time.Millisecond

// ResistiveMoisture averages 10 ADC samples 10ms apart, in millivolts,
// per §4.2. Higher millivolts means drier soil.
type ResistiveMoisture struct {
	Raw RawRead
}

func (m ResistiveMoisture) ReadSoil(ctx context.Context) (types.SoilData, error) {
	var sum float32
	n := 0
	for i := 0; i < ResistiveSampleCount; i++ {
		if i > 0 {
			if err := sleepCtx(ctx, ResistiveSampleSpacing); err != nil {
				break
			}
		}
		v, err := m.Raw(ctx)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return types.SoilData{Kind: types.MoistureResistive}, errNoValidSamples
	}
	return types.SoilData{
		Kind:     types.MoistureResistive,
		Moisture: sum / float32(n),
	}, nil
}

// CapacitiveMoisture measures four channels independently, in sequence,
// so that driving one channel's excitation signal cannot influence a
// neighbour's reading (§4.2: "to avoid cross-channel influence"). The
// aggregate Moisture field is the mean of the channels that returned a
// reading; a nil or failing channel is left at zero and left out of the
// mean.
type CapacitiveMoisture struct {
	// Channel reads one channel, in picofarads.
	Channel [4]RawRead
}

func (m CapacitiveMoisture) ReadSoil(ctx context.Context) (types.SoilData, error) {
	var out types.SoilData
	out.Kind = types.MoistureCapacitive

	var readings []float32
	for ch := 0; ch < 4; ch++ {
		if m.Channel[ch] == nil {
			continue
		}
		v, err := m.Channel[ch](ctx)
		if err != nil {
			continue
		}
		out.Channels[ch] = v
		readings = append(readings, v)
	}
	if len(readings) == 0 {
		return out, errNoValidSamples
	}
	out.Moisture = mathx.MeanF32(readings)
	return out, nil
}

var errNoValidSamples = lightErr("moisture: no valid ADC samples")
