package indicator

import (
	"image/color"

	"github.com/rx178nwj/SoilMonitorRev2/types"
	"github.com/rx178nwj/SoilMonitorRev2/x/mathx"
)

// gradientTop is the fixed-point scale the moisture-to-colour mapping
// runs over: 10000 represents 100.00% wet.
const gradientTop = 10000

// gradientTransitionMs and gradientSteps pace the ramp.StartLinear call
// so a tick-to-tick colour change animates instead of snapping.
const (
	gradientTransitionMs = 2000
	gradientSteps        = 20
)

// gradientStop is one colour anchor of the five-stop warm-to-cool ramp,
// transcribed from the source's colour-temperature table (orange at 0%
// through blue at 100%).
type gradientStop struct {
	level uint16
	color color.RGBA
}

var gradientStops = [5]gradientStop{
	{0, color.RGBA{R: 255, G: 80, A: 255}},
	{2500, color.RGBA{R: 255, G: 200, A: 255}},
	{5000, color.RGBA{G: 255, A: 255}},
	{7500, color.RGBA{G: 200, B: 255, A: 255}},
	{10000, color.RGBA{G: 50, B: 255, A: 255}},
}

// gradientLevel maps soilMoisture to a wetness level on [0, gradientTop],
// using the profile's dry/wet thresholds as the 0%/100% references.
// Higher raw moisture means drier soil (§4.5's inversion note carries
// over here), so the mapping runs dry-threshold -> 0, wet-threshold ->
// gradientTop.
func gradientLevel(profile types.PlantProfile, soilMoisture float32) uint16 {
	dry, wet := profile.DryThreshold, profile.WetThreshold
	if dry == wet {
		return gradientTop / 2
	}
	t := (dry - soilMoisture) / (dry - wet)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint16(t * gradientTop)
}

// gradientColorAt interpolates the five-stop table at level.
func gradientColorAt(level uint16) color.RGBA {
	level = mathx.Clamp(level, gradientStops[0].level, gradientStops[len(gradientStops)-1].level)

	for i := 0; i < len(gradientStops)-1; i++ {
		lo, hi := gradientStops[i], gradientStops[i+1]
		if level < lo.level || level > hi.level {
			continue
		}
		span := hi.level - lo.level
		var t uint16
		if span != 0 {
			t = uint16((uint32(level-lo.level) * 65535) / uint32(span))
		}
		return color.RGBA{
			R: uint8(mathx.LerpU16(uint16(lo.color.R), uint16(hi.color.R), t)),
			G: uint8(mathx.LerpU16(uint16(lo.color.G), uint16(hi.color.G), t)),
			B: uint8(mathx.LerpU16(uint16(lo.color.B), uint16(hi.color.B), t)),
			A: 255,
		}
	}
	return gradientStops[len(gradientStops)-1].color
}
