// Package indicator implements the indicator driver (C9): mapping the
// decision engine's classification to a single strip colour, either from
// a fixed per-state palette or, for capacitive hardware, a continuous
// warm-to-cool moisture gradient (§4.9).
package indicator

import (
	"image/color"

	"github.com/rx178nwj/SoilMonitorRev2/types"
	"github.com/rx178nwj/SoilMonitorRev2/x/ramp"
)

// Strip is the narrow view of the LED output the driver needs; the real
// implementation wraps tinygo.org/x/drivers/ws2812 (see
// strip_rp2040.go), kept behind an interface the way the teacher
// keeps hal.Adaptor apart from its rp2xxx pin provider.
type Strip interface {
	WriteColors(colors []color.RGBA) error
}

// Scheme selects which of §4.9's two colour strategies is active,
// decided once at boot from the detected hardware variant.
type Scheme uint8

const (
	SchemeDiscrete Scheme = iota
	SchemeGradient
)

// Driver owns the strip and the last classification's colour, animating
// gradient transitions rather than snapping so consecutive minute ticks
// don't flicker.
type Driver struct {
	strip  Strip
	scheme Scheme

	// level is the current gradient position in [0, gradientTop],
	// smoothed by ramp.StartLinear between ticks.
	level uint16
	tick  ramp.Tick
}

// New builds a Driver. tick is used only in the gradient scheme to pace
// the colour transition; pass a Tick that sleeps for real time, or one
// that returns immediately in tests.
func New(strip Strip, scheme Scheme, tick ramp.Tick) *Driver {
	return &Driver{strip: strip, scheme: scheme, tick: tick}
}

// Show renders condition to the strip. profile supplies the moisture
// thresholds the gradient scheme maps against; it is unused in the
// discrete scheme.
func (d *Driver) Show(condition types.Condition, profile types.PlantProfile, soilMoisture float32) error {
	if d.scheme == SchemeDiscrete || alwaysDiscrete(condition) {
		return d.strip.WriteColors([]color.RGBA{discreteColor(condition)})
	}
	return d.showGradient(profile, soilMoisture)
}

// alwaysDiscrete reports the states that use discrete colours in both
// schemes: temperature limits and the error state (§4.9).
func alwaysDiscrete(c types.Condition) bool {
	switch c {
	case types.CondTempTooHigh, types.CondTempTooLow, types.CondError:
		return true
	default:
		return false
	}
}

func (d *Driver) showGradient(profile types.PlantProfile, soilMoisture float32) error {
	target := gradientLevel(profile, soilMoisture)

	var final color.RGBA
	ramp.StartLinear(d.level, target, gradientTop, gradientTransitionMs, gradientSteps, d.tick, func(level uint16) {
		d.level = level
		final = gradientColorAt(level)
	})
	return d.strip.WriteColors([]color.RGBA{final})
}
