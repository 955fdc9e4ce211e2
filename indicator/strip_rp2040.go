//go:build rp2040

package indicator

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// ws2812Strip adapts tinygo.org/x/drivers/ws2812 to the Strip interface,
// the same split the teacher uses between hal.GPIOPin and its rp2xxx pin
// provider (services/hal/internal/platform/provider/rp2_pins.go).
type ws2812Strip struct {
	dev ws2812.Device
}

// NewWS2812Strip configures pin as a NeoPixel output and returns a Strip
// backed by it.
func NewWS2812Strip(pin machine.Pin) Strip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ws2812Strip{dev: ws2812.New(pin)}
}

func (s *ws2812Strip) WriteColors(colors []color.RGBA) error {
	return s.dev.WriteColors(colors)
}
