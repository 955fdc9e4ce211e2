//go:build rp2040

package main

import (
	"context"
	"machine"

	"tinygo.org/x/bluetooth"

	"github.com/rx178nwj/SoilMonitorRev2/drivers/aht20"
	"github.com/rx178nwj/SoilMonitorRev2/indicator"
	"github.com/rx178nwj/SoilMonitorRev2/scheduler"
	"github.com/rx178nwj/SoilMonitorRev2/sensors"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// Board wiring for the resistive-sensor hardware revision, kept as plain
// constants the way the teacher's boards.Descriptor fixes the Pico
// default LED pin.
const (
	pinLightADC      = machine.ADC0
	pinResistiveADC  = machine.ADC1
	pinIndicatorData = machine.NEOPIXEL
)

// buildHardware configures the on-board peripherals and returns the
// adapter set and LED strip the analysis/indicator tasks drive. It is
// only ever called from a real rp2040 build; hosted tests never touch it.
func buildHardware() (scheduler.AdapterSet, indicator.Strip, types.HardwareVariant) {
	machine.InitADC()

	light := machine.ADC{Pin: pinLightADC}
	light.Configure(machine.ADCConfig{})
	resistive := machine.ADC{Pin: pinResistiveADC}
	resistive.Configure(machine.ADCConfig{})

	machine.I2C0.Configure(machine.I2CConfig{Frequency: machine.TWI_FREQ_400KHZ})
	humidity := aht20.New(machine.I2C0)
	humidity.Configure()

	adapters := scheduler.AdapterSet{
		Light: sensors.Light{Raw: func(ctx context.Context) (float32, error) {
			return float32(light.Get()), nil
		}},
		AirTemp: sensors.AdapterFunc(func(ctx context.Context) (sensors.Value, error) {
			if err := humidity.Read(); err != nil {
				return 0, err
			}
			return sensors.Value(humidity.Celsius()), nil
		}),
		AirHumidity: sensors.AdapterFunc(func(ctx context.Context) (sensors.Value, error) {
			if err := humidity.Read(); err != nil {
				return 0, err
			}
			return sensors.Value(humidity.RelHumidity()), nil
		}),
		Moisture: sensors.ResistiveMoisture{Raw: func(ctx context.Context) (float32, error) {
			return float32(resistive.Get()), nil
		}},
		DataVersion: 1,
	}

	strip := indicator.NewWS2812Strip(pinIndicatorData)

	hw := types.HardwareVariant{
		Moisture:   types.MoistureResistive,
		SoilProbes: 0,
		HWVersion:  10,
	}
	return adapters, strip, hw
}

// buildBLEAdapter returns the on-board Bluetooth radio.
func buildBLEAdapter() *bluetooth.Adapter {
	return bluetooth.DefaultAdapter
}
