package sensors

import (
	"context"

	"github.com/rx178nwj/SoilMonitorRev2/drivers/aht20"
)

// AirSensor adapts the two-phase aht20 chip driver (trigger, then poll for
// collect) into two independent Adapter values sharing one physical
// device, so the scheduler can read air temperature and air humidity as
// separate composite-sample fields without triggering the device twice.
type AirSensor struct {
	dev *aht20.Device
}

// NewAirSensor wraps an already-configured aht20 device handle.
func NewAirSensor(dev *aht20.Device) *AirSensor {
	return &AirSensor{dev: dev}
}

// Temperature reads air temperature in °C.
func (a *AirSensor) Temperature() Adapter {
	return AdapterFunc(func(ctx context.Context) (Value, error) {
		if err := a.dev.Read(); err != nil {
			return 0, err
		}
		return Value(a.dev.Celsius()), nil
	})
}

// Humidity reads air relative humidity in percent.
func (a *AirSensor) Humidity() Adapter {
	return AdapterFunc(func(ctx context.Context) (Value, error) {
		if err := a.dev.Read(); err != nil {
			return 0, err
		}
		return Value(a.dev.RelHumidity()), nil
	})
}
