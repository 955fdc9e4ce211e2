package scheduler

import (
	"github.com/rx178nwj/SoilMonitorRev2/sensors"
)

// AdapterSet is the fixed collection of sensor adapters the scheduler
// reads on every tick. The scheduler owns this set (§3 "Ownership");
// hardware wiring decides which fields are populated versus nil.
type AdapterSet struct {
	Light       sensors.Adapter
	AirTemp     sensors.Adapter
	AirHumidity sensors.Adapter
	Moisture    sensors.MoistureReader
	SoilTemps   sensors.SoilTempArray

	DataVersion uint8
}
