// Command SoilMonitorRev2 is a host-runnable simulator: it drives the
// sampling, analysis, and storage components with synthetic sensor
// values instead of real hardware, printing the classified condition on
// every tick. It exists for local development away from a board, the
// same role the teacher's plain println-loop main() fills for a quick
// bus smoke check before flashing.
package main

import (
	"context"
	"math"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/clock"
	"github.com/rx178nwj/SoilMonitorRev2/config"
	"github.com/rx178nwj/SoilMonitorRev2/decision"
	"github.com/rx178nwj/SoilMonitorRev2/sensors"
	"github.com/rx178nwj/SoilMonitorRev2/store"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

func main() {
	println("boot: soil monitor simulator")

	clk := clock.New()
	st := store.New(clk)
	cfg := config.New(config.NewMemoryKV(), types.MoistureResistive)
	dec := decision.New()

	profile, err := cfg.LoadProfile()
	if err != nil {
		println("config: load failed, using zero profile:", err.Error())
	}

	moisture := sensors.ResistiveMoisture{Raw: driftingMoisture()}
	airTemp := sensors.AdapterFunc(driftingTemp())

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for range tick.C {
		sample := readOnce(clk, moisture, airTemp)
		if err := st.Insert(sample); err != nil {
			println("store: insert failed:", err.Error())
			continue
		}

		recent, _ := st.GetRecentMinutes(1)
		condition := dec.Classify(profile, sample, recent, nil)
		println(condition.String(), "soil:", int32(sample.Soil.Moisture), "airC:", int32(sample.AirTempC))
	}
}

func readOnce(clk *clock.Clock, moisture sensors.MoistureReader, airTemp sensors.Adapter) types.Sample {
	ctx := context.Background()

	var sample types.Sample
	sample.Timestamp = clk.Now()

	if soil, err := moisture.ReadSoil(ctx); err == nil {
		sample.Soil = soil
	} else {
		sample.Error = true
	}
	if v, err := airTemp.Read(ctx); err == nil {
		sample.AirTempC = float32(v)
	} else {
		sample.Error = true
	}
	return sample
}

// driftingMoisture returns a RawRead that oscillates slowly between wet
// and dry so the simulator exercises the moisture rules of the decision
// engine over a few minutes instead of holding one condition forever.
// The simulated temperature stays between 19 and 25 °C and no reading
// fails, so the temperature-limit and error rules never fire.
func driftingMoisture() sensors.RawRead {
	start := time.Now()
	return func(ctx context.Context) (float32, error) {
		elapsedMin := time.Since(start).Minutes()
		return 2000 + float32(1200*math.Sin(elapsedMin/3)), nil
	}
}

func driftingTemp() func(ctx context.Context) (sensors.Value, error) {
	start := time.Now()
	return func(ctx context.Context) (sensors.Value, error) {
		elapsedMin := time.Since(start).Minutes()
		return sensors.Value(22 + 3*math.Sin(elapsedMin/5)), nil
	}
}
