//go:build rp2040

// Command soilmonitor-main is the on-device firmware entry point: it
// brings up the board's peripherals, wires them into a boot.System, and
// runs the sampling, analysis, and link-host tasks forever. It is the
// rp2040 counterpart to the teacher's cmd/pico-hal-main.
package main

import (
	"context"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/boot"
	"github.com/rx178nwj/SoilMonitorRev2/bus"
	"github.com/rx178nwj/SoilMonitorRev2/config"
	"github.com/rx178nwj/SoilMonitorRev2/indicator"
	"github.com/rx178nwj/SoilMonitorRev2/types"
	"github.com/rx178nwj/SoilMonitorRev2/x/conv"
	"github.com/rx178nwj/SoilMonitorRev2/x/timex"
)

// macLast4Hex identifies this unit in its BLE advertisement name (§6). A
// production build would derive this from the board's unique ID; fixed
// here since no such lookup is part of this module's scope.
const macLast4Hex = "0001"

func main() {
	time.Sleep(3 * time.Second)
	println("[main] boot at ms:", timex.NowMs())
	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)

	println("[main] configuring peripherals …")
	adapters, strip, hw := buildHardware()

	sys := boot.New(b, time.Now(), boot.Options{
		HardwareVariant: hw,
		Adapters:        adapters,
		KV:              config.NewMemoryKV(),
		Strip:           strip,
		IndicatorScheme: schemeFor(hw),
		IndicatorTick:   realTick,
		BTAdapter:       buildBLEAdapter(),
		DeviceName:      "PlantMonitor",
		FirmwareVersion: "1.0.0",
		ResetFn:         resetBoard,
		TimeSyncFn:      func() {},
		SwitchFn:        func() bool { return false },
	})

	println("[main] starting tasks …")
	if err := sys.Run(context.Background(), hwVersion2Digit(hw.HWVersion), macLast4Hex); err != nil {
		println("[main] fatal:", err.Error())
	}
}

// schemeFor picks the discrete palette for resistive hardware and the
// continuous gradient for capacitive hardware, per §4.9.
func schemeFor(hw types.HardwareVariant) indicator.Scheme {
	if hw.Moisture == types.MoistureCapacitive {
		return indicator.SchemeGradient
	}
	return indicator.SchemeDiscrete
}

// realTick sleeps for real time and always continues; the indicator
// driver only needs cancellation semantics in tests.
func realTick(d time.Duration) bool {
	time.Sleep(d)
	return true
}

func resetBoard() {
	// A watchdog-triggered reset belongs to the board support package;
	// out of scope here beyond honouring the SystemReset command's
	// contract that ResetFn is eventually called.
}

func hwVersion2Digit(v uint8) string {
	tens := v / 10
	ones := v % 10
	return string([]byte{'0' + tens%10, '0' + ones%10})
}
