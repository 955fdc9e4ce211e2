// Package sensors implements the uniform per-sensor adapter contract (C2)
// and the composite-sampling policies the scheduler drives: light-sensor
// burst trimming, resistive/capacitive moisture averaging, and per-probe
// soil temperature detection. Chip-register-level detail lives one layer
// down (see drivers/aht20) and is treated as an external collaborator.
package sensors

import (
	"context"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// Adapter is the uniform read-one-sample interface every sensor exposes.
// A single Read call may itself perform several physical conversions
// (e.g. the light sensor's 5-sample burst); the returned error is nil iff
// Value is trustworthy.
type Adapter interface {
	Read(ctx context.Context) (Value, error)
}

// Value is a single scalar reading, kept as float32 uniformly; callers
// interpret units per adapter (lux, °C, %RH, mV, pF).
type Value float32

// AdapterFunc lets a plain function satisfy Adapter, mirroring the
// teacher's builder-function conventions elsewhere in the pack.
type AdapterFunc func(ctx context.Context) (Value, error)

func (f AdapterFunc) Read(ctx context.Context) (Value, error) { return f(ctx) }

// MoistureReader is satisfied by both ResistiveMoisture and
// CapacitiveMoisture: it returns a full soil reading rather than a single
// scalar, since capacitive hardware carries a four-channel array.
type MoistureReader interface {
	ReadSoil(ctx context.Context) (types.SoilData, error)
}

// sleepCtx sleeps for d or returns early if ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
