// Package scheduler implements the sampling task (C3): a fixed-period
// ticker that reads every configured sensor adapter into one composite
// sample, stamps it against the clock, and hands it to the ring store.
// A tick never re-enters; a tick still running when the next timer fires
// is coalesced away, matching §4.3's "acceptable at minute granularity"
// rule.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// Period is the nominal sampling interval.
const Period = 60 * time.Second

// Clock is the narrow view the scheduler needs of C1.
type Clock interface {
	Now() types.Timestamp
}

// Inserter is the narrow view the scheduler needs of the ring store (C4),
// kept small the way the teacher scopes cross-component interfaces
// (compare hal.Adaptor, hal.Builder).
type Inserter interface {
	Insert(s types.Sample) error
}

// TickObserver is notified after every completed tick, successful or not.
// boot.System registers one that hands each sample to the analysis task,
// whose output the link-host task turns into sensor-data notifications
// (§4.7 "Notifications").
type TickObserver func(types.Sample)

// Scheduler is an owned value constructed once at start-up; there is no
// package-level singleton (§9 rearchitecture note).
type Scheduler struct {
	adapters AdapterSet
	clock    Clock
	store    Inserter
	observer TickObserver

	inFlight atomic.Bool
}

// New builds a Scheduler over a fixed adapter set.
func New(adapters AdapterSet, clock Clock, store Inserter) *Scheduler {
	return &Scheduler{
		adapters: adapters,
		clock:    clock,
		store:    store,
	}
}

// OnTick registers the observer invoked after each tick's sample is
// stored. Only one observer is supported; call sites that need fan-out do
// so from inside their own callback (mirrors the teacher's single-sink
// worker pattern in services/hal/worker.go).
func (s *Scheduler) OnTick(obs TickObserver) { s.observer = obs }

// Run drives the sampling loop until ctx is cancelled. It is meant to run
// as the sole sampling-task goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	tick := time.NewTicker(Period)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.fire(ctx)
		}
	}
}

// fire runs one non-reentrant sampling pass. If a previous pass is still
// running (should not happen at 60s cadence unless a sensor bus hangs),
// this tick is dropped rather than queued.
func (s *Scheduler) fire(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer s.inFlight.Store(false)

	sample := s.readAll(ctx)
	sample.Timestamp = s.clock.Now()
	sample.DataVersion = s.adapters.DataVersion

	// A store failure never aborts the pipeline; the next tick tries
	// again independently.
	_ = s.store.Insert(sample)

	if s.observer != nil {
		s.observer(sample)
	}
}

// readAll reads every configured adapter. Sub-sensor failures never abort
// the pass (§7 propagation policy); they are recorded per-field and
// summarised by Sample.Error.
func (s *Scheduler) readAll(ctx context.Context) types.Sample {
	var sample types.Sample
	failed := false

	if s.adapters.Light != nil {
		if v, err := s.adapters.Light.Read(ctx); err != nil {
			failed = true
		} else {
			sample.Lux = float32(v)
		}
	}
	if s.adapters.AirTemp != nil {
		if v, err := s.adapters.AirTemp.Read(ctx); err != nil {
			failed = true
		} else {
			sample.AirTempC = float32(v)
		}
	}
	if s.adapters.AirHumidity != nil {
		if v, err := s.adapters.AirHumidity.Read(ctx); err != nil {
			failed = true
		} else {
			sample.AirHumidityPct = float32(v)
		}
	}
	if s.adapters.Moisture != nil {
		if soil, err := s.adapters.Moisture.ReadSoil(ctx); err != nil {
			failed = true
			sample.Soil.Kind = soil.Kind
		} else {
			sample.Soil = soil
		}
	}
	if len(s.adapters.SoilTemps.Probes) > 0 {
		temps, n, probeErr := s.adapters.SoilTemps.Read(ctx)
		sample.Soil.TempC = temps
		sample.Soil.TempN = n
		if probeErr {
			failed = true
		}
	}

	sample.Error = failed
	return sample
}
