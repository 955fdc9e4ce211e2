package scheduler

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/rx178nwj/SoilMonitorRev2/sensors"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

type fakeClock struct{ ts types.Timestamp }

func (f *fakeClock) Now() types.Timestamp { return f.ts }

type fakeInserter struct {
	mu      sync.Mutex
	samples []types.Sample
}

func (f *fakeInserter) Insert(s types.Sample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, s)
	return nil
}

func (f *fakeInserter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.samples)
}

func constAdapter(v sensors.Value) sensors.Adapter {
	return sensors.AdapterFunc(func(ctx context.Context) (sensors.Value, error) { return v, nil })
}

func failingAdapter() sensors.Adapter {
	return sensors.AdapterFunc(func(ctx context.Context) (sensors.Value, error) {
		return 0, errors.New("sensor unavailable")
	})
}

type fakeMoisture struct {
	soil types.SoilData
	err  error
}

func (f fakeMoisture) ReadSoil(ctx context.Context) (types.SoilData, error) { return f.soil, f.err }

// blockingAdapter blocks on a channel until told to proceed, letting a
// test hold a tick "in flight" long enough to fire a second, concurrent
// tick and observe it get dropped.
type blockingAdapter struct {
	release chan struct{}
}

func (b *blockingAdapter) Read(ctx context.Context) (sensors.Value, error) {
	<-b.release
	return 42, nil
}

func TestFireAggregatesEveryAdapterIntoOneSample(t *testing.T) {
	clk := &fakeClock{ts: types.Timestamp{Year: 2025, Month: 6, Day: 1, Hour: 10, Minute: 0}}
	ins := &fakeInserter{}
	adapters := AdapterSet{
		Light:       constAdapter(320),
		AirTemp:     constAdapter(22.5),
		AirHumidity: constAdapter(48),
		Moisture:    fakeMoisture{soil: types.SoilData{Kind: types.MoistureResistive, Moisture: 1800}},
		DataVersion: 1,
	}
	s := New(adapters, clk, ins)

	var observed types.Sample
	observedCount := 0
	s.OnTick(func(sample types.Sample) {
		observed = sample
		observedCount++
	})

	s.fire(context.Background())

	if ins.count() != 1 {
		t.Fatalf("expected exactly one Insert, got %d", ins.count())
	}
	if observedCount != 1 {
		t.Fatalf("expected exactly one tick observation, got %d", observedCount)
	}
	if observed.Error {
		t.Fatal("no adapter failed; Error should be false")
	}
	if observed.Lux != 320 || observed.AirTempC != 22.5 || observed.AirHumidityPct != 48 {
		t.Fatalf("sample fields not aggregated correctly: %+v", observed)
	}
	if observed.Soil.Moisture != 1800 {
		t.Fatalf("soil moisture not aggregated: %+v", observed.Soil)
	}
	if observed.DataVersion != 1 {
		t.Fatalf("got DataVersion=%d, want 1", observed.DataVersion)
	}
	if observed.Timestamp != clk.ts {
		t.Fatalf("sample not stamped from clock: got %+v, want %+v", observed.Timestamp, clk.ts)
	}
}

func TestFireSetsErrorFlagOnSubSensorFailureButStillInserts(t *testing.T) {
	clk := &fakeClock{ts: types.Timestamp{Year: 2025, Month: 6, Day: 1}}
	ins := &fakeInserter{}
	adapters := AdapterSet{
		Light:   failingAdapter(),
		AirTemp: constAdapter(22.5),
	}
	s := New(adapters, clk, ins)

	var observed types.Sample
	s.OnTick(func(sample types.Sample) { observed = sample })
	s.fire(context.Background())

	if ins.count() != 1 {
		t.Fatalf("a sub-sensor failure must not abort the pass: got %d inserts", ins.count())
	}
	if !observed.Error {
		t.Fatal("expected Error=true when a sub-sensor fails")
	}
	if observed.AirTempC != 22.5 {
		t.Fatalf("a failing light sensor must not blank out other fields, got AirTempC=%v", observed.AirTempC)
	}
}

func TestFireIsNonReentrant(t *testing.T) {
	clk := &fakeClock{ts: types.Timestamp{Year: 2025, Month: 6, Day: 1}}
	ins := &fakeInserter{}
	blocker := &blockingAdapter{release: make(chan struct{})}
	adapters := AdapterSet{Light: blocker}
	s := New(adapters, clk, ins)

	firstDone := make(chan struct{})
	go func() {
		s.fire(context.Background())
		close(firstDone)
	}()

	// Give the first fire a chance to set inFlight and block inside
	// readAll before the second, concurrent fire is attempted.
	for !s.inFlight.Load() {
		runtime.Gosched()
	}

	// A tick that arrives while a previous tick is still running is
	// coalesced away, never queued (§4.3).
	s.fire(context.Background())
	if ins.count() != 0 {
		t.Fatalf("second concurrent fire must be dropped, not inserted; got %d inserts", ins.count())
	}

	close(blocker.release)
	<-firstDone

	if ins.count() != 1 {
		t.Fatalf("expected exactly one insert once the first fire completes, got %d", ins.count())
	}
	if s.inFlight.Load() {
		t.Fatal("inFlight should be cleared after fire returns")
	}
}
