package sensors

import (
	"context"
	"errors"
	"testing"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

func TestResistiveMoistureAveragesTenSamples(t *testing.T) {
	m := ResistiveMoisture{Raw: constantReads(100, 200)}
	soil, err := m.ReadSoil(context.Background())
	if err != nil {
		t.Fatalf("ReadSoil: %v", err)
	}
	if soil.Kind != types.MoistureResistive {
		t.Fatalf("got kind %v, want resistive", soil.Kind)
	}
	if soil.Moisture != 150 {
		t.Fatalf("got %v, want mean of alternating 100/200 = 150", soil.Moisture)
	}
}

func TestResistiveMoistureErrorsWhenAllSamplesFail(t *testing.T) {
	raw := func(ctx context.Context) (float32, error) { return 0, errors.New("adc fault") }
	m := ResistiveMoisture{Raw: raw}
	if _, err := m.ReadSoil(context.Background()); err == nil {
		t.Fatal("expected error when every sample fails")
	}
}

func TestResistiveMoistureToleratesPartialFailures(t *testing.T) {
	calls := 0
	raw := func(ctx context.Context) (float32, error) {
		calls++
		if calls%2 == 0 {
			return 0, errors.New("adc fault")
		}
		return 500, nil
	}
	m := ResistiveMoisture{Raw: raw}
	soil, err := m.ReadSoil(context.Background())
	if err != nil {
		t.Fatalf("ReadSoil: %v", err)
	}
	if soil.Moisture != 500 {
		t.Fatalf("got %v, want 500 (only successful samples averaged)", soil.Moisture)
	}
}

func TestCapacitiveMoistureReadsChannelsIndependently(t *testing.T) {
	m := CapacitiveMoisture{
		Channel: [4]RawRead{
			constantReads(1000),
			constantReads(2000),
			constantReads(3000),
			constantReads(4000),
		},
	}
	soil, err := m.ReadSoil(context.Background())
	if err != nil {
		t.Fatalf("ReadSoil: %v", err)
	}
	if soil.Kind != types.MoistureCapacitive {
		t.Fatalf("got kind %v, want capacitive", soil.Kind)
	}
	want := [4]float32{1000, 2000, 3000, 4000}
	if soil.Channels != want {
		t.Fatalf("got channels %+v, want %+v", soil.Channels, want)
	}
	if soil.Moisture != 2500 {
		t.Fatalf("got mean %v, want 2500", soil.Moisture)
	}
}

func TestCapacitiveMoistureSkipsFailedChannels(t *testing.T) {
	failing := func(ctx context.Context) (float32, error) { return 0, errors.New("channel fault") }
	m := CapacitiveMoisture{
		Channel: [4]RawRead{
			constantReads(1000),
			failing,
			constantReads(3000),
			nil,
		},
	}
	soil, err := m.ReadSoil(context.Background())
	if err != nil {
		t.Fatalf("ReadSoil: %v", err)
	}
	if soil.Moisture != 2000 {
		t.Fatalf("got mean %v, want 2000 (mean of the two live channels)", soil.Moisture)
	}
}

func TestCapacitiveMoistureErrorsWhenNoChannelsAnswer(t *testing.T) {
	failing := func(ctx context.Context) (float32, error) { return 0, errors.New("channel fault") }
	m := CapacitiveMoisture{Channel: [4]RawRead{failing, failing, nil, nil}}
	if _, err := m.ReadSoil(context.Background()); err == nil {
		t.Fatal("expected error when no channel produces a reading")
	}
}
