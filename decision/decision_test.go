package decision

import (
	"testing"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

func testProfile() types.PlantProfile {
	return types.PlantProfile{
		Name:          "basil",
		DryThreshold:  3000,
		WetThreshold:  1500,
		DryDaysTrigger: 3,
		TempHigh:      35,
		TempLow:       5,
		WateringDelta: 500,
	}
}

func TestBootDefaultIsSoilWet(t *testing.T) {
	e := New()
	if e.Prev() != types.CondSoilWet {
		t.Fatalf("boot default = %v, want SOIL_WET", e.Prev())
	}
}

func TestErrorTakesPriority(t *testing.T) {
	e := New()
	profile := testProfile()
	latest := types.Sample{Error: true, AirTempC: 20, Soil: types.SoilData{Moisture: 100}}
	got := e.Classify(profile, latest, nil, nil)
	if got != types.CondError {
		t.Fatalf("got %v, want ERROR", got)
	}
}

func TestTempTooHighBeatsMoistureRules(t *testing.T) {
	e := New()
	profile := testProfile()
	// Moisture alone would say SOIL_WET, but temperature must win regardless
	// of state history (invariant 5).
	latest := types.Sample{AirTempC: 40, Soil: types.SoilData{Moisture: 1000}}
	got := e.Classify(profile, latest, nil, nil)
	if got != types.CondTempTooHigh {
		t.Fatalf("got %v, want TEMP_TOO_HIGH", got)
	}
}

func TestTempTooLow(t *testing.T) {
	e := New()
	profile := testProfile()
	latest := types.Sample{AirTempC: 2, Soil: types.SoilData{Moisture: 2000}}
	got := e.Classify(profile, latest, nil, nil)
	if got != types.CondTempTooLow {
		t.Fatalf("got %v, want TEMP_TOO_LOW", got)
	}
}

func TestWateringCompletedOnDrop(t *testing.T) {
	e := New()
	profile := testProfile()
	recent := []types.Sample{
		{AirTempC: 20, Soil: types.SoilData{Moisture: 4000}},
		{AirTempC: 20, Soil: types.SoilData{Moisture: 4000}},
		{AirTempC: 20, Soil: types.SoilData{Moisture: 4000 - profile.WateringDelta}},
	}
	latest := recent[len(recent)-1]
	got := e.Classify(profile, latest, recent, nil)
	if got != types.CondWateringCompleted {
		t.Fatalf("got %v, want WATERING_COMPLETED", got)
	}
}

func TestWateringCompletedSkippedWithFewerThanThreeSamples(t *testing.T) {
	e := New()
	profile := testProfile()
	recent := []types.Sample{
		{AirTempC: 20, Soil: types.SoilData{Moisture: 4000}},
		{AirTempC: 20, Soil: types.SoilData{Moisture: 4000 - profile.WateringDelta}},
	}
	latest := recent[len(recent)-1]
	got := e.Classify(profile, latest, recent, nil)
	// Falls through to rule 7: still above dry threshold.
	if got != types.CondSoilDry {
		t.Fatalf("got %v, want SOIL_DRY (rule 4 should be skipped)", got)
	}
}

func TestPreviousDryOrNeedsWateringPlusWetNowCompletesWatering(t *testing.T) {
	e := New()
	e.prev = types.CondNeedsWatering
	profile := testProfile()
	latest := types.Sample{AirTempC: 20, Soil: types.SoilData{Moisture: profile.WetThreshold}}
	got := e.Classify(profile, latest, nil, nil)
	if got != types.CondWateringCompleted {
		t.Fatalf("got %v, want WATERING_COMPLETED", got)
	}
}

func TestNeedsWateringOnProlongedDryness(t *testing.T) {
	e := New()
	profile := testProfile()
	dailies := []types.DailySummary{
		{Complete: true, AvgSoilMoisture: profile.DryThreshold + 100},
		{Complete: true, AvgSoilMoisture: profile.DryThreshold + 50},
		{Complete: true, AvgSoilMoisture: profile.DryThreshold},
	}
	latest := types.Sample{AirTempC: 20, Soil: types.SoilData{Moisture: profile.DryThreshold}}
	got := e.Classify(profile, latest, nil, dailies)
	if got != types.CondNeedsWatering {
		t.Fatalf("got %v, want NEEDS_WATERING", got)
	}
}

func TestSoilDryAndSoilWetFallThrough(t *testing.T) {
	profile := testProfile()

	e1 := New()
	dry := e1.Classify(profile, types.Sample{AirTempC: 20, Soil: types.SoilData{Moisture: profile.DryThreshold}}, nil, nil)
	if dry != types.CondSoilDry {
		t.Fatalf("got %v, want SOIL_DRY", dry)
	}

	e2 := New()
	wet := e2.Classify(profile, types.Sample{AirTempC: 20, Soil: types.SoilData{Moisture: profile.WetThreshold}}, nil, nil)
	if wet != types.CondSoilWet {
		t.Fatalf("got %v, want SOIL_WET", wet)
	}
}

func TestHysteresisHoldsPreviousStateInDeadBand(t *testing.T) {
	e := New()
	e.prev = types.CondSoilDry
	profile := testProfile()
	mid := (profile.DryThreshold + profile.WetThreshold) / 2
	latest := types.Sample{AirTempC: 20, Soil: types.SoilData{Moisture: mid}}
	got := e.Classify(profile, latest, nil, nil)
	if got != types.CondSoilDry {
		t.Fatalf("got %v, want SOIL_DRY (hysteresis)", got)
	}
}
