package store

import (
	"testing"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// fakeClock lets tests drive "now" explicitly instead of depending on the
// real wall clock, matching the teacher's habit of injecting a narrow
// Clock interface rather than depending on time.Now directly.
type fakeClock struct {
	ts types.Timestamp
}

func (f *fakeClock) Now() types.Timestamp { return f.ts }

func ts(year int16, month, day, hour, minute uint8) types.Timestamp {
	return types.Timestamp{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}
}

func TestInsertThenGetLatestRoundTrips(t *testing.T) {
	clk := &fakeClock{ts: ts(2025, 1, 15, 12, 34)}
	s := New(clk)

	sample := types.Sample{
		Timestamp:      clk.ts,
		AirTempC:       22.5,
		AirHumidityPct: 48.0,
		Lux:            320,
		Soil:           types.SoilData{Kind: types.MoistureResistive, Moisture: 1800},
	}
	if err := s.Insert(sample); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.GetLatestMinute()
	if err != nil {
		t.Fatalf("GetLatestMinute: %v", err)
	}
	if got != sample {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, sample)
	}
}

func TestInsertDuplicateMinuteOverwrites(t *testing.T) {
	clk := &fakeClock{ts: ts(2025, 1, 15, 12, 34)}
	s := New(clk)

	first := types.Sample{Timestamp: clk.ts, AirTempC: 20}
	second := types.Sample{Timestamp: clk.ts, AirTempC: 21}

	if err := s.Insert(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(second); err != nil {
		t.Fatal(err)
	}

	if s.writeIdx != 1 {
		t.Fatalf("expected a single write-index advance, got %d", s.writeIdx)
	}
	got, err := s.GetLatestMinute()
	if err != nil {
		t.Fatal(err)
	}
	if got.AirTempC != 21 {
		t.Fatalf("expected overwrite to win, got AirTempC=%v", got.AirTempC)
	}
}

func TestOldestEvictionAfter1441Inserts(t *testing.T) {
	clk := &fakeClock{ts: ts(2025, 1, 1, 0, 0)}
	s := New(clk)

	firstTS := clk.ts
	for i := 0; i < MinuteCapacity+1; i++ {
		clk.ts = addMinutes(ts(2025, 1, 1, 0, 0), i)
		if err := s.Insert(types.Sample{Timestamp: clk.ts, AirTempC: float32(i)}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	recent, err := s.GetRecentMinutes(24)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != MinuteCapacity {
		t.Fatalf("expected exactly %d recent minutes, got %d", MinuteCapacity, len(recent))
	}
	for _, sm := range recent {
		if sm.Timestamp.SameMinute(firstTS) {
			t.Fatalf("first inserted minute should have been evicted")
		}
	}
}

func addMinutes(base types.Timestamp, n int) types.Timestamp {
	total := int(base.Hour)*60 + int(base.Minute) + n
	day := base.Day
	day += uint8(total / (24 * 60))
	total %= 24 * 60
	return types.Timestamp{
		Year: base.Year, Month: base.Month, Day: day,
		Hour: uint8(total / 60), Minute: uint8(total % 60),
	}
}

func TestDailySummaryCoherence(t *testing.T) {
	clk := &fakeClock{ts: ts(2025, 2, 1, 0, 0)}
	s := New(clk)

	const n = types.CompleteSampleThreshold
	var sumTemp float32
	for i := 0; i < n; i++ {
		clk.ts = addMinutes(ts(2025, 2, 1, 0, 0), i)
		temp := float32(i % 10)
		sumTemp += temp
		if err := s.Insert(types.Sample{Timestamp: clk.ts, AirTempC: temp}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	summary, err := s.GetDailySummary(types.DateOf(ts(2025, 2, 1, 0, 0)))
	if err != nil {
		t.Fatalf("GetDailySummary: %v", err)
	}
	if !summary.Complete {
		t.Fatalf("expected summary to be complete after %d samples", n)
	}
	if summary.SampleCount != n {
		t.Fatalf("SampleCount = %d, want %d", summary.SampleCount, n)
	}
	wantAvg := sumTemp / float32(n)
	if diff := summary.AvgTempC - wantAvg; diff > 1e-3 || diff < -1e-3 {
		t.Fatalf("AvgTempC = %v, want %v", summary.AvgTempC, wantAvg)
	}
}

func TestGetRecentDailySummariesOrdersAscending(t *testing.T) {
	clk := &fakeClock{}
	s := New(clk)

	dates := []types.Timestamp{
		ts(2025, 3, 3, 0, 0),
		ts(2025, 3, 1, 0, 0),
		ts(2025, 3, 2, 0, 0),
	}
	for _, d := range dates {
		for i := 0; i < types.CompleteSampleThreshold; i++ {
			clk.ts = addMinutes(d, i)
			if err := s.Insert(types.Sample{Timestamp: clk.ts}); err != nil {
				t.Fatal(err)
			}
		}
	}

	got, err := s.GetRecentDailySummaries(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}
	if got[0].Date.Day != 1 || got[1].Date.Day != 2 || got[2].Date.Day != 3 {
		t.Fatalf("expected ascending day order, got %+v", got)
	}
}

func TestClearAllResets(t *testing.T) {
	clk := &fakeClock{ts: ts(2025, 1, 1, 0, 0)}
	s := New(clk)
	if err := s.Insert(types.Sample{Timestamp: clk.ts}); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetLatestMinute(); err == nil {
		t.Fatal("expected NotFound after ClearAll")
	}
}
